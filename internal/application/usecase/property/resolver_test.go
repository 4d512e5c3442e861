package property

import (
	"testing"

	"github.com/rentledger/reconciler/internal/domain/entity"
)

func TestNormalizeAddress(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"strips trailing city state zip", "4604 Miller Lane, Gary, IN, 46403, US", "4604 MILLER LN"},
		{"abbreviates suffixes", "1700 West Flamingo Drive", "1700 W FLAMINGO DR"},
		{"collapses whitespace", "  440   Marion Oaks  Ln ", "440 MARION OAKS LN"},
		{"already canonical", "3274 E HAWK PL", "3274 E HAWK PL"},
		{"empty input", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeAddress(tc.in); got != tc.want {
				t.Errorf("NormalizeAddress(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func testProperties() []*entity.Property {
	miller := entity.NewProperty("4604 Miller Lane")
	miller.Street = "4604 Miller Lane"
	miller.LoanNumber = "0012345678"

	flamingo := entity.NewProperty("1700 W Flamingo Dr")
	flamingo.Street = "1700 W Flamingo Dr"
	flamingo.DisplayAddress = "1700 W Flamingo Dr, Chandler, AZ, 85286"
	flamingo.LoanNumber = "99887766"

	return []*entity.Property{miller, flamingo}
}

func TestResolverResolveBuilding(t *testing.T) {
	r := NewResolver(testProperties())

	t.Run("exact name match", func(t *testing.T) {
		p := r.ResolveBuilding("4604 Miller Lane")
		if p == nil || p.Name != "4604 Miller Lane" {
			t.Fatalf("expected Miller Lane, got %v", p)
		}
	})

	t.Run("street contained in building name", func(t *testing.T) {
		p := r.ResolveBuilding("4604 Miller Lane - Unit B")
		if p == nil || p.Name != "4604 Miller Lane" {
			t.Fatalf("expected Miller Lane, got %v", p)
		}
	})

	t.Run("unknown building", func(t *testing.T) {
		if p := r.ResolveBuilding("999 Nowhere Blvd"); p != nil {
			t.Fatalf("expected nil, got %v", p)
		}
	})

	t.Run("blank building", func(t *testing.T) {
		if p := r.ResolveBuilding("  "); p != nil {
			t.Fatalf("expected nil, got %v", p)
		}
	})
}

func TestResolverResolveAddress(t *testing.T) {
	r := NewResolver(testProperties())

	t.Run("full address with city state zip", func(t *testing.T) {
		p := r.ResolveAddress("4604 Miller Lane, Gary, IN, 46403, US")
		if p == nil || p.Name != "4604 Miller Lane" {
			t.Fatalf("expected Miller Lane, got %v", p)
		}
	})

	t.Run("long form suffix resolves against abbreviated name", func(t *testing.T) {
		p := r.ResolveAddress("1700 West Flamingo Drive, Chandler, AZ, 85286")
		if p == nil || p.Name != "1700 W Flamingo Dr" {
			t.Fatalf("expected Flamingo, got %v", p)
		}
	})

	t.Run("unknown address", func(t *testing.T) {
		if p := r.ResolveAddress("1 Unknown Way, Nowhere, KS, 66002"); p != nil {
			t.Fatalf("expected nil, got %v", p)
		}
	})
}

func TestResolverResolveLoanNumber(t *testing.T) {
	r := NewResolver(testProperties())

	t.Run("exact loan number", func(t *testing.T) {
		p := r.ResolveLoanNumber("0012345678")
		if p == nil || p.Name != "4604 Miller Lane" {
			t.Fatalf("expected Miller Lane, got %v", p)
		}
	})

	t.Run("statement loan number missing leading zeros", func(t *testing.T) {
		p := r.ResolveLoanNumber("12345678")
		if p == nil || p.Name != "4604 Miller Lane" {
			t.Fatalf("expected Miller Lane, got %v", p)
		}
	})

	t.Run("unknown loan number", func(t *testing.T) {
		if p := r.ResolveLoanNumber("55555"); p != nil {
			t.Fatalf("expected nil, got %v", p)
		}
	})
}
