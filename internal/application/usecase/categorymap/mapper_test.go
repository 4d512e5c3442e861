package categorymap

import (
	"testing"

	"github.com/rentledger/reconciler/internal/domain/valueobject"
)

func TestManagerGLMapper(t *testing.T) {
	m := NewManagerGLMapper()

	cases := []struct {
		name    string
		account string
		memo    string
		want    valueobject.CategoryPair
	}{
		{
			"rent income",
			"4105 Rent Income",
			"",
			valueobject.CategoryPair{Category: "Income", SubCategory: "Rents"},
		},
		{
			"material with plumbing memo",
			"6250 Materials",
			"Replaced kitchen faucet",
			valueobject.CategoryPair{Category: "Repairs & Maintenance", SubCategory: "Plumbing Repairs"},
		},
		{
			"material with lawn memo",
			"6250 Materials",
			"Lawn care June",
			valueobject.CategoryPair{Category: "Repairs & Maintenance", SubCategory: "Gardening & Landscaping"},
		},
		{
			"material without routed memo",
			"6250 Materials",
			"Misc hardware",
			valueobject.CategoryPair{Category: "Repairs & Maintenance"},
		},
		{
			"utilities water",
			"6850 Utilities",
			"City water and sewer",
			valueobject.CategoryPair{Category: "Utilities", SubCategory: "Water & Sewer"},
		},
		{
			"utilities electric",
			"6850 Utilities",
			"FirstEnergy bill",
			valueobject.CategoryPair{Category: "Utilities", SubCategory: "Electric"},
		},
		{
			"utilities default",
			"6850 Utilities",
			"Monthly bill",
			valueobject.CategoryPair{Category: "Utilities", SubCategory: "Water & Sewer"},
		},
		{
			"management fee",
			"6010 Management Fees",
			"",
			valueobject.CategoryPair{Category: "Management Fees", SubCategory: "Property Management"},
		},
		{
			"owner draw",
			"3200 Owner Draw",
			"",
			valueobject.CategoryPair{Category: "Transfers", SubCategory: "Owner Distributions"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := m.Map(tc.account, tc.memo)
			if !ok {
				t.Fatalf("expected %q / %q to map", tc.account, tc.memo)
			}
			if got != tc.want {
				t.Errorf("expected %+v, got %+v", tc.want, got)
			}
		})
	}

	t.Run("unknown account does not map", func(t *testing.T) {
		if _, ok := m.Map("9999 Something Else", ""); ok {
			t.Error("expected no rule to fire")
		}
	})

	t.Run("MapOrDefault falls back to Other Expenses", func(t *testing.T) {
		got := m.MapOrDefault("9999 Something Else", "")
		if got.Category != "Other Expenses" || got.SubCategory != "" {
			t.Errorf("expected Other Expenses fallback, got %+v", got)
		}
	})
}

func TestMapperFirstMatchWins(t *testing.T) {
	m := NewMapper([]Rule{
		{AccountAny: []string{"fee"}, Pair: pair("First", "")},
		{AccountAny: []string{"fee"}, Pair: pair("Second", "")},
	})

	for i := 0; i < 10; i++ {
		got, ok := m.Map("Late Fee", "")
		if !ok || got.Category != "First" {
			t.Fatalf("expected the first rule to win, got %+v", got)
		}
	}
}

func TestMapperMemoGate(t *testing.T) {
	m := NewMapper([]Rule{
		{AccountAny: []string{"material"}, MemoAny: []string{"roof"}, Pair: pair("Roof", "")},
	})

	t.Run("memo keyword required", func(t *testing.T) {
		if _, ok := m.Map("Materials", "new paint"); ok {
			t.Error("expected memo-gated rule not to fire without the keyword")
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		got, ok := m.Map("MATERIALS", "ROOF shingles")
		if !ok || got.Category != "Roof" {
			t.Fatalf("expected roof rule to fire, got %+v", got)
		}
	})
}
