package ingest

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCleanAmount(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"plain number", "1234.56", "1234.56"},
		{"dollar sign", "$1,234.56", "1234.56"},
		{"negative", "-85.40", "-85.4"},
		{"accounting parentheses", "($1,234.56)", "-1234.56"},
		{"parentheses without symbols", "(45.00)", "-45"},
		{"blank", "", "0"},
		{"whitespace only", "   ", "0"},
		{"unparseable", "N/A", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tc.want)
			if err != nil {
				t.Fatalf("bad expectation %q: %v", tc.want, err)
			}
			if got := CleanAmount(tc.raw); !got.Equal(want) {
				t.Errorf("CleanAmount(%q) = %s, want %s", tc.raw, got, want)
			}
		})
	}
}
