package ingest

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CleanAmount parses money strings as they appear across the exports:
// currency symbols, thousands separators, and accounting-style parentheses
// for negatives. Blank input is zero.
func CleanAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		return amount.Neg()
	}
	return amount
}
