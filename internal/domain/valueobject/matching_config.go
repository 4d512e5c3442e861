// Package valueobject contains domain value objects for the reconciliation system.
package valueobject

import "github.com/shopspring/decimal"

// MatchingConfig contains every tolerance used by the matching engine.
type MatchingConfig struct {
	// AmountTolerance is the cent-level tolerance for exact amount matches.
	AmountTolerance decimal.Decimal // 0.01

	// ComponentSumTolerance bounds |principal+interest+escrow+fees - amount due|
	// before a statement is flagged as invalid.
	ComponentSumTolerance decimal.Decimal // 0.01

	// Mortgage component matching runs two passes over widening windows
	// after the payment due date.
	MortgageFirstPassDays  int // 10
	MortgageSecondPassDays int // 15

	// ManagerDateToleranceDays is the window for manager amount/date matches.
	ManagerDateToleranceDays int // 4

	// Unsplit lump-sum detection.
	UnsplitAmountTolerance   decimal.Decimal // 3.00
	UnsplitDateToleranceDays int             // 10

	// RentPlatformDateToleranceDays is the window between a completed
	// platform payment and its ledger deposit.
	RentPlatformDateToleranceDays int // 25

	// ReportDateToleranceDays is the window for income/expense report matches.
	ReportDateToleranceDays int // 30

	// Split combination search bounds.
	SplitMinParts int // 2
	SplitMaxParts int // 5

	// FullComponentMatchCount is how many component matches a statement
	// needs before it is considered fully split in the ledger.
	FullComponentMatchCount int // 3
}

// DefaultMatchingConfig returns the default matching configuration.
func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		AmountTolerance:               decimal.NewFromFloat(0.01),
		ComponentSumTolerance:         decimal.NewFromFloat(0.01),
		MortgageFirstPassDays:         10,
		MortgageSecondPassDays:        15,
		ManagerDateToleranceDays:      4,
		UnsplitAmountTolerance:        decimal.NewFromFloat(3.00),
		UnsplitDateToleranceDays:      10,
		RentPlatformDateToleranceDays: 25,
		ReportDateToleranceDays:       30,
		SplitMinParts:                 2,
		SplitMaxParts:                 5,
		FullComponentMatchCount:       3,
	}
}

// AmountsMatch reports whether two amounts agree within AmountTolerance.
func (c MatchingConfig) AmountsMatch(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(c.AmountTolerance)
}
