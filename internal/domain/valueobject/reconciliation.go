package valueobject

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportSourceConfig parameterizes the generic report matcher for one
// income/expense report source. Each configured source gets the same
// exact/split/monthly sequence; the knobs here cover the ways individual
// managers' reports differ.
type ReportSourceConfig struct {
	// Name is the source identifier; it is also the match-type prefix.
	Name string

	// PayeeToken appears in ledger payee text for deposits originated by
	// this source. Used by owner-distribution inference.
	PayeeToken string

	// Properties lists canonical property names this source reports on.
	Properties []string

	// FlexibleSubCategory enables containment-based sub-category comparison.
	FlexibleSubCategory bool

	// MonthlyCategories are eligible for whole-month aggregation when no
	// exact or split match is found.
	MonthlyCategories []string

	// PreferMonthlyCategories skip the exact-match attempt entirely; the
	// source only reports these as monthly roll-ups.
	PreferMonthlyCategories []string

	// InfersDistributions enables owner-distribution inference from paired
	// monthly rent and management-fee lines.
	InfersDistributions bool

	// CapitalExpenseEquivalence lets large repair lines match ledger rows
	// recorded under Capital Expenses, and vice versa. Managers report big
	// one-off projects as repairs; owners capitalize them.
	CapitalExpenseEquivalence bool
}

// ReportsOn reports whether the source covers the given property name.
func (c ReportSourceConfig) ReportsOn(propertyName string) bool {
	for _, p := range c.Properties {
		if CategoriesEqual(p, propertyName) {
			return true
		}
	}
	return false
}

// PrefersMonthly reports whether exact matching is skipped for a category.
func (c ReportSourceConfig) PrefersMonthly(category string) bool {
	for _, m := range c.PreferMonthlyCategories {
		if CategoriesEqual(m, category) {
			return true
		}
	}
	return false
}

// MonthlyEligible reports whether a category may fall back to whole-month
// aggregation.
func (c ReportSourceConfig) MonthlyEligible(category string) bool {
	for _, m := range c.MonthlyCategories {
		if CategoriesEqual(m, category) {
			return true
		}
	}
	return c.PrefersMonthly(category)
}

// SourceStats summarizes one source's contribution to a run.
type SourceStats struct {
	Source       string
	Loaded       int
	LoadedInYear int
	Matched      int
	// Absent is true when the source had no data at all, as opposed to
	// loading data and matching none of it.
	Absent bool
}

// UnsplitPayment flags a ledger lump sum that covers a mortgage statement
// whose components were not split out.
type UnsplitPayment struct {
	StatementID         uuid.UUID
	LedgerTransactionID uuid.UUID
	PropertyName        string
	LedgerAmount        decimal.Decimal
	AmountDue           decimal.Decimal
	DueDate             string
	LedgerDate          string
	MatchedComponents   []string
	ExpectedComponents  []MortgageComponentAmount
}

// MortgageComponentAmount pairs a component sub-category with its statement
// amount, for unsplit-payment reporting.
type MortgageComponentAmount struct {
	SubCategory string
	Amount      decimal.Decimal
}

// ComponentMismatch records a component matched at reduced confidence
// because the ledger amount differed from the statement breakdown.
type ComponentMismatch struct {
	StatementID     uuid.UUID
	PropertyName    string
	SubCategory     string
	StatementAmount decimal.Decimal
	LedgerAmount    decimal.Decimal
}

// RunSummary is the aggregate outcome of one engine run.
type RunSummary struct {
	Year                int // 0 = all years
	TotalMatches        int
	ManualPreserved     int
	ComponentsMatched   int
	ComponentsExpected  int
	SourceStats         []SourceStats
	UnsplitPayments     []UnsplitPayment
	ComponentMismatches []ComponentMismatch
}
