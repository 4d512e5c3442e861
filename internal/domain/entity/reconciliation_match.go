package entity

import (
	"time"

	"github.com/google/uuid"
)

// Well-known match types. Report-source matches use the source name as the
// type, optionally suffixed by MatchSuffixSplit, MatchSuffixMonthly or
// MatchSuffixDistribution.
const (
	MatchTypeMortgageComponent = "mortgage_component"
	MatchTypeAmountDate        = "amount_date"
	MatchTypeRentPlatform      = "rent_platform"
	MatchTypeManual            = "manual"

	MatchSuffixSplit        = "_split"
	MatchSuffixMonthly      = "_monthly"
	MatchSuffixDistribution = "_distribution"
)

// ReconciliationMatch links a ledger transaction to at most one record from
// one reconciliation source. Automatic matches are cleared and regenerated
// on every run; manual matches persist until explicitly cleared.
type ReconciliationMatch struct {
	ID                   uuid.UUID
	LedgerTransactionID  *uuid.UUID
	ManagerTransactionID *uuid.UUID
	ReportTransactionID  *uuid.UUID
	ReportSource         string
	MortgageStatementID  *uuid.UUID
	MortgageComponent    string
	RentPlatformID       *uuid.UUID
	Score                float64
	MatchType            string
	Notes                string
	CreatedAt            time.Time
}

// NewReconciliationMatch creates a match shell with the given type and
// score. Callers set exactly one source link before persisting it.
func NewReconciliationMatch(matchType string, score float64) *ReconciliationMatch {
	return &ReconciliationMatch{
		ID:        uuid.New(),
		Score:     score,
		MatchType: matchType,
		CreatedAt: time.Now().UTC(),
	}
}

// IsManual reports whether the match was recorded by an operator.
func (m *ReconciliationMatch) IsManual() bool {
	return m.MatchType == MatchTypeManual
}
