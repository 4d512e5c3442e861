package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerTransaction represents a single row from the owner's ledger export.
// Dates are kept as the raw source string; parsing happens at match time so
// that unparseable rows survive loading and can still be reported.
type LedgerTransaction struct {
	ID           uuid.UUID
	PropertyID   *uuid.UUID
	Date         string
	Payee        string
	Notes        string
	Details      string
	Category     string
	SubCategory  string
	Amount       decimal.Decimal // negative = money out
	Account      string
	DataSource   string
	Filtered     bool
	FilterReason string
	CreatedAt    time.Time
}

// NewLedgerTransaction creates a new LedgerTransaction entity.
func NewLedgerTransaction(
	propertyID *uuid.UUID,
	date string,
	payee string,
	category string,
	subCategory string,
	amount decimal.Decimal,
) *LedgerTransaction {
	return &LedgerTransaction{
		ID:          uuid.New(),
		PropertyID:  propertyID,
		Date:        date,
		Payee:       payee,
		Category:    category,
		SubCategory: subCategory,
		Amount:      amount,
		CreatedAt:   time.Now().UTC(),
	}
}

// IsOwnerDistribution reports whether this ledger row records an owner
// distribution transfer. Distributions stay matchable even when a filter
// rule excluded the row from totals.
func (t *LedgerTransaction) IsOwnerDistribution() bool {
	return t.Category == "Transfers" && t.SubCategory == "Owner Distributions"
}

// Matchable reports whether the row participates in reconciliation.
func (t *LedgerTransaction) Matchable() bool {
	return !t.Filtered || t.IsOwnerDistribution()
}
