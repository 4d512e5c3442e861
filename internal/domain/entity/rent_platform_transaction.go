package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RentPlatformTransaction represents a payment record exported from the
// online rent collection platform. Only completed payments are loaded.
type RentPlatformTransaction struct {
	ID              uuid.UUID
	PropertyID      *uuid.UUID
	Type            string
	Memo            string
	Status          string
	InitiatedOn     string
	CompletedOn     string
	CreditAmount    decimal.Decimal
	DebitAmount     decimal.Decimal
	InitiatedBy     string
	PropertyAddress string
	Unit            string
	TransactionID   string
	ReferenceID     string
	CreatedAt       time.Time
}

// NewRentPlatformTransaction creates a new RentPlatformTransaction entity.
func NewRentPlatformTransaction(
	propertyID *uuid.UUID,
	completedOn string,
	creditAmount decimal.Decimal,
) *RentPlatformTransaction {
	return &RentPlatformTransaction{
		ID:           uuid.New(),
		PropertyID:   propertyID,
		CompletedOn:  completedOn,
		CreditAmount: creditAmount,
		CreatedAt:    time.Now().UTC(),
	}
}
