package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ManagerTransaction represents a row from the property manager's general
// ledger export. The manager records amounts from the tenant's perspective,
// so signs are inverted relative to the owner's ledger.
type ManagerTransaction struct {
	ID                  uuid.UUID
	PropertyID          *uuid.UUID
	BuildingName        string
	UnitNumber          string
	EntryDate           string
	GLAccountName       string
	CombinedGLAccount   string
	PayeeName           string
	PostingMemo         string
	Amount              decimal.Decimal
	PropertyStreet      string
	PropertyCity        string
	PropertyState       string
	PropertyZip         string
	Filtered            bool
	FilterReason        string
	CreatedAt           time.Time
}

// NewManagerTransaction creates a new ManagerTransaction entity.
func NewManagerTransaction(
	propertyID *uuid.UUID,
	buildingName string,
	entryDate string,
	glAccountName string,
	amount decimal.Decimal,
) *ManagerTransaction {
	return &ManagerTransaction{
		ID:            uuid.New(),
		PropertyID:    propertyID,
		BuildingName:  buildingName,
		EntryDate:     entryDate,
		GLAccountName: glAccountName,
		Amount:        amount,
		CreatedAt:     time.Now().UTC(),
	}
}

// LedgerAmount returns the amount in the owner ledger's sign convention.
func (t *ManagerTransaction) LedgerAmount() decimal.Decimal {
	return t.Amount.Neg()
}
