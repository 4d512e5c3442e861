package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportTransactionType distinguishes income from expense rows in a
// manager's income/expense report.
type ReportTransactionType string

const (
	ReportTransactionIncome  ReportTransactionType = "Income"
	ReportTransactionExpense ReportTransactionType = "Expense"
)

// ReportTransaction represents one line from a manager's income/expense
// report. All report sources load into this shape; Source names the origin.
// Category and SubCategory hold the ledger vocabulary mapped at load time.
type ReportTransaction struct {
	ID          uuid.UUID
	PropertyID  *uuid.UUID
	Source      string
	AccountName string
	AccountCode string
	Type        ReportTransactionType
	Date        string
	Month       string
	Amount      decimal.Decimal // income positive, expense negative
	Category    string
	SubCategory string
	CreatedAt   time.Time
}

// NewReportTransaction creates a new ReportTransaction entity.
func NewReportTransaction(
	propertyID *uuid.UUID,
	source string,
	accountName string,
	txType ReportTransactionType,
	date string,
	amount decimal.Decimal,
) *ReportTransaction {
	return &ReportTransaction{
		ID:          uuid.New(),
		PropertyID:  propertyID,
		Source:      source,
		AccountName: accountName,
		Type:        txType,
		Date:        date,
		Amount:      amount,
		CreatedAt:   time.Now().UTC(),
	}
}
