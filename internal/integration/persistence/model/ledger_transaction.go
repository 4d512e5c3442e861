package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentledger/reconciler/internal/domain/entity"
)

// LedgerTransactionModel represents the ledger_transactions table.
type LedgerTransactionModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PropertyID   *uuid.UUID      `gorm:"type:uuid;index"`
	Date         string          `gorm:"type:varchar(20);index"`
	Payee        string          `gorm:"type:varchar(255)"`
	Notes        string          `gorm:"type:text"`
	Details      string          `gorm:"type:text"`
	Category     string          `gorm:"type:varchar(100);index"`
	SubCategory  string          `gorm:"type:varchar(100)"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Account      string          `gorm:"type:varchar(100)"`
	DataSource   string          `gorm:"type:varchar(100)"`
	Filtered     bool            `gorm:"default:false;index"`
	FilterReason string          `gorm:"type:varchar(255)"`
	CreatedAt    time.Time       `gorm:"not null"`

	Property *PropertyModel `gorm:"foreignKey:PropertyID;references:ID"`
}

// TableName returns the table name for the LedgerTransactionModel.
func (LedgerTransactionModel) TableName() string {
	return "ledger_transactions"
}

// ToEntity converts a LedgerTransactionModel to a domain entity.
func (m *LedgerTransactionModel) ToEntity() *entity.LedgerTransaction {
	return &entity.LedgerTransaction{
		ID:           m.ID,
		PropertyID:   m.PropertyID,
		Date:         m.Date,
		Payee:        m.Payee,
		Notes:        m.Notes,
		Details:      m.Details,
		Category:     m.Category,
		SubCategory:  m.SubCategory,
		Amount:       m.Amount,
		Account:      m.Account,
		DataSource:   m.DataSource,
		Filtered:     m.Filtered,
		FilterReason: m.FilterReason,
		CreatedAt:    m.CreatedAt,
	}
}

// LedgerTransactionFromEntity creates a LedgerTransactionModel from a domain entity.
func LedgerTransactionFromEntity(tx *entity.LedgerTransaction) *LedgerTransactionModel {
	return &LedgerTransactionModel{
		ID:           tx.ID,
		PropertyID:   tx.PropertyID,
		Date:         tx.Date,
		Payee:        tx.Payee,
		Notes:        tx.Notes,
		Details:      tx.Details,
		Category:     tx.Category,
		SubCategory:  tx.SubCategory,
		Amount:       tx.Amount,
		Account:      tx.Account,
		DataSource:   tx.DataSource,
		Filtered:     tx.Filtered,
		FilterReason: tx.FilterReason,
		CreatedAt:    tx.CreatedAt,
	}
}
