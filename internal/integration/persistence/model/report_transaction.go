package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentledger/reconciler/internal/domain/entity"
)

// ReportTransactionModel represents the report_transactions table. Rows from
// every report source share the table, keyed by the source column.
type ReportTransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PropertyID  *uuid.UUID      `gorm:"type:uuid;index"`
	Source      string          `gorm:"type:varchar(50);not null;index"`
	AccountName string          `gorm:"type:varchar(255)"`
	AccountCode string          `gorm:"type:varchar(50)"`
	Type        string          `gorm:"type:varchar(10);not null"`
	Date        string          `gorm:"type:varchar(20);index"`
	Month       string          `gorm:"type:varchar(7)"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Category    string          `gorm:"type:varchar(100)"`
	SubCategory string          `gorm:"type:varchar(100)"`
	CreatedAt   time.Time       `gorm:"not null"`

	Property *PropertyModel `gorm:"foreignKey:PropertyID;references:ID"`
}

// TableName returns the table name for the ReportTransactionModel.
func (ReportTransactionModel) TableName() string {
	return "report_transactions"
}

// ToEntity converts a ReportTransactionModel to a domain entity.
func (m *ReportTransactionModel) ToEntity() *entity.ReportTransaction {
	return &entity.ReportTransaction{
		ID:          m.ID,
		PropertyID:  m.PropertyID,
		Source:      m.Source,
		AccountName: m.AccountName,
		AccountCode: m.AccountCode,
		Type:        entity.ReportTransactionType(m.Type),
		Date:        m.Date,
		Month:       m.Month,
		Amount:      m.Amount,
		Category:    m.Category,
		SubCategory: m.SubCategory,
		CreatedAt:   m.CreatedAt,
	}
}

// ReportTransactionFromEntity creates a ReportTransactionModel from a domain entity.
func ReportTransactionFromEntity(tx *entity.ReportTransaction) *ReportTransactionModel {
	return &ReportTransactionModel{
		ID:          tx.ID,
		PropertyID:  tx.PropertyID,
		Source:      tx.Source,
		AccountName: tx.AccountName,
		AccountCode: tx.AccountCode,
		Type:        string(tx.Type),
		Date:        tx.Date,
		Month:       tx.Month,
		Amount:      tx.Amount,
		Category:    tx.Category,
		SubCategory: tx.SubCategory,
		CreatedAt:   tx.CreatedAt,
	}
}
