package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentledger/reconciler/internal/domain/entity"
)

// RentPlatformTransactionModel represents the rent_platform_transactions table.
type RentPlatformTransactionModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PropertyID      *uuid.UUID      `gorm:"type:uuid;index"`
	Type            string          `gorm:"type:varchar(50)"`
	Memo            string          `gorm:"type:text"`
	Status          string          `gorm:"type:varchar(50)"`
	InitiatedOn     string          `gorm:"type:varchar(20)"`
	CompletedOn     string          `gorm:"type:varchar(20);index"`
	CreditAmount    decimal.Decimal `gorm:"type:decimal(15,2)"`
	DebitAmount     decimal.Decimal `gorm:"type:decimal(15,2)"`
	InitiatedBy     string          `gorm:"type:varchar(255)"`
	PropertyAddress string          `gorm:"type:varchar(255)"`
	Unit            string          `gorm:"type:varchar(50)"`
	TransactionID   string          `gorm:"type:varchar(100)"`
	ReferenceID     string          `gorm:"type:varchar(100)"`
	CreatedAt       time.Time       `gorm:"not null"`

	Property *PropertyModel `gorm:"foreignKey:PropertyID;references:ID"`
}

// TableName returns the table name for the RentPlatformTransactionModel.
func (RentPlatformTransactionModel) TableName() string {
	return "rent_platform_transactions"
}

// ToEntity converts a RentPlatformTransactionModel to a domain entity.
func (m *RentPlatformTransactionModel) ToEntity() *entity.RentPlatformTransaction {
	return &entity.RentPlatformTransaction{
		ID:              m.ID,
		PropertyID:      m.PropertyID,
		Type:            m.Type,
		Memo:            m.Memo,
		Status:          m.Status,
		InitiatedOn:     m.InitiatedOn,
		CompletedOn:     m.CompletedOn,
		CreditAmount:    m.CreditAmount,
		DebitAmount:     m.DebitAmount,
		InitiatedBy:     m.InitiatedBy,
		PropertyAddress: m.PropertyAddress,
		Unit:            m.Unit,
		TransactionID:   m.TransactionID,
		ReferenceID:     m.ReferenceID,
		CreatedAt:       m.CreatedAt,
	}
}

// RentPlatformTransactionFromEntity creates a RentPlatformTransactionModel from a domain entity.
func RentPlatformTransactionFromEntity(tx *entity.RentPlatformTransaction) *RentPlatformTransactionModel {
	return &RentPlatformTransactionModel{
		ID:              tx.ID,
		PropertyID:      tx.PropertyID,
		Type:            tx.Type,
		Memo:            tx.Memo,
		Status:          tx.Status,
		InitiatedOn:     tx.InitiatedOn,
		CompletedOn:     tx.CompletedOn,
		CreditAmount:    tx.CreditAmount,
		DebitAmount:     tx.DebitAmount,
		InitiatedBy:     tx.InitiatedBy,
		PropertyAddress: tx.PropertyAddress,
		Unit:            tx.Unit,
		TransactionID:   tx.TransactionID,
		ReferenceID:     tx.ReferenceID,
		CreatedAt:       tx.CreatedAt,
	}
}
