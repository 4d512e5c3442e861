package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentledger/reconciler/internal/domain/entity"
)

// ManagerTransactionModel represents the manager_transactions table.
type ManagerTransactionModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PropertyID        *uuid.UUID      `gorm:"type:uuid;index"`
	BuildingName      string          `gorm:"type:varchar(255)"`
	UnitNumber        string          `gorm:"type:varchar(50)"`
	EntryDate         string          `gorm:"type:varchar(20);index"`
	GLAccountName     string          `gorm:"type:varchar(255)"`
	CombinedGLAccount string          `gorm:"type:varchar(255)"`
	PayeeName         string          `gorm:"type:varchar(255)"`
	PostingMemo       string          `gorm:"type:text"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PropertyStreet    string          `gorm:"type:varchar(255)"`
	PropertyCity      string          `gorm:"type:varchar(100)"`
	PropertyState     string          `gorm:"type:varchar(10)"`
	PropertyZip       string          `gorm:"type:varchar(20)"`
	Filtered          bool            `gorm:"default:false;index"`
	FilterReason      string          `gorm:"type:varchar(255)"`
	CreatedAt         time.Time       `gorm:"not null"`

	Property *PropertyModel `gorm:"foreignKey:PropertyID;references:ID"`
}

// TableName returns the table name for the ManagerTransactionModel.
func (ManagerTransactionModel) TableName() string {
	return "manager_transactions"
}

// ToEntity converts a ManagerTransactionModel to a domain entity.
func (m *ManagerTransactionModel) ToEntity() *entity.ManagerTransaction {
	return &entity.ManagerTransaction{
		ID:                m.ID,
		PropertyID:        m.PropertyID,
		BuildingName:      m.BuildingName,
		UnitNumber:        m.UnitNumber,
		EntryDate:         m.EntryDate,
		GLAccountName:     m.GLAccountName,
		CombinedGLAccount: m.CombinedGLAccount,
		PayeeName:         m.PayeeName,
		PostingMemo:       m.PostingMemo,
		Amount:            m.Amount,
		PropertyStreet:    m.PropertyStreet,
		PropertyCity:      m.PropertyCity,
		PropertyState:     m.PropertyState,
		PropertyZip:       m.PropertyZip,
		Filtered:          m.Filtered,
		FilterReason:      m.FilterReason,
		CreatedAt:         m.CreatedAt,
	}
}

// ManagerTransactionFromEntity creates a ManagerTransactionModel from a domain entity.
func ManagerTransactionFromEntity(tx *entity.ManagerTransaction) *ManagerTransactionModel {
	return &ManagerTransactionModel{
		ID:                tx.ID,
		PropertyID:        tx.PropertyID,
		BuildingName:      tx.BuildingName,
		UnitNumber:        tx.UnitNumber,
		EntryDate:         tx.EntryDate,
		GLAccountName:     tx.GLAccountName,
		CombinedGLAccount: tx.CombinedGLAccount,
		PayeeName:         tx.PayeeName,
		PostingMemo:       tx.PostingMemo,
		Amount:            tx.Amount,
		PropertyStreet:    tx.PropertyStreet,
		PropertyCity:      tx.PropertyCity,
		PropertyState:     tx.PropertyState,
		PropertyZip:       tx.PropertyZip,
		Filtered:          tx.Filtered,
		FilterReason:      tx.FilterReason,
		CreatedAt:         tx.CreatedAt,
	}
}
