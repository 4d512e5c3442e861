package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentledger/reconciler/internal/domain/entity"
)

// MortgageStatementModel represents the mortgage_statements table.
type MortgageStatementModel struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PropertyID           *uuid.UUID      `gorm:"type:uuid;index"`
	Bank                 string          `gorm:"type:varchar(50)"`
	PropertyAddress      string          `gorm:"type:varchar(255)"`
	StatementDate        string          `gorm:"type:varchar(20);index"`
	PaymentDueDate       string          `gorm:"type:varchar(20)"`
	AmountDue            decimal.Decimal `gorm:"type:decimal(15,2)"`
	Principal            decimal.Decimal `gorm:"type:decimal(15,2)"`
	Interest             decimal.Decimal `gorm:"type:decimal(15,2)"`
	Escrow               decimal.Decimal `gorm:"type:decimal(15,2)"`
	Fees                 decimal.Decimal `gorm:"type:decimal(15,2)"`
	OutstandingPrincipal decimal.Decimal `gorm:"type:decimal(15,2)"`
	LoanNumber           string          `gorm:"type:varchar(50);index"`
	SourceFile           string          `gorm:"type:varchar(255)"`
	Valid                bool            `gorm:"not null"`
	ValidationError      string          `gorm:"type:varchar(255)"`
	CreatedAt            time.Time       `gorm:"not null"`

	Property *PropertyModel `gorm:"foreignKey:PropertyID;references:ID"`
}

// TableName returns the table name for the MortgageStatementModel.
func (MortgageStatementModel) TableName() string {
	return "mortgage_statements"
}

// ToEntity converts a MortgageStatementModel to a domain entity.
func (m *MortgageStatementModel) ToEntity() *entity.MortgageStatement {
	return &entity.MortgageStatement{
		ID:                   m.ID,
		PropertyID:           m.PropertyID,
		Bank:                 m.Bank,
		PropertyAddress:      m.PropertyAddress,
		StatementDate:        m.StatementDate,
		PaymentDueDate:       m.PaymentDueDate,
		AmountDue:            m.AmountDue,
		Principal:            m.Principal,
		Interest:             m.Interest,
		Escrow:               m.Escrow,
		Fees:                 m.Fees,
		OutstandingPrincipal: m.OutstandingPrincipal,
		LoanNumber:           m.LoanNumber,
		SourceFile:           m.SourceFile,
		Valid:                m.Valid,
		ValidationError:      m.ValidationError,
		CreatedAt:            m.CreatedAt,
	}
}

// MortgageStatementFromEntity creates a MortgageStatementModel from a domain entity.
func MortgageStatementFromEntity(s *entity.MortgageStatement) *MortgageStatementModel {
	return &MortgageStatementModel{
		ID:                   s.ID,
		PropertyID:           s.PropertyID,
		Bank:                 s.Bank,
		PropertyAddress:      s.PropertyAddress,
		StatementDate:        s.StatementDate,
		PaymentDueDate:       s.PaymentDueDate,
		AmountDue:            s.AmountDue,
		Principal:            s.Principal,
		Interest:             s.Interest,
		Escrow:               s.Escrow,
		Fees:                 s.Fees,
		OutstandingPrincipal: s.OutstandingPrincipal,
		LoanNumber:           s.LoanNumber,
		SourceFile:           s.SourceFile,
		Valid:                s.Valid,
		ValidationError:      s.ValidationError,
		CreatedAt:            s.CreatedAt,
	}
}
