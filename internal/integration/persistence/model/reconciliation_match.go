package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentledger/reconciler/internal/domain/entity"
)

// ReconciliationMatchModel represents the reconciliation_matches table.
type ReconciliationMatchModel struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LedgerTransactionID  *uuid.UUID `gorm:"type:uuid;index"`
	ManagerTransactionID *uuid.UUID `gorm:"type:uuid;index"`
	ReportTransactionID  *uuid.UUID `gorm:"type:uuid;index"`
	ReportSource         string     `gorm:"type:varchar(50)"`
	MortgageStatementID  *uuid.UUID `gorm:"type:uuid;index"`
	MortgageComponent    string     `gorm:"type:varchar(100)"`
	RentPlatformID       *uuid.UUID `gorm:"type:uuid;index"`
	Score                float64    `gorm:"not null"`
	MatchType            string     `gorm:"type:varchar(50);not null;index"`
	Notes                string     `gorm:"type:text"`
	CreatedAt            time.Time  `gorm:"not null"`
}

// TableName returns the table name for the ReconciliationMatchModel.
func (ReconciliationMatchModel) TableName() string {
	return "reconciliation_matches"
}

// ToEntity converts a ReconciliationMatchModel to a domain entity.
func (m *ReconciliationMatchModel) ToEntity() *entity.ReconciliationMatch {
	return &entity.ReconciliationMatch{
		ID:                   m.ID,
		LedgerTransactionID:  m.LedgerTransactionID,
		ManagerTransactionID: m.ManagerTransactionID,
		ReportTransactionID:  m.ReportTransactionID,
		ReportSource:         m.ReportSource,
		MortgageStatementID:  m.MortgageStatementID,
		MortgageComponent:    m.MortgageComponent,
		RentPlatformID:       m.RentPlatformID,
		Score:                m.Score,
		MatchType:            m.MatchType,
		Notes:                m.Notes,
		CreatedAt:            m.CreatedAt,
	}
}

// ReconciliationMatchFromEntity creates a ReconciliationMatchModel from a domain entity.
func ReconciliationMatchFromEntity(match *entity.ReconciliationMatch) *ReconciliationMatchModel {
	return &ReconciliationMatchModel{
		ID:                   match.ID,
		LedgerTransactionID:  match.LedgerTransactionID,
		ManagerTransactionID: match.ManagerTransactionID,
		ReportTransactionID:  match.ReportTransactionID,
		ReportSource:         match.ReportSource,
		MortgageStatementID:  match.MortgageStatementID,
		MortgageComponent:    match.MortgageComponent,
		RentPlatformID:       match.RentPlatformID,
		Score:                match.Score,
		MatchType:            match.MatchType,
		Notes:                match.Notes,
		CreatedAt:            match.CreatedAt,
	}
}
