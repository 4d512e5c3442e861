// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentledger/reconciler/internal/domain/entity"
)

// PropertyModel represents the properties table in the database.
type PropertyModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	LoanNumber     string    `gorm:"type:varchar(50);index"`
	Street         string    `gorm:"type:varchar(255)"`
	City           string    `gorm:"type:varchar(100)"`
	State          string    `gorm:"type:varchar(10)"`
	Zip            string    `gorm:"type:varchar(20)"`
	DisplayAddress string    `gorm:"type:varchar(255)"`
	ManagerManaged bool      `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for the PropertyModel.
func (PropertyModel) TableName() string {
	return "properties"
}

// ToEntity converts a PropertyModel to a domain Property entity.
func (m *PropertyModel) ToEntity() *entity.Property {
	return &entity.Property{
		ID:             m.ID,
		Name:           m.Name,
		LoanNumber:     m.LoanNumber,
		Street:         m.Street,
		City:           m.City,
		State:          m.State,
		Zip:            m.Zip,
		DisplayAddress: m.DisplayAddress,
		ManagerManaged: m.ManagerManaged,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// PropertyFromEntity creates a PropertyModel from a domain Property entity.
func PropertyFromEntity(property *entity.Property) *PropertyModel {
	return &PropertyModel{
		ID:             property.ID,
		Name:           property.Name,
		LoanNumber:     property.LoanNumber,
		Street:         property.Street,
		City:           property.City,
		State:          property.State,
		Zip:            property.Zip,
		DisplayAddress: property.DisplayAddress,
		ManagerManaged: property.ManagerManaged,
		CreatedAt:      property.CreatedAt,
		UpdatedAt:      property.UpdatedAt,
	}
}
