// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Property represents a rental property tracked in the ledger.
// The canonical Name is the ledger's property label and is unique.
type Property struct {
	ID             uuid.UUID
	Name           string
	LoanNumber     string
	Street         string
	City           string
	State          string
	Zip            string
	DisplayAddress string
	ManagerManaged bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewProperty creates a new Property entity. Properties default to
// manager-managed until explicitly marked otherwise.
func NewProperty(name string) *Property {
	now := time.Now().UTC()

	return &Property{
		ID:             uuid.New(),
		Name:           name,
		ManagerManaged: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
