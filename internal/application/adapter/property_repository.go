// Package adapter defines interfaces for external dependencies of use cases.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/rentledger/reconciler/internal/domain/entity"
)

// PropertyRepository defines the interface for property data access.
type PropertyRepository interface {
	Create(ctx context.Context, property *entity.Property) error
	Update(ctx context.Context, property *entity.Property) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error)
	FindByName(ctx context.Context, name string) (*entity.Property, error)
	FindAll(ctx context.Context) ([]*entity.Property, error)
}
