package adapter

import (
	"context"

	"github.com/rentledger/reconciler/internal/domain/entity"
)

// RentPlatformRepository defines the interface for rent platform payment data access.
type RentPlatformRepository interface {
	ReplaceAll(ctx context.Context, transactions []*entity.RentPlatformTransaction) error
	FindAll(ctx context.Context) ([]*entity.RentPlatformTransaction, error)
}
