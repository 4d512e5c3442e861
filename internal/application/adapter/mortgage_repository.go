package adapter

import (
	"context"

	"github.com/rentledger/reconciler/internal/domain/entity"
)

// MortgageRepository defines the interface for mortgage statement data access.
type MortgageRepository interface {
	ReplaceAll(ctx context.Context, statements []*entity.MortgageStatement) error
	FindAll(ctx context.Context) ([]*entity.MortgageStatement, error)
}
