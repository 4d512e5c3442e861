package adapter

import (
	"context"

	"github.com/rentledger/reconciler/internal/domain/entity"
)

// ManagerRepository defines the interface for manager GL export data access.
type ManagerRepository interface {
	ReplaceAll(ctx context.Context, transactions []*entity.ManagerTransaction) error
	FindAll(ctx context.Context) ([]*entity.ManagerTransaction, error)
}
