package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/rentledger/reconciler/internal/domain/entity"
)

// LedgerRepository defines the interface for ledger transaction data access.
// Loads are full reloads: the ledger export is the source of truth, so each
// load replaces everything.
type LedgerRepository interface {
	ReplaceAll(ctx context.Context, transactions []*entity.LedgerTransaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.LedgerTransaction, error)
	FindAll(ctx context.Context) ([]*entity.LedgerTransaction, error)
}
