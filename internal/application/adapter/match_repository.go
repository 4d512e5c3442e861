package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/rentledger/reconciler/internal/domain/entity"
)

// MatchRepository defines the interface for reconciliation match data access.
type MatchRepository interface {
	Create(ctx context.Context, match *entity.ReconciliationMatch) error
	CreateBatch(ctx context.Context, matches []*entity.ReconciliationMatch) error

	// DeleteAutomatic removes all non-manual matches. Manual matches survive
	// engine re-runs unless DeleteAll is used.
	DeleteAutomatic(ctx context.Context) error
	DeleteAll(ctx context.Context) error
	DeleteByID(ctx context.Context, id uuid.UUID) error

	FindAll(ctx context.Context) ([]*entity.ReconciliationMatch, error)
	FindManual(ctx context.Context) ([]*entity.ReconciliationMatch, error)
	FindByLedgerTransactionID(ctx context.Context, id uuid.UUID) ([]*entity.ReconciliationMatch, error)
	FindByManagerTransactionID(ctx context.Context, id uuid.UUID) ([]*entity.ReconciliationMatch, error)
	FindByReportTransactionID(ctx context.Context, id uuid.UUID) ([]*entity.ReconciliationMatch, error)
	FindByMortgageStatementID(ctx context.Context, id uuid.UUID) ([]*entity.ReconciliationMatch, error)
	FindByRentPlatformID(ctx context.Context, id uuid.UUID) ([]*entity.ReconciliationMatch, error)
}
