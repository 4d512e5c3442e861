package adapter

import (
	"context"

	"github.com/rentledger/reconciler/internal/domain/entity"
)

// ReportRepository defines the interface for income/expense report rows.
// Rows from all report sources share one table, keyed by source name.
type ReportRepository interface {
	ReplaceSource(ctx context.Context, source string, transactions []*entity.ReportTransaction) error
	FindBySource(ctx context.Context, source string) ([]*entity.ReportTransaction, error)
	FindAll(ctx context.Context) ([]*entity.ReportTransaction, error)
}
