package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/rentledger/reconciler/internal/application/adapter"
	"github.com/rentledger/reconciler/internal/domain/entity"
	"github.com/rentledger/reconciler/internal/integration/persistence/model"
)

// reportRepository implements the adapter.ReportRepository interface.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository instance.
func NewReportRepository(db *gorm.DB) adapter.ReportRepository {
	return &reportRepository{
		db: db,
	}
}

// ReplaceSource atomically replaces all rows of one report source, leaving
// other sources untouched.
func (r *reportRepository) ReplaceSource(ctx context.Context, source string, transactions []*entity.ReportTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("source = ?", source).Delete(&model.ReportTransactionModel{}).Error; err != nil {
			return err
		}
		if len(transactions) == 0 {
			return nil
		}
		models := make([]*model.ReportTransactionModel, len(transactions))
		for i, t := range transactions {
			models[i] = model.ReportTransactionFromEntity(t)
		}
		return tx.CreateInBatches(models, createBatchSize).Error
	})
}

// FindBySource retrieves all report transactions of one source.
func (r *reportRepository) FindBySource(ctx context.Context, source string) ([]*entity.ReportTransaction, error) {
	var txModels []model.ReportTransactionModel
	result := r.db.WithContext(ctx).
		Where("source = ?", source).
		Order("date ASC, created_at ASC").
		Find(&txModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.ReportTransaction, len(txModels))
	for i, tm := range txModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// FindAll retrieves all report transactions across sources.
func (r *reportRepository) FindAll(ctx context.Context) ([]*entity.ReportTransaction, error) {
	var txModels []model.ReportTransactionModel
	result := r.db.WithContext(ctx).Order("source ASC, date ASC, created_at ASC").Find(&txModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.ReportTransaction, len(txModels))
	for i, tm := range txModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}
