package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/rentledger/reconciler/internal/application/adapter"
	"github.com/rentledger/reconciler/internal/domain/entity"
	"github.com/rentledger/reconciler/internal/integration/persistence/model"
)

// managerRepository implements the adapter.ManagerRepository interface.
type managerRepository struct {
	db *gorm.DB
}

// NewManagerRepository creates a new manager repository instance.
func NewManagerRepository(db *gorm.DB) adapter.ManagerRepository {
	return &managerRepository{
		db: db,
	}
}

// ReplaceAll atomically replaces every manager transaction with the given set.
func (r *managerRepository) ReplaceAll(ctx context.Context, transactions []*entity.ManagerTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.ManagerTransactionModel{}).Error; err != nil {
			return err
		}
		if len(transactions) == 0 {
			return nil
		}
		models := make([]*model.ManagerTransactionModel, len(transactions))
		for i, t := range transactions {
			models[i] = model.ManagerTransactionFromEntity(t)
		}
		return tx.CreateInBatches(models, createBatchSize).Error
	})
}

// FindAll retrieves all manager transactions.
func (r *managerRepository) FindAll(ctx context.Context) ([]*entity.ManagerTransaction, error) {
	var txModels []model.ManagerTransactionModel
	result := r.db.WithContext(ctx).Order("entry_date ASC, created_at ASC").Find(&txModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.ManagerTransaction, len(txModels))
	for i, tm := range txModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}
