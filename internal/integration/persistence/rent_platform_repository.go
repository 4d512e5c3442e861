package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/rentledger/reconciler/internal/application/adapter"
	"github.com/rentledger/reconciler/internal/domain/entity"
	"github.com/rentledger/reconciler/internal/integration/persistence/model"
)

// rentPlatformRepository implements the adapter.RentPlatformRepository interface.
type rentPlatformRepository struct {
	db *gorm.DB
}

// NewRentPlatformRepository creates a new rent platform repository instance.
func NewRentPlatformRepository(db *gorm.DB) adapter.RentPlatformRepository {
	return &rentPlatformRepository{
		db: db,
	}
}

// ReplaceAll atomically replaces every rent platform transaction with the given set.
func (r *rentPlatformRepository) ReplaceAll(ctx context.Context, transactions []*entity.RentPlatformTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.RentPlatformTransactionModel{}).Error; err != nil {
			return err
		}
		if len(transactions) == 0 {
			return nil
		}
		models := make([]*model.RentPlatformTransactionModel, len(transactions))
		for i, t := range transactions {
			models[i] = model.RentPlatformTransactionFromEntity(t)
		}
		return tx.CreateInBatches(models, createBatchSize).Error
	})
}

// FindAll retrieves all rent platform transactions.
func (r *rentPlatformRepository) FindAll(ctx context.Context) ([]*entity.RentPlatformTransaction, error) {
	var txModels []model.RentPlatformTransactionModel
	result := r.db.WithContext(ctx).Order("completed_on ASC, created_at ASC").Find(&txModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.RentPlatformTransaction, len(txModels))
	for i, tm := range txModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}
