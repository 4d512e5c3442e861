package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentledger/reconciler/internal/application/adapter"
	"github.com/rentledger/reconciler/internal/domain/entity"
	domainerror "github.com/rentledger/reconciler/internal/domain/error"
	"github.com/rentledger/reconciler/internal/integration/persistence/model"
)

// createBatchSize bounds the number of rows per INSERT on bulk loads.
const createBatchSize = 500

// ledgerRepository implements the adapter.LedgerRepository interface.
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository instance.
func NewLedgerRepository(db *gorm.DB) adapter.LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

// ReplaceAll atomically replaces every ledger transaction with the given set.
func (r *ledgerRepository) ReplaceAll(ctx context.Context, transactions []*entity.LedgerTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.LedgerTransactionModel{}).Error; err != nil {
			return err
		}
		if len(transactions) == 0 {
			return nil
		}
		models := make([]*model.LedgerTransactionModel, len(transactions))
		for i, t := range transactions {
			models[i] = model.LedgerTransactionFromEntity(t)
		}
		return tx.CreateInBatches(models, createBatchSize).Error
	})
}

// FindByID retrieves a ledger transaction by its ID.
func (r *ledgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LedgerTransaction, error) {
	var txModel model.LedgerTransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&txModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrLedgerTransactionNotFound
		}
		return nil, result.Error
	}
	return txModel.ToEntity(), nil
}

// FindAll retrieves all ledger transactions.
func (r *ledgerRepository) FindAll(ctx context.Context) ([]*entity.LedgerTransaction, error) {
	var txModels []model.LedgerTransactionModel
	result := r.db.WithContext(ctx).Order("date ASC, created_at ASC").Find(&txModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.LedgerTransaction, len(txModels))
	for i, tm := range txModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}
