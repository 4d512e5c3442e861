package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/rentledger/reconciler/internal/application/adapter"
	"github.com/rentledger/reconciler/internal/domain/entity"
	"github.com/rentledger/reconciler/internal/integration/persistence/model"
)

// mortgageRepository implements the adapter.MortgageRepository interface.
type mortgageRepository struct {
	db *gorm.DB
}

// NewMortgageRepository creates a new mortgage repository instance.
func NewMortgageRepository(db *gorm.DB) adapter.MortgageRepository {
	return &mortgageRepository{
		db: db,
	}
}

// ReplaceAll atomically replaces every mortgage statement with the given set.
func (r *mortgageRepository) ReplaceAll(ctx context.Context, statements []*entity.MortgageStatement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.MortgageStatementModel{}).Error; err != nil {
			return err
		}
		if len(statements) == 0 {
			return nil
		}
		models := make([]*model.MortgageStatementModel, len(statements))
		for i, s := range statements {
			models[i] = model.MortgageStatementFromEntity(s)
		}
		return tx.CreateInBatches(models, createBatchSize).Error
	})
}

// FindAll retrieves all mortgage statements.
func (r *mortgageRepository) FindAll(ctx context.Context) ([]*entity.MortgageStatement, error) {
	var stmtModels []model.MortgageStatementModel
	result := r.db.WithContext(ctx).Order("statement_date ASC, created_at ASC").Find(&stmtModels)
	if result.Error != nil {
		return nil, result.Error
	}

	statements := make([]*entity.MortgageStatement, len(stmtModels))
	for i, sm := range stmtModels {
		statements[i] = sm.ToEntity()
	}
	return statements, nil
}
