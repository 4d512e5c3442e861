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

// matchRepository implements the adapter.MatchRepository interface.
type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new match repository instance.
func NewMatchRepository(db *gorm.DB) adapter.MatchRepository {
	return &matchRepository{
		db: db,
	}
}

// Create creates a new reconciliation match in the database.
func (r *matchRepository) Create(ctx context.Context, match *entity.ReconciliationMatch) error {
	matchModel := model.ReconciliationMatchFromEntity(match)
	result := r.db.WithContext(ctx).Create(matchModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// CreateBatch creates all given matches in one transaction.
func (r *matchRepository) CreateBatch(ctx context.Context, matches []*entity.ReconciliationMatch) error {
	if len(matches) == 0 {
		return nil
	}
	models := make([]*model.ReconciliationMatchModel, len(matches))
	for i, m := range matches {
		models[i] = model.ReconciliationMatchFromEntity(m)
	}
	return r.db.WithContext(ctx).CreateInBatches(models, createBatchSize).Error
}

// DeleteAutomatic removes all non-manual matches.
func (r *matchRepository) DeleteAutomatic(ctx context.Context) error {
	result := r.db.WithContext(ctx).
		Where("match_type <> ?", entity.MatchTypeManual).
		Delete(&model.ReconciliationMatchModel{})
	return result.Error
}

// DeleteAll removes every match, manual ones included.
func (r *matchRepository) DeleteAll(ctx context.Context) error {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.ReconciliationMatchModel{})
	return result.Error
}

// DeleteByID removes a single match by its ID.
func (r *matchRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ReconciliationMatchModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrMatchNotFound
	}
	return nil
}

// FindAll retrieves all matches.
func (r *matchRepository) FindAll(ctx context.Context) ([]*entity.ReconciliationMatch, error) {
	return r.findWhere(ctx, nil)
}

// FindManual retrieves all manually recorded matches.
func (r *matchRepository) FindManual(ctx context.Context) ([]*entity.ReconciliationMatch, error) {
	return r.findWhere(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("match_type = ?", entity.MatchTypeManual)
	})
}

// FindByLedgerTransactionID retrieves matches referencing a ledger transaction.
func (r *matchRepository) FindByLedgerTransactionID(ctx context.Context, id uuid.UUID) ([]*entity.ReconciliationMatch, error) {
	return r.findWhere(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("ledger_transaction_id = ?", id)
	})
}

// FindByManagerTransactionID retrieves matches referencing a manager transaction.
func (r *matchRepository) FindByManagerTransactionID(ctx context.Context, id uuid.UUID) ([]*entity.ReconciliationMatch, error) {
	return r.findWhere(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("manager_transaction_id = ?", id)
	})
}

// FindByReportTransactionID retrieves matches referencing a report transaction.
func (r *matchRepository) FindByReportTransactionID(ctx context.Context, id uuid.UUID) ([]*entity.ReconciliationMatch, error) {
	return r.findWhere(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("report_transaction_id = ?", id)
	})
}

// FindByMortgageStatementID retrieves matches referencing a mortgage statement.
func (r *matchRepository) FindByMortgageStatementID(ctx context.Context, id uuid.UUID) ([]*entity.ReconciliationMatch, error) {
	return r.findWhere(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("mortgage_statement_id = ?", id)
	})
}

// FindByRentPlatformID retrieves matches referencing a rent platform payment.
func (r *matchRepository) FindByRentPlatformID(ctx context.Context, id uuid.UUID) ([]*entity.ReconciliationMatch, error) {
	return r.findWhere(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("rent_platform_id = ?", id)
	})
}

func (r *matchRepository) findWhere(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]*entity.ReconciliationMatch, error) {
	query := r.db.WithContext(ctx).Order("created_at ASC")
	if scope != nil {
		query = scope(query)
	}

	var matchModels []model.ReconciliationMatchModel
	result := query.Find(&matchModels)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	matches := make([]*entity.ReconciliationMatch, len(matchModels))
	for i, mm := range matchModels {
		matches[i] = mm.ToEntity()
	}
	return matches, nil
}
