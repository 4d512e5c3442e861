// Package persistence implements repository interfaces for database operations.
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

// propertyRepository implements the adapter.PropertyRepository interface.
type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository instance.
func NewPropertyRepository(db *gorm.DB) adapter.PropertyRepository {
	return &propertyRepository{
		db: db,
	}
}

// Create creates a new property in the database.
func (r *propertyRepository) Create(ctx context.Context, property *entity.Property) error {
	propertyModel := model.PropertyFromEntity(property)
	result := r.db.WithContext(ctx).Create(propertyModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Update updates an existing property in the database.
func (r *propertyRepository) Update(ctx context.Context, property *entity.Property) error {
	propertyModel := model.PropertyFromEntity(property)
	result := r.db.WithContext(ctx).Save(propertyModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a property by its ID.
func (r *propertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	var propertyModel model.PropertyModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&propertyModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPropertyNotFound
		}
		return nil, result.Error
	}
	return propertyModel.ToEntity(), nil
}

// FindByName retrieves a property by its ledger name.
func (r *propertyRepository) FindByName(ctx context.Context, name string) (*entity.Property, error) {
	var propertyModel model.PropertyModel
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&propertyModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPropertyNotFound
		}
		return nil, result.Error
	}
	return propertyModel.ToEntity(), nil
}

// FindAll retrieves all properties ordered by name.
func (r *propertyRepository) FindAll(ctx context.Context) ([]*entity.Property, error) {
	var propertyModels []model.PropertyModel
	result := r.db.WithContext(ctx).Order("name ASC").Find(&propertyModels)
	if result.Error != nil {
		return nil, result.Error
	}

	properties := make([]*entity.Property, len(propertyModels))
	for i, pm := range propertyModels {
		properties[i] = pm.ToEntity()
	}
	return properties, nil
}
