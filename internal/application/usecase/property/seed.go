package property

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rentledger/reconciler/internal/application/adapter"
	"github.com/rentledger/reconciler/internal/domain/entity"
	domainerror "github.com/rentledger/reconciler/internal/domain/error"
)

// SeedInput represents the input for property seeding.
type SeedInput struct {
	// Names are the property labels seen in the ledger export.
	Names []string
}

// SeedOutput represents the output of property seeding.
type SeedOutput struct {
	Created int
}

// SeedUseCase creates missing properties from ledger property names.
// Seeding is additive only; properties are never deleted by the pipeline.
type SeedUseCase struct {
	propertyRepo adapter.PropertyRepository
}

// NewSeedUseCase creates a new SeedUseCase instance.
func NewSeedUseCase(propertyRepo adapter.PropertyRepository) *SeedUseCase {
	return &SeedUseCase{propertyRepo: propertyRepo}
}

// Execute performs the property seeding.
func (uc *SeedUseCase) Execute(ctx context.Context, input SeedInput) (*SeedOutput, error) {
	seen := make(map[string]struct{})
	created := 0

	for _, name := range input.Names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		_, err := uc.propertyRepo.FindByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domainerror.ErrPropertyNotFound) {
			return nil, fmt.Errorf("failed to look up property %q: %w", name, err)
		}

		if err := uc.propertyRepo.Create(ctx, entity.NewProperty(name)); err != nil {
			return nil, fmt.Errorf("failed to create property %q: %w", name, err)
		}
		created++
		slog.Info("Seeded property from ledger", "name", name)
	}

	return &SeedOutput{Created: created}, nil
}
