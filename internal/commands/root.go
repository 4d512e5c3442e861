// Package commands wires the CLI surface to the use cases.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rentledger/reconciler/config"
	"github.com/rentledger/reconciler/internal/application/adapter"
	"github.com/rentledger/reconciler/internal/infra/db"
	"github.com/rentledger/reconciler/internal/integration/persistence"
	"github.com/rentledger/reconciler/internal/integration/persistence/model"
)

// app bundles the shared dependencies of every command.
type app struct {
	cfg      *config.Config
	database *db.Database

	properties   adapter.PropertyRepository
	ledger       adapter.LedgerRepository
	manager      adapter.ManagerRepository
	reports      adapter.ReportRepository
	mortgages    adapter.MortgageRepository
	rentPlatform adapter.RentPlatformRepository
	matches      adapter.MatchRepository
}

func newApp(cfg *config.Config) (*app, error) {
	database, err := db.NewSQLiteConnection(&cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(
		&model.PropertyModel{},
		&model.LedgerTransactionModel{},
		&model.ManagerTransactionModel{},
		&model.ReportTransactionModel{},
		&model.MortgageStatementModel{},
		&model.RentPlatformTransactionModel{},
		&model.ReconciliationMatchModel{},
	); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	gormDB := database.DB()
	return &app{
		cfg:          cfg,
		database:     database,
		properties:   persistence.NewPropertyRepository(gormDB),
		ledger:       persistence.NewLedgerRepository(gormDB),
		manager:      persistence.NewManagerRepository(gormDB),
		reports:      persistence.NewReportRepository(gormDB),
		mortgages:    persistence.NewMortgageRepository(gormDB),
		rentPlatform: persistence.NewRentPlatformRepository(gormDB),
		matches:      persistence.NewMatchRepository(gormDB),
	}, nil
}

func (a *app) close() error {
	return a.database.Close()
}

// NewRootCommand builds the CLI command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "reconciler",
		Short:         "Reconcile the owner ledger against manager, mortgage and rent platform records",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newReconcileCommand(),
		newReportCommand(),
		newManualCommand(),
		newExportCommand(),
	)
	return root
}
