package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/rentledger/reconciler/internal/application/usecase/property"
	"github.com/rentledger/reconciler/internal/domain/entity"
	domainerror "github.com/rentledger/reconciler/internal/domain/error"
	"github.com/rentledger/reconciler/internal/domain/valueobject"
	"github.com/rentledger/reconciler/internal/integration/ingest"
)

// loadAll refreshes the database from the configured input files and
// returns the report source configurations found in the sources file.
// Missing optional inputs are skipped; only the ledger is required.
func (a *app) loadAll(ctx context.Context) ([]valueobject.ReportSourceConfig, error) {
	input := a.cfg.Input

	ledgerRules, err := ingest.LoadRuleSet(input.LedgerFilterRules, ingest.LedgerFilterFields...)
	if err != nil {
		return nil, err
	}
	ledgerData, err := os.ReadFile(input.LedgerFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}

	// First pass collects property names to seed; the second links rows to
	// the seeded properties.
	scan, err := ingest.ParseLedgerCSV(bytes.NewReader(ledgerData), ledgerRules, property.NewResolver(nil))
	if err != nil {
		return nil, err
	}
	seeder := property.NewSeedUseCase(a.properties)
	if _, err := seeder.Execute(ctx, property.SeedInput{Names: scan.PropertyNames}); err != nil {
		return nil, err
	}

	properties, err := a.properties.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resolver := property.NewResolver(properties)

	ledgerResult, err := ingest.ParseLedgerCSV(bytes.NewReader(ledgerData), ledgerRules, resolver)
	if err != nil {
		return nil, err
	}
	if err := a.ledger.ReplaceAll(ctx, ledgerResult.Transactions); err != nil {
		return nil, err
	}
	slog.Info("Loaded ledger", "rows", len(ledgerResult.Transactions))

	if err := a.loadManager(ctx, resolver); err != nil {
		return nil, err
	}
	if err := a.loadRentPlatform(ctx, resolver); err != nil {
		return nil, err
	}
	if err := a.loadMortgages(ctx, resolver); err != nil {
		return nil, err
	}
	return a.loadReportSources(ctx, resolver)
}

func (a *app) loadManager(ctx context.Context, resolver *property.Resolver) error {
	f, err := os.Open(a.cfg.Input.ManagerGLFile)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Manager GL file not found, skipping", "path", a.cfg.Input.ManagerGLFile)
			return nil
		}
		return err
	}
	defer f.Close()

	rules, err := ingest.LoadRuleSet(a.cfg.Input.ManagerFilterRules)
	if err != nil {
		return err
	}
	transactions, err := ingest.ParseManagerCSV(f, rules, resolver)
	if err != nil {
		return err
	}
	if err := a.manager.ReplaceAll(ctx, transactions); err != nil {
		return err
	}
	slog.Info("Loaded manager GL", "rows", len(transactions))
	return nil
}

func (a *app) loadRentPlatform(ctx context.Context, resolver *property.Resolver) error {
	f, err := os.Open(a.cfg.Input.RentPlatformFile)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Rent platform file not found, skipping", "path", a.cfg.Input.RentPlatformFile)
			return nil
		}
		return err
	}
	defer f.Close()

	transactions, skipped, err := ingest.ParseRentPlatformCSV(f, resolver)
	if err != nil {
		return err
	}
	if err := a.rentPlatform.ReplaceAll(ctx, transactions); err != nil {
		return err
	}
	slog.Info("Loaded rent platform payments", "rows", len(transactions), "skipped", skipped)
	return nil
}

func (a *app) loadMortgages(ctx context.Context, resolver *property.Resolver) error {
	statements, err := ingest.LoadMortgageStatements(a.cfg.Input.MortgageStatementDir, resolver)
	if err != nil {
		if errors.Is(err, domainerror.ErrSourceFileMissing) {
			slog.Warn("Mortgage statement directory not found, skipping", "path", a.cfg.Input.MortgageStatementDir)
			return nil
		}
		return err
	}
	if err := a.mortgages.ReplaceAll(ctx, statements); err != nil {
		return err
	}
	slog.Info("Loaded mortgage statements", "count", len(statements))
	return nil
}

func (a *app) loadReportSources(ctx context.Context, resolver *property.Resolver) ([]valueobject.ReportSourceConfig, error) {
	specs, err := ingest.LoadSources(a.cfg.Input.SourcesFile)
	if err != nil {
		return nil, err
	}

	configs := make([]valueobject.ReportSourceConfig, 0, len(specs))
	for _, spec := range specs {
		configs = append(configs, spec.Config())

		f, err := os.Open(spec.File)
		if err != nil {
			if os.IsNotExist(err) {
				slog.Warn("Report source file not found, skipping", "source", spec.Name, "path", spec.File)
				continue
			}
			return nil, err
		}

		transactions, parseErr := parseReportFile(f, spec, resolver)
		f.Close()
		if parseErr != nil {
			return nil, fmt.Errorf("failed to parse %s report: %w", spec.Name, parseErr)
		}
		if err := a.reports.ReplaceSource(ctx, spec.Name, transactions); err != nil {
			return nil, err
		}
		slog.Info("Loaded report source", "source", spec.Name, "rows", len(transactions))
	}
	return configs, nil
}

func parseReportFile(f *os.File, spec ingest.SourceSpec, resolver *property.Resolver) ([]*entity.ReportTransaction, error) {
	switch spec.Format {
	case "html":
		return ingest.ParseReportHTML(f, spec, resolver)
	case "", "csv":
		return ingest.ParseReportCSV(f, spec, resolver)
	default:
		return nil, fmt.Errorf("unknown report format %q", spec.Format)
	}
}
