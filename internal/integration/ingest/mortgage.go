package ingest

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rentledger/reconciler/internal/application/usecase/property"
	"github.com/rentledger/reconciler/internal/domain/entity"
	domainerror "github.com/rentledger/reconciler/internal/domain/error"
	"github.com/rentledger/reconciler/internal/integration/extract"
)

// componentSumTolerance allows for rounding differences between a
// statement's breakdown and its amount due.
var componentSumTolerance = decimal.NewFromFloat(0.01)

// LoadMortgageStatements extracts every statement PDF in dir. Documents no
// parser recognizes are skipped; statements whose breakdown disagrees with
// the amount due load flagged rather than being dropped.
func LoadMortgageStatements(dir string, resolver *property.Resolver) ([]*entity.MortgageStatement, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domainerror.NewIngestError(
				domainerror.ErrSourceFileMissing,
				fmt.Sprintf("statement directory %s does not exist", dir),
			)
		}
		return nil, fmt.Errorf("failed to read statement directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var statements []*entity.MortgageStatement
	for _, name := range names {
		path := filepath.Join(dir, name)
		text, err := extract.ExtractText(path)
		if err != nil {
			slog.Warn("Skipping unreadable statement", "file", name, "error", err)
			continue
		}

		stmt, err := extract.ParseStatement(text, name)
		if err != nil {
			if errors.Is(err, domainerror.ErrUnknownDocumentType) {
				slog.Debug("Skipping non-statement document", "file", name)
				continue
			}
			if errors.Is(err, domainerror.ErrStatementIncomplete) {
				slog.Warn("Skipping incomplete statement extraction", "file", name, "error", err)
				continue
			}
			return nil, err
		}

		if p := resolver.ResolveLoanNumber(stmt.LoanNumber); p != nil {
			stmt.PropertyID = &p.ID
		}
		validateStatement(stmt)
		statements = append(statements, stmt)
	}
	return statements, nil
}

// validateStatement checks the breakdown against the amount due and flags
// disagreements for the report.
func validateStatement(stmt *entity.MortgageStatement) {
	sum := stmt.ComponentSum()
	if sum.Sub(stmt.AmountDue).Abs().LessThan(componentSumTolerance) {
		return
	}
	stmt.Valid = false
	stmt.ValidationError = fmt.Sprintf(
		"Component sum $%s does not match total $%s",
		sum.StringFixed(2), stmt.AmountDue.StringFixed(2),
	)
}
