// Package export generates ledger-import files from extracted statements.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/rentledger/reconciler/internal/application/adapter"
	"github.com/rentledger/reconciler/internal/domain/entity"
)

// UseCase renders loaded mortgage statements as a ledger-import CSV, one
// negative row per payment component, so the owner ledger can record the
// split the reconciler expects to find.
type UseCase struct {
	propertyRepo adapter.PropertyRepository
	mortgageRepo adapter.MortgageRepository
}

// NewUseCase creates a new export use case instance.
func NewUseCase(propertyRepo adapter.PropertyRepository, mortgageRepo adapter.MortgageRepository) *UseCase {
	return &UseCase{
		propertyRepo: propertyRepo,
		mortgageRepo: mortgageRepo,
	}
}

var ledgerImportHeader = []string{"Date", "Amount", "Payee", "Description", "Category", "Property", "Unit"}

// Execute writes the import CSV to w and returns the row count.
func (uc *UseCase) Execute(ctx context.Context, w io.Writer) (int, error) {
	statements, err := uc.mortgageRepo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load mortgage statements: %w", err)
	}
	properties, err := uc.propertyRepo.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load properties: %w", err)
	}
	propName := make(map[uuid.UUID]string, len(properties))
	for _, p := range properties {
		propName[p.ID] = p.Name
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(ledgerImportHeader); err != nil {
		return 0, err
	}

	count := 0
	for _, stmt := range statements {
		payee, description := bankPayee(stmt)
		name := stmt.PropertyAddress
		if stmt.PropertyID != nil {
			if n, ok := propName[*stmt.PropertyID]; ok {
				name = n
			}
		}

		for _, comp := range stmt.Components() {
			record := []string{
				stmt.StatementDate,
				comp.Amount.Neg().StringFixed(2),
				payee,
				description,
				comp.SubCategory,
				name,
				"",
			}
			if err := writer.Write(record); err != nil {
				return count, err
			}
			count++
		}
	}
	writer.Flush()
	return count, writer.Error()
}

// bankPayee returns the payee and bank-statement description the payment
// will carry in the owner's bank feed, keyed by the loan's last four digits.
func bankPayee(stmt *entity.MortgageStatement) (string, string) {
	last4 := "0000"
	if len(stmt.LoanNumber) >= 4 {
		last4 = stmt.LoanNumber[len(stmt.LoanNumber)-4:]
	}

	switch stmt.Bank {
	case "PNC":
		return "PNC Mortgage Payment", fmt.Sprintf("PNC MORTGAGE     PNC PYMT   ***********%s", last4)
	case "Huntington":
		return "Huntington Bank", fmt.Sprintf("HUNTINGTON NAT'L MTG PMTS   ***********%s", last4)
	default:
		return stmt.Bank, fmt.Sprintf("Mortgage Payment ***********%s", last4)
	}
}
