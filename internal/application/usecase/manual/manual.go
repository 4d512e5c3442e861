// Package manual implements operator-driven reconciliation for rows the
// engine could not match.
package manual

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/rentledger/reconciler/internal/application/adapter"
	"github.com/rentledger/reconciler/internal/application/usecase/reconcile"
	"github.com/rentledger/reconciler/internal/domain/entity"
	domainerror "github.com/rentledger/reconciler/internal/domain/error"
)

// Input represents the input for an interactive manual session.
type Input struct {
	// Year restricts the unmatched listing; 0 = all years.
	Year int

	In  io.Reader
	Out io.Writer
}

// UseCase walks the operator through the unmatched ledger rows.
type UseCase struct {
	propertyRepo adapter.PropertyRepository
	ledgerRepo   adapter.LedgerRepository
	matchRepo    adapter.MatchRepository
}

// NewUseCase creates a new manual reconciliation use case instance.
func NewUseCase(
	propertyRepo adapter.PropertyRepository,
	ledgerRepo adapter.LedgerRepository,
	matchRepo adapter.MatchRepository,
) *UseCase {
	return &UseCase{
		propertyRepo: propertyRepo,
		ledgerRepo:   ledgerRepo,
		matchRepo:    matchRepo,
	}
}

// Mark records a manual match for one ledger transaction. It refuses rows
// that already carry a match of any kind.
func (uc *UseCase) Mark(ctx context.Context, ledgerID uuid.UUID, notes string) (*entity.ReconciliationMatch, error) {
	if _, err := uc.ledgerRepo.FindByID(ctx, ledgerID); err != nil {
		return nil, err
	}

	existing, err := uc.matchRepo.FindByLedgerTransactionID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, domainerror.ErrLedgerTransactionAlreadyMatched
	}

	match := entity.NewReconciliationMatch(entity.MatchTypeManual, 1.0)
	match.LedgerTransactionID = &ledgerID
	match.Notes = notes
	if err := uc.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to record manual match: %w", err)
	}
	return match, nil
}

// Unmatched returns ledger rows with no match, sorted for display.
func (uc *UseCase) Unmatched(ctx context.Context, year int) ([]*entity.LedgerTransaction, error) {
	ledger, err := uc.ledgerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	matches, err := uc.matchRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make(map[uuid.UUID]bool)
	for _, m := range matches {
		if m.LedgerTransactionID != nil {
			matched[*m.LedgerTransactionID] = true
		}
	}

	var unmatched []*entity.LedgerTransaction
	for _, tx := range ledger {
		if matched[tx.ID] || tx.Filtered || !reconcile.InYear(tx.Date, year) {
			continue
		}
		unmatched = append(unmatched, tx)
	}
	sort.SliceStable(unmatched, func(i, j int) bool {
		di, iok := reconcile.ParseDate(unmatched[i].Date)
		dj, jok := reconcile.ParseDate(unmatched[j].Date)
		if iok && jok && !di.Equal(dj) {
			return di.Before(dj)
		}
		return unmatched[i].ID.String() < unmatched[j].ID.String()
	})
	return unmatched, nil
}

// Execute runs the interactive session until the operator quits or the
// unmatched list empties.
func (uc *UseCase) Execute(ctx context.Context, input Input) error {
	properties, err := uc.propertyRepo.FindAll(ctx)
	if err != nil {
		return err
	}
	propName := make(map[uuid.UUID]string, len(properties))
	for _, p := range properties {
		propName[p.ID] = p.Name
	}

	scanner := bufio.NewScanner(input.In)
	for {
		unmatched, err := uc.Unmatched(ctx, input.Year)
		if err != nil {
			return err
		}
		if len(unmatched) == 0 {
			fmt.Fprintln(input.Out, "Nothing left to reconcile.")
			return nil
		}

		fmt.Fprintf(input.Out, "\nUNMATCHED TRANSACTIONS (%d):\n", len(unmatched))
		for i, tx := range unmatched {
			name := ""
			if tx.PropertyID != nil {
				name = propName[*tx.PropertyID]
			}
			fmt.Fprintf(input.Out, "  [%d] %-12s | %10s | %-25.25s | %-20.20s | %s\n",
				i+1, tx.Date, tx.Amount.StringFixed(2), tx.Payee, tx.Category, name)
		}
		fmt.Fprint(input.Out, "\nNumber to mark as reconciled, or q to quit: ")

		if !scanner.Scan() {
			return scanner.Err()
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			continue
		}
		if strings.EqualFold(answer, "q") {
			return nil
		}

		idx, err := strconv.Atoi(answer)
		if err != nil || idx < 1 || idx > len(unmatched) {
			fmt.Fprintln(input.Out, "Invalid selection.")
			continue
		}
		tx := unmatched[idx-1]

		fmt.Fprint(input.Out, "Reason: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		reason := strings.TrimSpace(scanner.Text())
		if reason == "" {
			reason = "Manually reconciled"
		}

		if _, err := uc.Mark(ctx, tx.ID, reason); err != nil {
			fmt.Fprintf(input.Out, "Could not mark transaction: %v\n", err)
			continue
		}
		fmt.Fprintf(input.Out, "Marked %s %s as reconciled.\n", tx.Date, tx.Amount.StringFixed(2))
	}
}
