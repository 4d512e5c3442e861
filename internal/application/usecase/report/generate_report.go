// Package report renders the reconciliation audit report.
package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentledger/reconciler/internal/application/adapter"
	"github.com/rentledger/reconciler/internal/application/usecase/categorymap"
	"github.com/rentledger/reconciler/internal/application/usecase/reconcile"
	"github.com/rentledger/reconciler/internal/domain/entity"
	"github.com/rentledger/reconciler/internal/domain/valueobject"
)

// listLimit caps the long per-section listings; the report is a working
// document, not an export.
const listLimit = 15

// GenerateInput represents the input for report generation.
type GenerateInput struct {
	// Year restricts listings to that calendar year; 0 = all years.
	Year int

	// Summary carries run-scoped findings that are not persisted, such as
	// unsplit lump sums and component mismatches.
	Summary valueobject.RunSummary
}

// GenerateUseCase renders the audit report for the latest run.
type GenerateUseCase struct {
	propertyRepo     adapter.PropertyRepository
	ledgerRepo       adapter.LedgerRepository
	managerRepo      adapter.ManagerRepository
	mortgageRepo     adapter.MortgageRepository
	rentPlatformRepo adapter.RentPlatformRepository
	matchRepo        adapter.MatchRepository
	glMapper         *categorymap.Mapper
}

// NewGenerateUseCase creates a new GenerateUseCase instance.
func NewGenerateUseCase(
	propertyRepo adapter.PropertyRepository,
	ledgerRepo adapter.LedgerRepository,
	managerRepo adapter.ManagerRepository,
	mortgageRepo adapter.MortgageRepository,
	rentPlatformRepo adapter.RentPlatformRepository,
	matchRepo adapter.MatchRepository,
) *GenerateUseCase {
	return &GenerateUseCase{
		propertyRepo:     propertyRepo,
		ledgerRepo:       ledgerRepo,
		managerRepo:      managerRepo,
		mortgageRepo:     mortgageRepo,
		rentPlatformRepo: rentPlatformRepo,
		matchRepo:        matchRepo,
		glMapper:         categorymap.NewManagerGLMapper(),
	}
}

// Execute renders the report to w.
func (uc *GenerateUseCase) Execute(ctx context.Context, w io.Writer, input GenerateInput) error {
	properties, err := uc.propertyRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load properties: %w", err)
	}
	propName := make(map[uuid.UUID]string, len(properties))
	propManaged := make(map[uuid.UUID]bool, len(properties))
	for _, p := range properties {
		propName[p.ID] = p.Name
		propManaged[p.ID] = p.ManagerManaged
	}

	ledger, err := uc.ledgerRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ledger transactions: %w", err)
	}
	manager, err := uc.managerRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load manager transactions: %w", err)
	}
	statements, err := uc.mortgageRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load mortgage statements: %w", err)
	}
	rent, err := uc.rentPlatformRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load rent platform transactions: %w", err)
	}
	matches, err := uc.matchRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load matches: %w", err)
	}

	matchedLedger := make(map[uuid.UUID]bool)
	matchedManager := make(map[uuid.UUID]bool)
	matchedRent := make(map[uuid.UUID]bool)
	byStatement := make(map[uuid.UUID][]*entity.ReconciliationMatch)
	for _, m := range matches {
		if m.LedgerTransactionID != nil {
			matchedLedger[*m.LedgerTransactionID] = true
		}
		if m.ManagerTransactionID != nil {
			matchedManager[*m.ManagerTransactionID] = true
		}
		if m.RentPlatformID != nil {
			matchedRent[*m.RentPlatformID] = true
		}
		if m.MortgageStatementID != nil {
			byStatement[*m.MortgageStatementID] = append(byStatement[*m.MortgageStatementID], m)
		}
	}
	ledgerByID := make(map[uuid.UUID]*entity.LedgerTransaction, len(ledger))
	for _, tx := range ledger {
		ledgerByID[tx.ID] = tx
	}

	yearLabel := ""
	if input.Year != 0 {
		yearLabel = fmt.Sprintf(" FOR %d", input.Year)
	}
	fmt.Fprintf(w, "=== RECONCILIATION REPORT%s ===\n", yearLabel)

	uc.writeSummary(w, input)

	unmatched, noSource := uc.splitUnmatchedLedger(ledger, matchedLedger, propName, input.Year)
	uc.writeNoSourceSection(w, noSource, propName)
	uc.writeUnmatchedLedger(w, unmatched, propName)
	uc.writeUnmatchedIncomeManagement(w, unmatched, propManaged)
	uc.writeUnmatchedManager(w, manager, matchedManager, ledger, propName, input.Year)
	uc.writeFlaggedStatements(w, statements, byStatement, ledgerByID, input.Year)
	uc.writeComponentMismatches(w, input.Summary)
	uc.writeUnsplitPayments(w, input.Summary)
	uc.writeUnmatchedRentPlatform(w, rent, matchedRent, propName, input.Year)

	return nil
}

func (uc *GenerateUseCase) writeSummary(w io.Writer, input GenerateInput) {
	fmt.Fprintf(w, "\nSOURCE SUMMARY:\n")
	for _, s := range input.Summary.SourceStats {
		if s.Absent {
			fmt.Fprintf(w, "  %-14s no data loaded\n", s.Source+":")
			continue
		}
		if input.Year != 0 {
			fmt.Fprintf(w, "  %-14s %d loaded (%d in %d), %d matched\n",
				s.Source+":", s.Loaded, s.LoadedInYear, input.Year, s.Matched)
		} else {
			fmt.Fprintf(w, "  %-14s %d loaded, %d matched\n", s.Source+":", s.Loaded, s.Matched)
		}
	}
	fmt.Fprintf(w, "\nTOTAL MATCHES: %d", input.Summary.TotalMatches)
	if input.Summary.ManualPreserved > 0 {
		fmt.Fprintf(w, " (+%d manual preserved)", input.Summary.ManualPreserved)
	}
	fmt.Fprintf(w, "\nMORTGAGE COMPONENTS: %d/%d matched\n",
		input.Summary.ComponentsMatched, input.Summary.ComponentsExpected)
}

// splitUnmatchedLedger partitions unmatched ledger rows into those with a
// reconciliation source and those without one, sorted for stable output.
func (uc *GenerateUseCase) splitUnmatchedLedger(
	ledger []*entity.LedgerTransaction,
	matched map[uuid.UUID]bool,
	propName map[uuid.UUID]string,
	year int,
) (unmatched, noSource []*entity.LedgerTransaction) {
	for _, tx := range ledger {
		if matched[tx.ID] || tx.Filtered || !reconcile.InYear(tx.Date, year) {
			continue
		}
		if valueobject.HasNoReconciliationSource(tx.Category, tx.SubCategory) {
			noSource = append(noSource, tx)
		} else {
			unmatched = append(unmatched, tx)
		}
	}
	byPropCatDate := func(txs []*entity.LedgerTransaction) {
		sort.SliceStable(txs, func(i, j int) bool {
			pi, pj := propName[deref(txs[i].PropertyID)], propName[deref(txs[j].PropertyID)]
			if pi != pj {
				return pi < pj
			}
			if txs[i].Category != txs[j].Category {
				return txs[i].Category < txs[j].Category
			}
			return formatDate(txs[i].Date) < formatDate(txs[j].Date)
		})
	}
	byPropCatDate(unmatched)
	byPropCatDate(noSource)
	return unmatched, noSource
}

func (uc *GenerateUseCase) writeNoSourceSection(w io.Writer, txs []*entity.LedgerTransaction, propName map[uuid.UUID]string) {
	if len(txs) == 0 {
		return
	}
	fmt.Fprintf(w, "\nNO RECONCILIATION SOURCE AVAILABLE (%d):\n", len(txs))
	fmt.Fprintf(w, "    These categories (insurance, taxes, HOA dues, bank fees) have no external source to check against.\n")
	for _, tx := range txs {
		fmt.Fprintf(w, "  %-12s | %10s | %-25.25s | %-20.20s | %-20.20s\n",
			formatDate(tx.Date), tx.Amount.StringFixed(2), tx.Payee,
			categoryLabel(tx), propName[deref(tx.PropertyID)])
	}
}

func (uc *GenerateUseCase) writeUnmatchedLedger(w io.Writer, txs []*entity.LedgerTransaction, propName map[uuid.UUID]string) {
	fmt.Fprintf(w, "\nUNMATCHED LEDGER TRANSACTIONS (%d):\n", len(txs))
	if len(txs) == 0 {
		return
	}
	fmt.Fprintf(w, "  %-12s | %10s | %-25s | %-20s | %-20s\n", "Date", "Amount", "Payee", "Category", "Property")
	fmt.Fprintf(w, "  %s-|-%s-|-%s-|-%s-|-%s\n",
		strings.Repeat("-", 12), strings.Repeat("-", 10), strings.Repeat("-", 25),
		strings.Repeat("-", 20), strings.Repeat("-", 20))
	for _, tx := range txs {
		fmt.Fprintf(w, "  %-12s | %10s | %-25.25s | %-20.20s | %-20.20s\n",
			formatDate(tx.Date), tx.Amount.StringFixed(2), tx.Payee,
			categoryLabel(tx), propName[deref(tx.PropertyID)])
	}
}

// writeUnmatchedIncomeManagement lists income and management rows from
// manager-managed properties that found no manager-side counterpart.
func (uc *GenerateUseCase) writeUnmatchedIncomeManagement(w io.Writer, unmatched []*entity.LedgerTransaction, propManaged map[uuid.UUID]bool) {
	var rows []*entity.LedgerTransaction
	for _, tx := range unmatched {
		if !strings.Contains(tx.Category, "Management") && !strings.Contains(tx.Category, "Income") {
			continue
		}
		if tx.PropertyID != nil {
			if managed, ok := propManaged[*tx.PropertyID]; ok && !managed {
				continue
			}
		}
		rows = append(rows, tx)
	}
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(w, "\nUNMATCHED INCOME/MANAGEMENT TRANSACTIONS (%d):\n", len(rows))
	fmt.Fprintf(w, "    These rows from manager-managed properties had no manager-side counterpart.\n")
	for i, tx := range rows {
		if i == listLimit {
			fmt.Fprintf(w, "  ... and %d more\n", len(rows)-listLimit)
			break
		}
		fmt.Fprintf(w, "  %-12s | %10s | %-15.15s\n", formatDate(tx.Date), tx.Amount.StringFixed(2), tx.Category)
	}
}

// writeUnmatchedManager lists manager rows missing from the ledger, largest
// first, with a category inferred from the GL mapping or from a nearby
// ledger row of the same amount.
func (uc *GenerateUseCase) writeUnmatchedManager(
	w io.Writer,
	manager []*entity.ManagerTransaction,
	matched map[uuid.UUID]bool,
	ledger []*entity.LedgerTransaction,
	propName map[uuid.UUID]string,
	year int,
) {
	var rows []*entity.ManagerTransaction
	for _, tx := range manager {
		if matched[tx.ID] || tx.Filtered || !reconcile.InYear(tx.EntryDate, year) {
			continue
		}
		rows = append(rows, tx)
	}
	if len(rows) == 0 {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Amount.Abs().GreaterThan(rows[j].Amount.Abs())
	})

	fmt.Fprintf(w, "\nUNMATCHED MANAGER TRANSACTIONS (missing in ledger) (%d):\n", len(rows))
	fmt.Fprintf(w, "  %-12s | %10s | %-25s | %-20s | %-20s\n", "Date", "Amount", "Payee", "Category", "Property")
	for i, tx := range rows {
		if i == listLimit {
			fmt.Fprintf(w, "  ... and %d more\n", len(rows)-listLimit)
			break
		}
		category := uc.inferManagerCategory(tx, ledger)
		fmt.Fprintf(w, "  %-12s | %10s | %-25.25s | %-20.20s | %-20.20s\n",
			formatDate(tx.EntryDate), tx.Amount.StringFixed(2), tx.PayeeName,
			category, propName[deref(tx.PropertyID)])
	}
}

func (uc *GenerateUseCase) inferManagerCategory(tx *entity.ManagerTransaction, ledger []*entity.LedgerTransaction) string {
	if pair, ok := uc.glMapper.Map(tx.CombinedGLAccount, tx.PostingMemo); ok {
		if pair.SubCategory != "" {
			return pair.SubCategory
		}
		return pair.Category
	}

	// No GL mapping; borrow the category of a nearby ledger row with the
	// same (sign-inverted) amount.
	txDate, ok := reconcile.ParseDate(tx.EntryDate)
	if !ok || tx.PropertyID == nil {
		return "N/A"
	}
	want := tx.Amount.Neg()
	for _, ltx := range ledger {
		if ltx.PropertyID == nil || *ltx.PropertyID != *tx.PropertyID || ltx.Filtered {
			continue
		}
		lDate, ok := reconcile.ParseDate(ltx.Date)
		if !ok {
			continue
		}
		if lDate.Sub(txDate).Abs().Hours() <= 30*24 &&
			ltx.Amount.Sub(want).Abs().LessThan(decimal.NewFromFloat(0.01)) {
			if ltx.Category != "" {
				return ltx.Category
			}
		}
	}
	return "N/A"
}

// writeFlaggedStatements lists statements whose component sum disagrees
// with the amount due, with per-component match status.
func (uc *GenerateUseCase) writeFlaggedStatements(
	w io.Writer,
	statements []*entity.MortgageStatement,
	byStatement map[uuid.UUID][]*entity.ReconciliationMatch,
	ledgerByID map[uuid.UUID]*entity.LedgerTransaction,
	year int,
) {
	var flagged []*entity.MortgageStatement
	for _, m := range statements {
		if !m.Valid && reconcile.InYear(m.StatementDate, year) {
			flagged = append(flagged, m)
		}
	}
	if len(flagged) == 0 {
		return
	}
	fmt.Fprintf(w, "\nFLAGGED MORTGAGE DISCREPANCIES (%d):\n", len(flagged))
	for _, m := range flagged {
		fmt.Fprintf(w, "  Statement: %s | %-10s | %.25s\n", m.StatementDate, m.Bank, m.PropertyAddress)
		fmt.Fprintf(w, "  Status:    %s\n", m.ValidationError)
		fmt.Fprintf(w, "  %-25s | %10s | %10s | %s\n", "Component", "Statement", "Ledger", "Status")

		matchedAmounts := make(map[string]decimal.Decimal)
		for _, match := range byStatement[m.ID] {
			if match.LedgerTransactionID == nil {
				continue
			}
			if ltx, ok := ledgerByID[*match.LedgerTransactionID]; ok {
				matchedAmounts[match.MortgageComponent] = ltx.Amount.Abs()
			}
		}
		for _, comp := range m.Components() {
			if got, ok := matchedAmounts[comp.SubCategory]; ok {
				status := "OK"
				if got.Sub(comp.Amount).Abs().GreaterThanOrEqual(decimal.NewFromFloat(0.01)) {
					status = "MISMATCH"
				}
				fmt.Fprintf(w, "  %-25s | %10s | %10s | %s\n",
					comp.SubCategory, comp.Amount.StringFixed(2), got.StringFixed(2), status)
			} else {
				fmt.Fprintf(w, "  %-25s | %10s | %10s | %s\n",
					comp.SubCategory, comp.Amount.StringFixed(2), "-", "UNMATCHED")
			}
		}
	}
}

func (uc *GenerateUseCase) writeComponentMismatches(w io.Writer, summary valueobject.RunSummary) {
	if len(summary.ComponentMismatches) == 0 {
		return
	}
	fmt.Fprintf(w, "\nCOMPONENT AMOUNT MISMATCHES (%d):\n", len(summary.ComponentMismatches))
	stmtTotal := decimal.Zero
	ledgerTotal := decimal.Zero
	for _, cm := range summary.ComponentMismatches {
		fmt.Fprintf(w, "  %-20.20s | %-25s | stmt %10s | ledger %10s\n",
			cm.PropertyName, cm.SubCategory, cm.StatementAmount.StringFixed(2), cm.LedgerAmount.StringFixed(2))
		stmtTotal = stmtTotal.Add(cm.StatementAmount)
		ledgerTotal = ledgerTotal.Add(cm.LedgerAmount)
	}
	fmt.Fprintf(w, "  TOTAL: stmt %s vs ledger %s\n", stmtTotal.StringFixed(2), ledgerTotal.StringFixed(2))
}

func (uc *GenerateUseCase) writeUnsplitPayments(w io.Writer, summary valueobject.RunSummary) {
	if len(summary.UnsplitPayments) == 0 {
		return
	}
	fmt.Fprintf(w, "\nPAYMENTS NEEDING SPLIT (%d):\n", len(summary.UnsplitPayments))
	fmt.Fprintf(w, "    Single ledger payments covering a full mortgage statement. Split into the components below.\n")
	for _, up := range summary.UnsplitPayments {
		fmt.Fprintf(w, "  %-20.20s | %s %s covers statement due %s (amount due %s)\n",
			up.PropertyName, formatDate(up.LedgerDate), up.LedgerAmount.StringFixed(2),
			formatDate(up.DueDate), up.AmountDue.StringFixed(2))
		if len(up.MatchedComponents) > 0 {
			fmt.Fprintf(w, "    already matched: %s\n", strings.Join(up.MatchedComponents, ", "))
		}
		for _, comp := range up.ExpectedComponents {
			fmt.Fprintf(w, "    %-25s %s\n", comp.SubCategory, comp.Amount.Neg().StringFixed(2))
		}
	}
}

func (uc *GenerateUseCase) writeUnmatchedRentPlatform(
	w io.Writer,
	rent []*entity.RentPlatformTransaction,
	matched map[uuid.UUID]bool,
	propName map[uuid.UUID]string,
	year int,
) {
	var rows []*entity.RentPlatformTransaction
	for _, tx := range rent {
		if matched[tx.ID] || !reconcile.InYear(tx.CompletedOn, year) {
			continue
		}
		rows = append(rows, tx)
	}
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(w, "\nUNMATCHED RENT PLATFORM PAYMENTS (%d):\n", len(rows))
	for i, tx := range rows {
		if i == listLimit {
			fmt.Fprintf(w, "  ... and %d more\n", len(rows)-listLimit)
			break
		}
		fmt.Fprintf(w, "  %-12s | %10s | %-20.20s | %s\n",
			formatDate(tx.CompletedOn), tx.CreditAmount.StringFixed(2),
			propName[deref(tx.PropertyID)], tx.Memo)
	}
}

func categoryLabel(tx *entity.LedgerTransaction) string {
	if tx.SubCategory != "" {
		return tx.Category + "/" + tx.SubCategory
	}
	return tx.Category
}

// formatDate renders raw source dates uniformly as MM/DD/YYYY, passing
// through anything unparseable.
func formatDate(raw string) string {
	if t, ok := reconcile.ParseDate(raw); ok {
		return t.Format("01/02/2006")
	}
	if raw == "" {
		return "N/A"
	}
	return raw
}

func deref(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.UUID{}
	}
	return *id
}
