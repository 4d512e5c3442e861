package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/rentledger/reconciler/internal/application/adapter"
	"github.com/rentledger/reconciler/internal/domain/entity"
	"github.com/rentledger/reconciler/internal/domain/valueobject"
)

// RunInput represents the input for a reconciliation run.
type RunInput struct {
	// Year restricts matching to records dated in that calendar year.
	// 0 means all years.
	Year int

	// ClearManual also wipes operator-recorded matches before the run.
	ClearManual bool

	// Sources configures the income/expense report sources to match.
	Sources []valueobject.ReportSourceConfig

	// RentPlatformPayeeToken appears in ledger payee text for deposits made
	// by the rent collection platform.
	RentPlatformPayeeToken string
}

// RunOutput represents the output of a reconciliation run.
type RunOutput struct {
	Summary valueobject.RunSummary
}

// Engine is the reconciliation matching engine. A run clears previous
// automatic matches, walks the phases in a fixed order over snapshots
// sorted for determinism, and persists the regenerated match set.
type Engine struct {
	propertyRepo     adapter.PropertyRepository
	ledgerRepo       adapter.LedgerRepository
	managerRepo      adapter.ManagerRepository
	reportRepo       adapter.ReportRepository
	mortgageRepo     adapter.MortgageRepository
	rentPlatformRepo adapter.RentPlatformRepository
	matchRepo        adapter.MatchRepository
	cfg              valueobject.MatchingConfig
}

// NewEngine creates a new Engine instance.
func NewEngine(
	propertyRepo adapter.PropertyRepository,
	ledgerRepo adapter.LedgerRepository,
	managerRepo adapter.ManagerRepository,
	reportRepo adapter.ReportRepository,
	mortgageRepo adapter.MortgageRepository,
	rentPlatformRepo adapter.RentPlatformRepository,
	matchRepo adapter.MatchRepository,
	cfg valueobject.MatchingConfig,
) *Engine {
	return &Engine{
		propertyRepo:     propertyRepo,
		ledgerRepo:       ledgerRepo,
		managerRepo:      managerRepo,
		reportRepo:       reportRepo,
		mortgageRepo:     mortgageRepo,
		rentPlatformRepo: rentPlatformRepo,
		matchRepo:        matchRepo,
		cfg:              cfg,
	}
}

// runState is the in-memory working set of one run. Phases append to
// matches and mark consumed records; nothing touches the database until
// the run commits.
type runState struct {
	cfg        valueobject.MatchingConfig
	year       int
	properties map[uuid.UUID]*entity.Property

	ledger     []*entity.LedgerTransaction
	manager    []*entity.ManagerTransaction
	statements []*entity.MortgageStatement
	rent       []*entity.RentPlatformTransaction
	reports    map[string][]*entity.ReportTransaction

	consumedLedger map[uuid.UUID]struct{}
	matches        []*entity.ReconciliationMatch

	// componentMatched tracks which breakdown sub-categories of each
	// statement found a ledger split, for unsplit detection and reporting.
	componentMatched map[uuid.UUID]map[string]bool

	summary valueobject.RunSummary
}

func (st *runState) propertyName(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	if p, ok := st.properties[*id]; ok {
		return p.Name
	}
	return ""
}

func (st *runState) consumed(id uuid.UUID) bool {
	_, ok := st.consumedLedger[id]
	return ok
}

func (st *runState) consume(id uuid.UUID) {
	st.consumedLedger[id] = struct{}{}
}

func (st *runState) addMatch(m *entity.ReconciliationMatch) {
	st.matches = append(st.matches, m)
}

// Execute performs a full reconciliation run.
func (uc *Engine) Execute(ctx context.Context, input RunInput) (*RunOutput, error) {
	st, err := uc.loadState(ctx, input)
	if err != nil {
		return nil, err
	}

	// Clear the previous run. Manual matches survive unless explicitly
	// cleared; their ledger rows seed the consumed set so automatic phases
	// cannot claim them again.
	if input.ClearManual {
		if err := uc.matchRepo.DeleteAll(ctx); err != nil {
			return nil, fmt.Errorf("failed to clear matches: %w", err)
		}
	} else {
		if err := uc.matchRepo.DeleteAutomatic(ctx); err != nil {
			return nil, fmt.Errorf("failed to clear automatic matches: %w", err)
		}
		manual, err := uc.matchRepo.FindManual(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load manual matches: %w", err)
		}
		for _, m := range manual {
			if m.LedgerTransactionID != nil {
				st.consume(*m.LedgerTransactionID)
			}
		}
		st.summary.ManualPreserved = len(manual)
	}

	slog.Info("Starting reconciliation",
		"year", input.Year,
		"ledger", len(st.ledger),
		"manager", len(st.manager),
		"statements", len(st.statements),
		"rent_platform", len(st.rent),
		"report_sources", len(input.Sources),
	)

	uc.matchMortgageComponents(st)
	uc.matchManagerTransactions(st)
	uc.detectUnsplitPayments(st)
	uc.matchRentPlatform(st, input.RentPlatformPayeeToken)
	for _, src := range input.Sources {
		uc.matchReportSource(st, src)
		if src.InfersDistributions {
			uc.inferDistributions(st, src)
		}
	}

	if len(st.matches) > 0 {
		if err := uc.matchRepo.CreateBatch(ctx, st.matches); err != nil {
			return nil, fmt.Errorf("failed to persist matches: %w", err)
		}
	}

	st.summary.Year = input.Year
	st.summary.TotalMatches = len(st.matches)

	slog.Info("Reconciliation complete",
		"matches", st.summary.TotalMatches,
		"unsplit_payments", len(st.summary.UnsplitPayments),
		"component_mismatches", len(st.summary.ComponentMismatches),
	)

	return &RunOutput{Summary: st.summary}, nil
}

// loadState snapshots every source from the database, applies the year
// filter, and sorts each slice so runs are deterministic.
func (uc *Engine) loadState(ctx context.Context, input RunInput) (*runState, error) {
	st := &runState{
		cfg:              uc.cfg,
		year:             input.Year,
		properties:       make(map[uuid.UUID]*entity.Property),
		reports:          make(map[string][]*entity.ReportTransaction),
		consumedLedger:   make(map[uuid.UUID]struct{}),
		componentMatched: make(map[uuid.UUID]map[string]bool),
	}

	properties, err := uc.propertyRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load properties: %w", err)
	}
	for _, p := range properties {
		st.properties[p.ID] = p
	}

	ledger, err := uc.ledgerRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger transactions: %w", err)
	}
	loaded := 0
	for _, tx := range ledger {
		if !tx.Matchable() {
			continue
		}
		loaded++
		if !InYear(tx.Date, input.Year) {
			continue
		}
		st.ledger = append(st.ledger, tx)
	}
	sortLedger(st.ledger)
	st.addSourceStats("ledger", loaded, len(st.ledger), 0, loaded == 0)

	manager, err := uc.managerRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load manager transactions: %w", err)
	}
	for _, tx := range manager {
		if tx.Filtered || !InYear(tx.EntryDate, input.Year) {
			continue
		}
		st.manager = append(st.manager, tx)
	}
	sort.SliceStable(st.manager, func(i, j int) bool {
		if st.manager[i].EntryDate != st.manager[j].EntryDate {
			return st.manager[i].EntryDate < st.manager[j].EntryDate
		}
		return st.manager[i].ID.String() < st.manager[j].ID.String()
	})
	st.addSourceStats("manager", len(manager), len(st.manager), 0, len(manager) == 0)

	statements, err := uc.mortgageRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mortgage statements: %w", err)
	}
	for _, m := range statements {
		// The due date governs the year a statement belongs to; December
		// statements carry January due dates.
		dateField := m.PaymentDueDate
		if dateField == "" {
			dateField = m.StatementDate
		}
		if !InYear(dateField, input.Year) {
			continue
		}
		st.statements = append(st.statements, m)
	}
	sort.SliceStable(st.statements, func(i, j int) bool {
		if st.statements[i].StatementDate != st.statements[j].StatementDate {
			return st.statements[i].StatementDate < st.statements[j].StatementDate
		}
		return st.statements[i].ID.String() < st.statements[j].ID.String()
	})
	st.addSourceStats("mortgage", len(statements), len(st.statements), 0, len(statements) == 0)

	rent, err := uc.rentPlatformRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rent platform transactions: %w", err)
	}
	for _, tx := range rent {
		if !InYear(tx.CompletedOn, input.Year) {
			continue
		}
		st.rent = append(st.rent, tx)
	}
	sort.SliceStable(st.rent, func(i, j int) bool {
		if st.rent[i].CompletedOn != st.rent[j].CompletedOn {
			return st.rent[i].CompletedOn < st.rent[j].CompletedOn
		}
		return st.rent[i].ID.String() < st.rent[j].ID.String()
	})
	st.addSourceStats("rent_platform", len(rent), len(st.rent), 0, len(rent) == 0)

	for _, src := range input.Sources {
		rows, err := uc.reportRepo.FindBySource(ctx, src.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s report transactions: %w", src.Name, err)
		}
		var kept []*entity.ReportTransaction
		for _, tx := range rows {
			if !InYear(tx.Date, input.Year) {
				continue
			}
			kept = append(kept, tx)
		}
		sort.SliceStable(kept, func(i, j int) bool {
			if kept[i].Date != kept[j].Date {
				return kept[i].Date < kept[j].Date
			}
			return kept[i].ID.String() < kept[j].ID.String()
		})
		st.reports[src.Name] = kept
		st.addSourceStats(src.Name, len(rows), len(kept), 0, len(rows) == 0)
	}

	return st, nil
}

func (st *runState) addSourceStats(source string, loaded, inYear, matched int, absent bool) {
	st.summary.SourceStats = append(st.summary.SourceStats, valueobject.SourceStats{
		Source:       source,
		Loaded:       loaded,
		LoadedInYear: inYear,
		Matched:      matched,
		Absent:       absent,
	})
}

func (st *runState) bumpMatched(source string, n int) {
	for i := range st.summary.SourceStats {
		if st.summary.SourceStats[i].Source == source {
			st.summary.SourceStats[i].Matched += n
			return
		}
	}
}

func sortLedger(txs []*entity.LedgerTransaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		di, oki := ParseDate(txs[i].Date)
		dj, okj := ParseDate(txs[j].Date)
		switch {
		case oki && okj && !di.Equal(dj):
			return di.Before(dj)
		case oki != okj:
			return oki
		default:
			return txs[i].ID.String() < txs[j].ID.String()
		}
	})
}

func sameProperty(a, b *uuid.UUID) bool {
	return a != nil && b != nil && *a == *b
}
