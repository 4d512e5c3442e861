package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentledger/reconciler/internal/domain/entity"
	domainerror "github.com/rentledger/reconciler/internal/domain/error"
	"github.com/rentledger/reconciler/internal/domain/valueobject"
)

// In-memory repository fakes. The engine only reads snapshots and writes
// matches, so slices behind the adapter interfaces are enough.

type fakePropertyRepo struct{ items []*entity.Property }

func (r *fakePropertyRepo) Create(_ context.Context, p *entity.Property) error {
	r.items = append(r.items, p)
	return nil
}

func (r *fakePropertyRepo) Update(_ context.Context, p *entity.Property) error {
	for i, existing := range r.items {
		if existing.ID == p.ID {
			r.items[i] = p
			return nil
		}
	}
	return domainerror.ErrPropertyNotFound
}

func (r *fakePropertyRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Property, error) {
	for _, p := range r.items {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domainerror.ErrPropertyNotFound
}

func (r *fakePropertyRepo) FindByName(_ context.Context, name string) (*entity.Property, error) {
	for _, p := range r.items {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, domainerror.ErrPropertyNotFound
}

func (r *fakePropertyRepo) FindAll(_ context.Context) ([]*entity.Property, error) {
	return r.items, nil
}

type fakeLedgerRepo struct{ items []*entity.LedgerTransaction }

func (r *fakeLedgerRepo) ReplaceAll(_ context.Context, txs []*entity.LedgerTransaction) error {
	r.items = txs
	return nil
}

func (r *fakeLedgerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.LedgerTransaction, error) {
	for _, tx := range r.items {
		if tx.ID == id {
			return tx, nil
		}
	}
	return nil, domainerror.ErrLedgerTransactionNotFound
}

func (r *fakeLedgerRepo) FindAll(_ context.Context) ([]*entity.LedgerTransaction, error) {
	return r.items, nil
}

type fakeManagerRepo struct{ items []*entity.ManagerTransaction }

func (r *fakeManagerRepo) ReplaceAll(_ context.Context, txs []*entity.ManagerTransaction) error {
	r.items = txs
	return nil
}

func (r *fakeManagerRepo) FindAll(_ context.Context) ([]*entity.ManagerTransaction, error) {
	return r.items, nil
}

type fakeReportRepo struct{ items []*entity.ReportTransaction }

func (r *fakeReportRepo) ReplaceSource(_ context.Context, source string, txs []*entity.ReportTransaction) error {
	kept := r.items[:0]
	for _, tx := range r.items {
		if tx.Source != source {
			kept = append(kept, tx)
		}
	}
	r.items = append(kept, txs...)
	return nil
}

func (r *fakeReportRepo) FindBySource(_ context.Context, source string) ([]*entity.ReportTransaction, error) {
	var out []*entity.ReportTransaction
	for _, tx := range r.items {
		if tx.Source == source {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *fakeReportRepo) FindAll(_ context.Context) ([]*entity.ReportTransaction, error) {
	return r.items, nil
}

type fakeMortgageRepo struct{ items []*entity.MortgageStatement }

func (r *fakeMortgageRepo) ReplaceAll(_ context.Context, stmts []*entity.MortgageStatement) error {
	r.items = stmts
	return nil
}

func (r *fakeMortgageRepo) FindAll(_ context.Context) ([]*entity.MortgageStatement, error) {
	return r.items, nil
}

type fakeRentPlatformRepo struct{ items []*entity.RentPlatformTransaction }

func (r *fakeRentPlatformRepo) ReplaceAll(_ context.Context, txs []*entity.RentPlatformTransaction) error {
	r.items = txs
	return nil
}

func (r *fakeRentPlatformRepo) FindAll(_ context.Context) ([]*entity.RentPlatformTransaction, error) {
	return r.items, nil
}

type fakeMatchRepo struct{ items []*entity.ReconciliationMatch }

func (r *fakeMatchRepo) Create(_ context.Context, m *entity.ReconciliationMatch) error {
	r.items = append(r.items, m)
	return nil
}

func (r *fakeMatchRepo) CreateBatch(_ context.Context, ms []*entity.ReconciliationMatch) error {
	r.items = append(r.items, ms...)
	return nil
}

func (r *fakeMatchRepo) DeleteAutomatic(_ context.Context) error {
	kept := r.items[:0]
	for _, m := range r.items {
		if m.IsManual() {
			kept = append(kept, m)
		}
	}
	r.items = kept
	return nil
}

func (r *fakeMatchRepo) DeleteAll(_ context.Context) error {
	r.items = nil
	return nil
}

func (r *fakeMatchRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	for i, m := range r.items {
		if m.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrMatchNotFound
}

func (r *fakeMatchRepo) FindAll(_ context.Context) ([]*entity.ReconciliationMatch, error) {
	return r.items, nil
}

func (r *fakeMatchRepo) FindManual(_ context.Context) ([]*entity.ReconciliationMatch, error) {
	var out []*entity.ReconciliationMatch
	for _, m := range r.items {
		if m.IsManual() {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) findBy(pick func(*entity.ReconciliationMatch) *uuid.UUID, id uuid.UUID) []*entity.ReconciliationMatch {
	var out []*entity.ReconciliationMatch
	for _, m := range r.items {
		if linked := pick(m); linked != nil && *linked == id {
			out = append(out, m)
		}
	}
	return out
}

func (r *fakeMatchRepo) FindByLedgerTransactionID(_ context.Context, id uuid.UUID) ([]*entity.ReconciliationMatch, error) {
	return r.findBy(func(m *entity.ReconciliationMatch) *uuid.UUID { return m.LedgerTransactionID }, id), nil
}

func (r *fakeMatchRepo) FindByManagerTransactionID(_ context.Context, id uuid.UUID) ([]*entity.ReconciliationMatch, error) {
	return r.findBy(func(m *entity.ReconciliationMatch) *uuid.UUID { return m.ManagerTransactionID }, id), nil
}

func (r *fakeMatchRepo) FindByReportTransactionID(_ context.Context, id uuid.UUID) ([]*entity.ReconciliationMatch, error) {
	return r.findBy(func(m *entity.ReconciliationMatch) *uuid.UUID { return m.ReportTransactionID }, id), nil
}

func (r *fakeMatchRepo) FindByMortgageStatementID(_ context.Context, id uuid.UUID) ([]*entity.ReconciliationMatch, error) {
	return r.findBy(func(m *entity.ReconciliationMatch) *uuid.UUID { return m.MortgageStatementID }, id), nil
}

func (r *fakeMatchRepo) FindByRentPlatformID(_ context.Context, id uuid.UUID) ([]*entity.ReconciliationMatch, error) {
	return r.findBy(func(m *entity.ReconciliationMatch) *uuid.UUID { return m.RentPlatformID }, id), nil
}

type engineFixture struct {
	properties   *fakePropertyRepo
	ledger       *fakeLedgerRepo
	manager      *fakeManagerRepo
	reports      *fakeReportRepo
	mortgages    *fakeMortgageRepo
	rentPlatform *fakeRentPlatformRepo
	matches      *fakeMatchRepo
	engine       *Engine
}

func newEngineFixture() *engineFixture {
	f := &engineFixture{
		properties:   &fakePropertyRepo{},
		ledger:       &fakeLedgerRepo{},
		manager:      &fakeManagerRepo{},
		reports:      &fakeReportRepo{},
		mortgages:    &fakeMortgageRepo{},
		rentPlatform: &fakeRentPlatformRepo{},
		matches:      &fakeMatchRepo{},
	}
	f.engine = NewEngine(
		f.properties, f.ledger, f.manager, f.reports,
		f.mortgages, f.rentPlatform, f.matches,
		valueobject.DefaultMatchingConfig(),
	)
	return f
}

func (f *engineFixture) addProperty(name string) *entity.Property {
	p := entity.NewProperty(name)
	f.properties.items = append(f.properties.items, p)
	return p
}

func (f *engineFixture) addLedger(propID *uuid.UUID, date, category, subCategory string, amount float64) *entity.LedgerTransaction {
	tx := entity.NewLedgerTransaction(propID, date, "", category, subCategory, decimal.NewFromFloat(amount))
	f.ledger.items = append(f.ledger.items, tx)
	return tx
}

func (f *engineFixture) addStatement(propID *uuid.UUID, dueDate string, principal, interest, escrow float64) *entity.MortgageStatement {
	stmt := entity.NewMortgageStatement("PNC", "12345678")
	stmt.PropertyID = propID
	stmt.StatementDate = dueDate
	stmt.PaymentDueDate = dueDate
	stmt.Principal = decimal.NewFromFloat(principal)
	stmt.Interest = decimal.NewFromFloat(interest)
	stmt.Escrow = decimal.NewFromFloat(escrow)
	stmt.AmountDue = decimal.NewFromFloat(principal + interest + escrow)
	f.mortgages.items = append(f.mortgages.items, stmt)
	return stmt
}

func (f *engineFixture) run(t *testing.T, input RunInput) *RunOutput {
	t.Helper()
	out, err := f.engine.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	return out
}

func matchesOfType(ms []*entity.ReconciliationMatch, matchType string) []*entity.ReconciliationMatch {
	var out []*entity.ReconciliationMatch
	for _, m := range ms {
		if m.MatchType == matchType {
			out = append(out, m)
		}
	}
	return out
}

func TestEngineMortgageComponents(t *testing.T) {
	t.Run("all three components match exactly", func(t *testing.T) {
		f := newEngineFixture()
		p := f.addProperty("4604 Miller Ln")
		f.addStatement(&p.ID, "01/15/2025", 500, 300, 200)
		f.addLedger(&p.ID, "01/15/2025", "Mortgages & Loans", entity.SubCategoryMortgagePrincipal, -500)
		f.addLedger(&p.ID, "01/16/2025", "Mortgages & Loans", entity.SubCategoryMortgageInterest, -300)
		f.addLedger(&p.ID, "01/16/2025", "Mortgages & Loans", entity.SubCategoryEscrowPayments, -200)

		out := f.run(t, RunInput{Year: 2025})

		got := matchesOfType(f.matches.items, entity.MatchTypeMortgageComponent)
		if len(got) != 3 {
			t.Fatalf("expected 3 component matches, got %d", len(got))
		}
		for _, m := range got {
			if m.Score != 1.0 {
				t.Errorf("expected score 1.0, got %v (%s)", m.Score, m.Notes)
			}
		}
		if out.Summary.ComponentsMatched != 3 || out.Summary.ComponentsExpected != 3 {
			t.Errorf("expected 3/3 components, got %d/%d",
				out.Summary.ComponentsMatched, out.Summary.ComponentsExpected)
		}
		if len(out.Summary.UnsplitPayments) != 0 {
			t.Errorf("expected no unsplit payments, got %d", len(out.Summary.UnsplitPayments))
		}
	})

	t.Run("amount mismatch matches at reduced confidence", func(t *testing.T) {
		f := newEngineFixture()
		p := f.addProperty("4604 Miller Ln")
		f.addStatement(&p.ID, "01/15/2025", 500, 0, 0)
		f.addLedger(&p.ID, "01/15/2025", "Mortgages & Loans", entity.SubCategoryMortgagePrincipal, -495)

		out := f.run(t, RunInput{Year: 2025})

		got := matchesOfType(f.matches.items, entity.MatchTypeMortgageComponent)
		if len(got) != 1 {
			t.Fatalf("expected 1 match, got %d", len(got))
		}
		if got[0].Score != 0.5 {
			t.Errorf("expected score 0.5, got %v", got[0].Score)
		}
		if !strings.Contains(got[0].Notes, "AMT MISMATCH") {
			t.Errorf("expected mismatch note, got %q", got[0].Notes)
		}
		if len(out.Summary.ComponentMismatches) != 1 {
			t.Fatalf("expected 1 recorded mismatch, got %d", len(out.Summary.ComponentMismatches))
		}
		mm := out.Summary.ComponentMismatches[0]
		if !mm.StatementAmount.Equal(decimal.NewFromInt(500)) || !mm.LedgerAmount.Equal(decimal.NewFromInt(495)) {
			t.Errorf("expected 500 vs 495, got %s vs %s", mm.StatementAmount, mm.LedgerAmount)
		}
	})

	t.Run("transactions before the due date never match", func(t *testing.T) {
		f := newEngineFixture()
		p := f.addProperty("4604 Miller Ln")
		f.addStatement(&p.ID, "01/15/2025", 500, 0, 0)
		f.addLedger(&p.ID, "01/10/2025", "Mortgages & Loans", entity.SubCategoryMortgagePrincipal, -500)

		out := f.run(t, RunInput{Year: 2025})

		if len(matchesOfType(f.matches.items, entity.MatchTypeMortgageComponent)) != 0 {
			t.Error("expected no match for a payment before the due date")
		}
		if out.Summary.ComponentsMatched != 0 {
			t.Errorf("expected 0 components matched, got %d", out.Summary.ComponentsMatched)
		}
	})

	t.Run("second pass widens the window", func(t *testing.T) {
		f := newEngineFixture()
		p := f.addProperty("4604 Miller Ln")
		f.addStatement(&p.ID, "01/15/2025", 500, 0, 0)
		// 13 days after the due date: outside the first pass, inside the second.
		f.addLedger(&p.ID, "01/28/2025", "Mortgages & Loans", entity.SubCategoryMortgagePrincipal, -500)

		f.run(t, RunInput{Year: 2025})

		got := matchesOfType(f.matches.items, entity.MatchTypeMortgageComponent)
		if len(got) != 1 || got[0].Score != 1.0 {
			t.Fatalf("expected 1 exact match from the second pass, got %+v", got)
		}
	})

	t.Run("exact amount beats closer date", func(t *testing.T) {
		f := newEngineFixture()
		p := f.addProperty("4604 Miller Ln")
		f.addStatement(&p.ID, "01/15/2025", 500, 0, 0)
		near := f.addLedger(&p.ID, "01/15/2025", "Mortgages & Loans", entity.SubCategoryMortgagePrincipal, -490)
		exact := f.addLedger(&p.ID, "01/20/2025", "Mortgages & Loans", entity.SubCategoryMortgagePrincipal, -500)

		f.run(t, RunInput{Year: 2025})

		got := matchesOfType(f.matches.items, entity.MatchTypeMortgageComponent)
		if len(got) != 1 {
			t.Fatalf("expected 1 match, got %d", len(got))
		}
		if got[0].LedgerTransactionID == nil || *got[0].LedgerTransactionID != exact.ID {
			t.Errorf("expected the exact-amount row to win over the nearer mismatch %s", near.ID)
		}
	})
}

func TestEngineUnsplitDetection(t *testing.T) {
	f := newEngineFixture()
	p := f.addProperty("4604 Miller Ln")
	f.addStatement(&p.ID, "01/15/2025", 500, 300, 200)
	lump := f.addLedger(&p.ID, "01/16/2025", "Mortgages & Loans", "Mortgage Payment", -1000.50)

	out := f.run(t, RunInput{Year: 2025})

	if len(out.Summary.UnsplitPayments) != 1 {
		t.Fatalf("expected 1 unsplit payment, got %d", len(out.Summary.UnsplitPayments))
	}
	up := out.Summary.UnsplitPayments[0]
	if up.LedgerTransactionID != lump.ID {
		t.Errorf("expected the lump sum row to be flagged")
	}
	if len(up.ExpectedComponents) != 3 {
		t.Errorf("expected 3 expected components, got %d", len(up.ExpectedComponents))
	}

	// The finding is advisory; the lump stays unmatched for later phases.
	if out.Summary.TotalMatches != 0 {
		t.Errorf("expected no matches recorded, got %d", out.Summary.TotalMatches)
	}
}

func TestEngineManagerMatching(t *testing.T) {
	t.Run("sign inverted amount within the window", func(t *testing.T) {
		f := newEngineFixture()
		p := f.addProperty("440 Marion Oaks Ln")
		tx := f.addLedger(&p.ID, "02/10/2025", "Utilities", "Water & Sewer", -85.40)
		mtx := entity.NewManagerTransaction(&p.ID, "440 Marion Oaks Ln", "02/12/2025", "Utilities", decimal.NewFromFloat(85.40))
		f.manager.items = append(f.manager.items, mtx)

		f.run(t, RunInput{Year: 2025})

		got := matchesOfType(f.matches.items, entity.MatchTypeAmountDate)
		if len(got) != 1 {
			t.Fatalf("expected 1 manager match, got %d", len(got))
		}
		if *got[0].LedgerTransactionID != tx.ID || *got[0].ManagerTransactionID != mtx.ID {
			t.Error("expected the ledger row paired with the manager row")
		}
	})

	t.Run("outside the window", func(t *testing.T) {
		f := newEngineFixture()
		p := f.addProperty("440 Marion Oaks Ln")
		f.addLedger(&p.ID, "02/10/2025", "Utilities", "Water & Sewer", -85.40)
		mtx := entity.NewManagerTransaction(&p.ID, "440 Marion Oaks Ln", "02/20/2025", "Utilities", decimal.NewFromFloat(85.40))
		f.manager.items = append(f.manager.items, mtx)

		f.run(t, RunInput{Year: 2025})

		if len(matchesOfType(f.matches.items, entity.MatchTypeAmountDate)) != 0 {
			t.Error("expected no match 10 days apart")
		}
	})

	t.Run("self managed properties are skipped", func(t *testing.T) {
		f := newEngineFixture()
		p := f.addProperty("3274 E Hawk Pl")
		p.ManagerManaged = false
		f.addLedger(&p.ID, "02/10/2025", "Utilities", "Water & Sewer", -85.40)
		mtx := entity.NewManagerTransaction(&p.ID, "3274 E Hawk Pl", "02/10/2025", "Utilities", decimal.NewFromFloat(85.40))
		f.manager.items = append(f.manager.items, mtx)

		f.run(t, RunInput{Year: 2025})

		if len(matchesOfType(f.matches.items, entity.MatchTypeAmountDate)) != 0 {
			t.Error("expected no manager match for a self-managed property")
		}
	})
}

func TestEngineRentPlatform(t *testing.T) {
	t.Run("rents deposit within the window", func(t *testing.T) {
		f := newEngineFixture()
		p := f.addProperty("4604 Miller Ln")
		tx := f.addLedger(&p.ID, "03/20/2025", valueobject.CategoryIncome, valueobject.SubCategoryRents, 950)
		rtx := entity.NewRentPlatformTransaction(&p.ID, "03/01/2025", decimal.NewFromInt(950))
		f.rentPlatform.items = append(f.rentPlatform.items, rtx)

		f.run(t, RunInput{Year: 2025})

		got := matchesOfType(f.matches.items, entity.MatchTypeRentPlatform)
		if len(got) != 1 {
			t.Fatalf("expected 1 rent platform match, got %d", len(got))
		}
		if *got[0].LedgerTransactionID != tx.ID || *got[0].RentPlatformID != rtx.ID {
			t.Error("expected the deposit paired with the platform payment")
		}
	})

	t.Run("payee token qualifies a deposit without the rents sub-category", func(t *testing.T) {
		f := newEngineFixture()
		p := f.addProperty("4604 Miller Ln")
		tx := f.addLedger(&p.ID, "03/05/2025", valueobject.CategoryIncome, "", 950)
		tx.Payee = "RENTCO PAYMENTS LLC"
		rtx := entity.NewRentPlatformTransaction(&p.ID, "03/01/2025", decimal.NewFromInt(950))
		f.rentPlatform.items = append(f.rentPlatform.items, rtx)

		f.run(t, RunInput{Year: 2025, RentPlatformPayeeToken: "rentco"})

		if len(matchesOfType(f.matches.items, entity.MatchTypeRentPlatform)) != 1 {
			t.Fatal("expected a match via the payee token")
		}
	})

	t.Run("non income rows never match", func(t *testing.T) {
		f := newEngineFixture()
		p := f.addProperty("4604 Miller Ln")
		f.addLedger(&p.ID, "03/05/2025", "Transfers", "Owner Contributions", 950)
		rtx := entity.NewRentPlatformTransaction(&p.ID, "03/01/2025", decimal.NewFromInt(950))
		f.rentPlatform.items = append(f.rentPlatform.items, rtx)

		f.run(t, RunInput{Year: 2025})

		if len(matchesOfType(f.matches.items, entity.MatchTypeRentPlatform)) != 0 {
			t.Error("expected no match against a transfer row")
		}
	})
}

func TestEngineManualMatches(t *testing.T) {
	setup := func() (*engineFixture, *entity.LedgerTransaction) {
		f := newEngineFixture()
		p := f.addProperty("440 Marion Oaks Ln")
		tx := f.addLedger(&p.ID, "02/10/2025", "Utilities", "Water & Sewer", -85.40)
		mtx := entity.NewManagerTransaction(&p.ID, "440 Marion Oaks Ln", "02/10/2025", "Utilities", decimal.NewFromFloat(85.40))
		f.manager.items = append(f.manager.items, mtx)

		manual := entity.NewReconciliationMatch(entity.MatchTypeManual, 1.0)
		manual.LedgerTransactionID = &tx.ID
		f.matches.items = append(f.matches.items, manual)
		return f, tx
	}

	t.Run("preserved matches seed the consumed set", func(t *testing.T) {
		f, _ := setup()

		out := f.run(t, RunInput{Year: 2025})

		if out.Summary.ManualPreserved != 1 {
			t.Errorf("expected 1 preserved manual match, got %d", out.Summary.ManualPreserved)
		}
		if len(matchesOfType(f.matches.items, entity.MatchTypeManual)) != 1 {
			t.Error("expected the manual match to survive the run")
		}
		if len(matchesOfType(f.matches.items, entity.MatchTypeAmountDate)) != 0 {
			t.Error("expected the manually matched row not to be re-claimed")
		}
	})

	t.Run("clear manual wipes everything", func(t *testing.T) {
		f, _ := setup()

		out := f.run(t, RunInput{Year: 2025, ClearManual: true})

		if out.Summary.ManualPreserved != 0 {
			t.Errorf("expected no preserved matches, got %d", out.Summary.ManualPreserved)
		}
		if len(matchesOfType(f.matches.items, entity.MatchTypeManual)) != 0 {
			t.Error("expected the manual match to be cleared")
		}
		if len(matchesOfType(f.matches.items, entity.MatchTypeAmountDate)) != 1 {
			t.Error("expected the freed row to match automatically")
		}
	})
}

func TestEngineReportSource(t *testing.T) {
	src := valueobject.ReportSourceConfig{
		Name:       "acme",
		Properties: []string{"4604 Miller Ln"},
	}

	addReport := func(f *engineFixture, propID *uuid.UUID, category, subCategory, date string, amount float64) *entity.ReportTransaction {
		txType := entity.ReportTransactionIncome
		if amount < 0 {
			txType = entity.ReportTransactionExpense
		}
		rtx := entity.NewReportTransaction(propID, "acme", category, txType, date, decimal.NewFromFloat(amount))
		rtx.Category = category
		rtx.SubCategory = subCategory
		f.reports.items = append(f.reports.items, rtx)
		return rtx
	}

	t.Run("exact one-to-one match", func(t *testing.T) {
		f := newEngineFixture()
		p := f.addProperty("4604 Miller Ln")
		tx := f.addLedger(&p.ID, "04/03/2025", valueobject.CategoryIncome, valueobject.SubCategoryRents, 1200)
		rtx := addReport(f, &p.ID, valueobject.CategoryIncome, valueobject.SubCategoryRents, "2025-04-01", 1200)

		f.run(t, RunInput{Year: 2025, Sources: []valueobject.ReportSourceConfig{src}})

		got := matchesOfType(f.matches.items, "acme")
		if len(got) != 1 {
			t.Fatalf("expected 1 exact match, got %d", len(got))
		}
		if *got[0].LedgerTransactionID != tx.ID || *got[0].ReportTransactionID != rtx.ID {
			t.Error("expected the ledger row paired with the report line")
		}
		if got[0].Score != 1.0 || got[0].ReportSource != "acme" {
			t.Errorf("unexpected match %+v", got[0])
		}
	})

	t.Run("split match over two installments", func(t *testing.T) {
		f := newEngineFixture()
		p := f.addProperty("4604 Miller Ln")
		f.addLedger(&p.ID, "04/02/2025", valueobject.CategoryIncome, valueobject.SubCategoryRents, 600)
		f.addLedger(&p.ID, "04/16/2025", valueobject.CategoryIncome, valueobject.SubCategoryRents, 600)
		addReport(f, &p.ID, valueobject.CategoryIncome, valueobject.SubCategoryRents, "2025-04-01", 1200)

		f.run(t, RunInput{Year: 2025, Sources: []valueobject.ReportSourceConfig{src}})

		got := matchesOfType(f.matches.items, "acme"+entity.MatchSuffixSplit)
		if len(got) != 2 {
			t.Fatalf("expected 2 split part matches, got %d", len(got))
		}
		for _, m := range got {
			if m.Score != 0.95 {
				t.Errorf("expected score 0.95, got %v", m.Score)
			}
		}
	})

	t.Run("monthly aggregation for fee categories", func(t *testing.T) {
		monthlySrc := src
		monthlySrc.PreferMonthlyCategories = []string{valueobject.CategoryManagementFee}

		f := newEngineFixture()
		p := f.addProperty("4604 Miller Ln")
		f.addLedger(&p.ID, "04/05/2025", valueobject.CategoryManagementFee, valueobject.SubCategoryPropertyManagement, -45)
		f.addLedger(&p.ID, "04/19/2025", valueobject.CategoryManagementFee, valueobject.SubCategoryPropertyManagement, -45)
		addReport(f, &p.ID, valueobject.CategoryManagementFee, "", "2025-04-30", -90)

		f.run(t, RunInput{Year: 2025, Sources: []valueobject.ReportSourceConfig{monthlySrc}})

		got := matchesOfType(f.matches.items, "acme"+entity.MatchSuffixMonthly)
		if len(got) != 2 {
			t.Fatalf("expected 2 monthly part matches, got %d", len(got))
		}
		for _, m := range got {
			if m.Score != 0.90 {
				t.Errorf("expected score 0.90, got %v", m.Score)
			}
		}
	})

	t.Run("distribution inference from rent and fee lines", func(t *testing.T) {
		distSrc := src
		distSrc.InfersDistributions = true
		distSrc.PayeeToken = "acme"
		distSrc.PreferMonthlyCategories = []string{valueobject.CategoryManagementFee}

		f := newEngineFixture()
		p := f.addProperty("4604 Miller Ln")
		deposit := f.addLedger(&p.ID, "04/10/2025", "Transfers", "Owner Distributions", 900)
		deposit.Payee = "ACME PROPERTY MGMT"
		addReport(f, &p.ID, valueobject.CategoryIncome, valueobject.SubCategoryRents, "2025-04-01", 1000)
		addReport(f, &p.ID, valueobject.CategoryManagementFee, "", "2025-04-01", -100)

		f.run(t, RunInput{Year: 2025, Sources: []valueobject.ReportSourceConfig{distSrc}})

		got := matchesOfType(f.matches.items, "acme"+entity.MatchSuffixDistribution)
		if len(got) != 1 {
			t.Fatalf("expected 1 inferred distribution, got %d", len(got))
		}
		if *got[0].LedgerTransactionID != deposit.ID {
			t.Error("expected the owner distribution deposit to be claimed")
		}
	})
}

func TestEngineYearFilter(t *testing.T) {
	f := newEngineFixture()
	p := f.addProperty("440 Marion Oaks Ln")
	f.addLedger(&p.ID, "02/10/2024", "Utilities", "Water & Sewer", -85.40)
	mtx := entity.NewManagerTransaction(&p.ID, "440 Marion Oaks Ln", "02/10/2024", "Utilities", decimal.NewFromFloat(85.40))
	f.manager.items = append(f.manager.items, mtx)

	out := f.run(t, RunInput{Year: 2025})

	if out.Summary.TotalMatches != 0 {
		t.Errorf("expected nothing matched outside the target year, got %d", out.Summary.TotalMatches)
	}

	out = f.run(t, RunInput{Year: 2024})
	if out.Summary.TotalMatches != 1 {
		t.Errorf("expected the 2024 rows to match in a 2024 run, got %d", out.Summary.TotalMatches)
	}
}

func TestEngineFilteredRows(t *testing.T) {
	f := newEngineFixture()
	p := f.addProperty("440 Marion Oaks Ln")
	tx := f.addLedger(&p.ID, "02/10/2025", "Utilities", "Water & Sewer", -85.40)
	tx.Filtered = true
	tx.FilterReason = "duplicate import"
	mtx := entity.NewManagerTransaction(&p.ID, "440 Marion Oaks Ln", "02/10/2025", "Utilities", decimal.NewFromFloat(85.40))
	f.manager.items = append(f.manager.items, mtx)

	out := f.run(t, RunInput{Year: 2025})

	if out.Summary.TotalMatches != 0 {
		t.Errorf("expected filtered rows excluded from matching, got %d matches", out.Summary.TotalMatches)
	}

	// Owner distributions stay matchable even when filtered.
	dist := f.addLedger(&p.ID, "02/10/2025", "Transfers", "Owner Distributions", 900)
	dist.Filtered = true
	if !dist.Matchable() {
		t.Error("expected a filtered owner distribution to stay matchable")
	}
}

func TestEngineRepeatedRunsAreIdentical(t *testing.T) {
	src := valueobject.ReportSourceConfig{
		Name:       "acme",
		Properties: []string{"4604 Miller Ln"},
	}

	f := newEngineFixture()
	p := f.addProperty("4604 Miller Ln")
	f.addStatement(&p.ID, "01/15/2025", 500, 300, 200)
	f.addLedger(&p.ID, "01/15/2025", "Mortgages & Loans", entity.SubCategoryMortgagePrincipal, -500)
	f.addLedger(&p.ID, "01/16/2025", "Mortgages & Loans", entity.SubCategoryMortgageInterest, -300)
	f.addLedger(&p.ID, "01/16/2025", "Mortgages & Loans", entity.SubCategoryEscrowPayments, -200)

	f.addLedger(&p.ID, "02/10/2025", "Utilities", "Water & Sewer", -85.40)
	mtx := entity.NewManagerTransaction(&p.ID, "4604 Miller Ln", "02/12/2025", "Utilities", decimal.NewFromFloat(85.40))
	f.manager.items = append(f.manager.items, mtx)

	f.addLedger(&p.ID, "03/20/2025", valueobject.CategoryIncome, valueobject.SubCategoryRents, 950)
	rtx := entity.NewRentPlatformTransaction(&p.ID, "03/01/2025", decimal.NewFromInt(950))
	f.rentPlatform.items = append(f.rentPlatform.items, rtx)

	f.addLedger(&p.ID, "04/03/2025", valueobject.CategoryIncome, valueobject.SubCategoryRents, 1200)
	report := entity.NewReportTransaction(&p.ID, "acme", valueobject.SubCategoryRents,
		entity.ReportTransactionIncome, "2025-04-01", decimal.NewFromInt(1200))
	report.Category = valueobject.CategoryIncome
	report.SubCategory = valueobject.SubCategoryRents
	f.reports.items = append(f.reports.items, report)

	// Match identity minus the regenerated row ID.
	snapshot := func() []string {
		keys := make([]string, 0, len(f.matches.items))
		for _, m := range f.matches.items {
			key := fmt.Sprintf("%s|%.2f|%s|%s", m.MatchType, m.Score, m.ReportSource, m.Notes)
			for _, id := range []*uuid.UUID{
				m.LedgerTransactionID, m.ManagerTransactionID, m.ReportTransactionID,
				m.MortgageStatementID, m.RentPlatformID,
			} {
				if id != nil {
					key += "|" + id.String()
				} else {
					key += "|-"
				}
			}
			keys = append(keys, key)
		}
		sort.Strings(keys)
		return keys
	}

	input := RunInput{Year: 2025, Sources: []valueobject.ReportSourceConfig{src}}

	f.run(t, input)
	first := snapshot()
	if len(first) != 6 {
		t.Fatalf("expected 6 matches from the first run, got %d", len(first))
	}

	f.run(t, input)
	second := snapshot()
	if len(second) != len(first) {
		t.Fatalf("expected %d matches from the second run, got %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("run mismatch at %d:\n  first:  %s\n  second: %s", i, first[i], second[i])
		}
	}
}
