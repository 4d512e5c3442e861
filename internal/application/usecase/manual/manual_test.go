package manual

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentledger/reconciler/internal/domain/entity"
	domainerror "github.com/rentledger/reconciler/internal/domain/error"
)

type fakePropertyRepo struct{ items []*entity.Property }

func (r *fakePropertyRepo) Create(_ context.Context, p *entity.Property) error {
	r.items = append(r.items, p)
	return nil
}

func (r *fakePropertyRepo) Update(_ context.Context, _ *entity.Property) error { return nil }

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

type fakeMatchRepo struct{ items []*entity.ReconciliationMatch }

func (r *fakeMatchRepo) Create(_ context.Context, m *entity.ReconciliationMatch) error {
	r.items = append(r.items, m)
	return nil
}

func (r *fakeMatchRepo) CreateBatch(_ context.Context, ms []*entity.ReconciliationMatch) error {
	r.items = append(r.items, ms...)
	return nil
}

func (r *fakeMatchRepo) DeleteAutomatic(_ context.Context) error { return nil }
func (r *fakeMatchRepo) DeleteAll(_ context.Context) error       { r.items = nil; return nil }

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

func (r *fakeMatchRepo) FindByLedgerTransactionID(_ context.Context, id uuid.UUID) ([]*entity.ReconciliationMatch, error) {
	var out []*entity.ReconciliationMatch
	for _, m := range r.items {
		if m.LedgerTransactionID != nil && *m.LedgerTransactionID == id {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) FindByManagerTransactionID(_ context.Context, _ uuid.UUID) ([]*entity.ReconciliationMatch, error) {
	return nil, nil
}

func (r *fakeMatchRepo) FindByReportTransactionID(_ context.Context, _ uuid.UUID) ([]*entity.ReconciliationMatch, error) {
	return nil, nil
}

func (r *fakeMatchRepo) FindByMortgageStatementID(_ context.Context, _ uuid.UUID) ([]*entity.ReconciliationMatch, error) {
	return nil, nil
}

func (r *fakeMatchRepo) FindByRentPlatformID(_ context.Context, _ uuid.UUID) ([]*entity.ReconciliationMatch, error) {
	return nil, nil
}

func newUseCase() (*UseCase, *fakeLedgerRepo, *fakeMatchRepo) {
	ledger := &fakeLedgerRepo{}
	matches := &fakeMatchRepo{}
	return NewUseCase(&fakePropertyRepo{}, ledger, matches), ledger, matches
}

func addTx(ledger *fakeLedgerRepo, date string, amount float64) *entity.LedgerTransaction {
	tx := entity.NewLedgerTransaction(nil, date, "SOME PAYEE", "Admin & Other", "", decimal.NewFromFloat(amount))
	ledger.items = append(ledger.items, tx)
	return tx
}

func TestMark(t *testing.T) {
	ctx := context.Background()

	t.Run("records a manual match", func(t *testing.T) {
		uc, ledger, matches := newUseCase()
		tx := addTx(ledger, "01/15/2025", -42.00)

		match, err := uc.Mark(ctx, tx.ID, "verified against bank feed")
		if err != nil {
			t.Fatalf("Mark failed: %v", err)
		}
		if match.MatchType != entity.MatchTypeManual || match.Score != 1.0 {
			t.Errorf("unexpected match %+v", match)
		}
		if match.Notes != "verified against bank feed" {
			t.Errorf("unexpected notes %q", match.Notes)
		}
		if len(matches.items) != 1 {
			t.Errorf("expected the match persisted, got %d", len(matches.items))
		}
	})

	t.Run("rejects an already matched row", func(t *testing.T) {
		uc, ledger, _ := newUseCase()
		tx := addTx(ledger, "01/15/2025", -42.00)

		if _, err := uc.Mark(ctx, tx.ID, ""); err != nil {
			t.Fatalf("first Mark failed: %v", err)
		}
		_, err := uc.Mark(ctx, tx.ID, "")
		if !errors.Is(err, domainerror.ErrLedgerTransactionAlreadyMatched) {
			t.Fatalf("expected ErrLedgerTransactionAlreadyMatched, got %v", err)
		}
	})

	t.Run("rejects an unknown ledger id", func(t *testing.T) {
		uc, _, _ := newUseCase()
		_, err := uc.Mark(ctx, uuid.New(), "")
		if !errors.Is(err, domainerror.ErrLedgerTransactionNotFound) {
			t.Fatalf("expected ErrLedgerTransactionNotFound, got %v", err)
		}
	})
}

func TestUnmatched(t *testing.T) {
	ctx := context.Background()
	uc, ledger, matches := newUseCase()

	late := addTx(ledger, "03/10/2025", -10)
	early := addTx(ledger, "01/05/2025", -20)
	matched := addTx(ledger, "02/01/2025", -30)
	filtered := addTx(ledger, "02/15/2025", -40)
	filtered.Filtered = true
	otherYear := addTx(ledger, "02/01/2024", -50)

	m := entity.NewReconciliationMatch(entity.MatchTypeManual, 1.0)
	m.LedgerTransactionID = &matched.ID
	matches.items = append(matches.items, m)

	got, err := uc.Unmatched(ctx, 2025)
	if err != nil {
		t.Fatalf("Unmatched failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 unmatched rows, got %d", len(got))
	}
	if got[0].ID != early.ID || got[1].ID != late.ID {
		t.Error("expected rows sorted by date")
	}
	for _, tx := range got {
		if tx.ID == otherYear.ID {
			t.Error("expected the 2024 row excluded")
		}
	}
}

func TestExecuteInteractive(t *testing.T) {
	ctx := context.Background()
	uc, ledger, matches := newUseCase()
	addTx(ledger, "01/15/2025", -42.00)

	// Mark row 1 with the default reason, then quit.
	in := strings.NewReader("1\n\nq\n")
	var out bytes.Buffer

	if err := uc.Execute(ctx, Input{Year: 2025, In: in, Out: &out}); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(matches.items) != 1 {
		t.Fatalf("expected 1 manual match, got %d", len(matches.items))
	}
	if matches.items[0].Notes != "Manually reconciled" {
		t.Errorf("expected the default reason, got %q", matches.items[0].Notes)
	}
	if !strings.Contains(out.String(), "UNMATCHED TRANSACTIONS (1)") {
		t.Errorf("expected the unmatched listing in output, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Nothing left to reconcile.") {
		t.Errorf("expected the session to report completion, got %q", out.String())
	}
}
