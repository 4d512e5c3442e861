package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	domainerror "github.com/rentledger/reconciler/internal/domain/error"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filters.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write rules file: %v", err)
	}
	return path
}

func TestLoadRuleSet(t *testing.T) {
	t.Run("missing file yields an empty set", func(t *testing.T) {
		rs, err := LoadRuleSet(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatalf("expected no error for a missing file, got %v", err)
		}
		if _, excluded := rs.Evaluate(map[string]string{"name": "anything"}); excluded {
			t.Error("expected an empty set to exclude nothing")
		}
	})

	t.Run("invalid yaml errors", func(t *testing.T) {
		path := writeRules(t, "filters: [unclosed")
		_, err := LoadRuleSet(path)
		if err == nil {
			t.Fatal("expected a parse error")
		}
		if !errors.Is(err, domainerror.ErrFilterRuleInvalid) {
			t.Fatalf("expected ErrFilterRuleInvalid, got %v", err)
		}
	})
}

func TestRuleSetEvaluate(t *testing.T) {
	path := writeRules(t, `
filters:
  - action: EXCLUDE
    reason: Duplicate of manager entry
    name: duplicate vendor
  - action: EXCLUDE
    reason: Wrong portfolio
    account: Personal Checking
    amount: 250
  - action: KEEP
    name: keep me
`)
	rs, err := LoadRuleSet(path, "name", "notes")
	if err != nil {
		t.Fatalf("failed to load rules: %v", err)
	}

	t.Run("substring field matches case-insensitively", func(t *testing.T) {
		reason, excluded := rs.Evaluate(map[string]string{
			"name": "DUPLICATE VENDOR payment #42",
		})
		if !excluded {
			t.Fatal("expected the row to be excluded")
		}
		if reason != "Duplicate of manager entry" {
			t.Errorf("unexpected reason %q", reason)
		}
	})

	t.Run("exact field requires equality", func(t *testing.T) {
		if _, excluded := rs.Evaluate(map[string]string{
			"account": "Personal Checking Extra",
			"amount":  "250",
		}); excluded {
			t.Error("expected no match on a partial exact-field value")
		}
	})

	t.Run("all predicates must hold", func(t *testing.T) {
		if _, excluded := rs.Evaluate(map[string]string{
			"account": "Personal Checking",
			"amount":  "99",
		}); excluded {
			t.Error("expected no match when the amount predicate fails")
		}
	})

	t.Run("numeric predicate tolerates formatting", func(t *testing.T) {
		_, excluded := rs.Evaluate(map[string]string{
			"account": "Personal Checking",
			"amount":  "250.00",
		})
		if !excluded {
			t.Error("expected 250.00 to satisfy the numeric predicate 250")
		}
	})

	t.Run("non exclude actions never fire", func(t *testing.T) {
		if _, excluded := rs.Evaluate(map[string]string{"name": "keep me"}); excluded {
			t.Error("expected a KEEP rule to be ignored")
		}
	})
}
