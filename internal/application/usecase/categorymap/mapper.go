// Package categorymap maps source-native account labels to the ledger's
// category vocabulary.
package categorymap

import (
	"strings"

	"github.com/rentledger/reconciler/internal/domain/valueobject"
)

// Rule is one ordered mapping rule. A rule fires when any AccountAny
// substring appears in the lower-cased account label and, if MemoAny is
// set, any of its substrings appears in the memo. First match wins.
type Rule struct {
	AccountAny []string
	MemoAny    []string
	Pair       valueobject.CategoryPair
}

func (r Rule) matches(account, memo string) bool {
	hit := false
	for _, kw := range r.AccountAny {
		if strings.Contains(account, kw) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}
	if len(r.MemoAny) == 0 {
		return true
	}
	for _, kw := range r.MemoAny {
		if strings.Contains(memo, kw) {
			return true
		}
	}
	return false
}

// Mapper applies an ordered rule table. It is pure and deterministic: the
// same label and memo always map to the same pair.
type Mapper struct {
	rules []Rule
}

// NewMapper creates a Mapper over the given ordered rules.
func NewMapper(rules []Rule) *Mapper {
	return &Mapper{rules: rules}
}

// Map resolves an account label and memo to a category pair. The second
// return value is false when no rule fires.
func (m *Mapper) Map(account, memo string) (valueobject.CategoryPair, bool) {
	account = strings.ToLower(account)
	memo = strings.ToLower(memo)

	for _, r := range m.rules {
		if r.matches(account, memo) {
			return r.Pair, true
		}
	}
	return valueobject.CategoryPair{}, false
}

// MapOrDefault resolves like Map, falling back to Other Expenses.
func (m *Mapper) MapOrDefault(account, memo string) valueobject.CategoryPair {
	if pair, ok := m.Map(account, memo); ok {
		return pair
	}
	return valueobject.CategoryPair{Category: "Other Expenses"}
}
