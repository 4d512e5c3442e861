// Package extract pulls structured mortgage statement data out of the
// bank-issued PDF statements.
package extract

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"

	"github.com/rentledger/reconciler/internal/domain/entity"
	domainerror "github.com/rentledger/reconciler/internal/domain/error"
)

// Parser extracts a statement from one bank's PDF layout.
type Parser interface {
	// Bank returns the bank label stored on extracted statements.
	Bank() string

	// Matches reports whether the document text looks like this bank's
	// monthly statement.
	Matches(text string) bool

	// Parse extracts the statement fields from the document text.
	Parse(text, sourceFile string) (*entity.MortgageStatement, error)
}

// Parsers returns the supported bank statement parsers.
func Parsers() []Parser {
	return []Parser{
		&pncParser{},
		&huntingtonParser{},
	}
}

// ExtractText returns the plain text of all pages of a PDF.
func ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", path, err)
	}
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("failed to read text from %s: %w", path, err)
	}
	return buf.String(), nil
}

// ParseStatement routes the document to the right bank parser.
// Escrow analysis disclosures ride along in the same download directory and
// are recognized but skipped.
func ParseStatement(text, sourceFile string) (*entity.MortgageStatement, error) {
	if isEscrowAnalysis(text) {
		return nil, domainerror.NewIngestError(
			domainerror.ErrUnknownDocumentType,
			fmt.Sprintf("%s is an escrow analysis disclosure, not a statement", sourceFile),
		)
	}
	for _, p := range Parsers() {
		if p.Matches(text) {
			return p.Parse(text, sourceFile)
		}
	}
	return nil, domainerror.NewIngestError(
		domainerror.ErrUnknownDocumentType,
		fmt.Sprintf("no parser recognizes %s", sourceFile),
	)
}

func isEscrowAnalysis(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "escrow analysis") || strings.Contains(lower, "annual escrow account disclosure")
}

var amountCleaner = strings.NewReplacer("$", "", ",", "", " ", "")

// parseAmount converts a statement money string to a decimal.
func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := amountCleaner.Replace(strings.TrimSpace(raw))
	return decimal.NewFromString(cleaned)
}

// firstMatch returns the first capture group of the pattern, trimmed.
func firstMatch(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// matchedAmount extracts and parses a money capture group, returning zero
// when the pattern is absent.
func matchedAmount(re *regexp.Regexp, text string) decimal.Decimal {
	raw, ok := firstMatch(re, text)
	if !ok {
		return decimal.Zero
	}
	amount, err := parseAmount(raw)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
