package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rentledger/reconciler/internal/domain/entity"
	domainerror "github.com/rentledger/reconciler/internal/domain/error"
)

// PNC statements render with column text runs merged together, so several
// labels carry no interior spaces.
var (
	pncLoanNumber     = regexp.MustCompile(`Account Number\s+(\d+)`)
	pncStatementDate  = regexp.MustCompile(`Statement Date\s+(\d{2}/\d{2}/\d{4})`)
	pncPaymentDueDate = regexp.MustCompile(`Payment Due Date\s+(\d{2}/\d{2}/\d{4})`)
	pncAmountDue      = regexp.MustCompile(`Amount Due\s+\$([\d,]+\.\d{2})`)
	pncOutstanding    = regexp.MustCompile(`Outstanding Principal\s+\$([\d,]+\.\d{2})`)
	pncInterest       = regexp.MustCompile(`Interest\s+\$([\d,]+\.\d{2})`)
	pncEscrow         = regexp.MustCompile(`Escrow \(Taxes and Insurance\)\s+\$([\d,]+\.\d{2})`)
	pncPrincipalAny   = regexp.MustCompile(`Principal\s+\$([\d,]+\.\d{2})`)

	// The breakdown column in the Explanation of Amount Due section sits far
	// right of the labels, showing up as a long run of spaces.
	pncPrincipalBreakdown = regexp.MustCompile(`\s{20,}Principal\s{5,}\$([\d,]+\.\d{2})`)

	pncAddress = regexp.MustCompile(`PropertyAddress:\s*(.*?)(?:EscrowBalance|PaymentOptions|$)`)
)

type pncParser struct{}

func (p *pncParser) Bank() string { return "PNC" }

func (p *pncParser) Matches(text string) bool {
	return strings.Contains(text, "PNC")
}

func (p *pncParser) Parse(text, sourceFile string) (*entity.MortgageStatement, error) {
	loanNumber, ok := firstMatch(pncLoanNumber, text)
	if !ok {
		return nil, domainerror.NewIngestError(
			domainerror.ErrStatementIncomplete,
			fmt.Sprintf("no account number found in %s", sourceFile),
		)
	}
	stmt := entity.NewMortgageStatement(p.Bank(), loanNumber)
	stmt.SourceFile = sourceFile

	stmt.StatementDate, _ = firstMatch(pncStatementDate, text)
	stmt.PaymentDueDate, _ = firstMatch(pncPaymentDueDate, text)
	stmt.AmountDue = matchedAmount(pncAmountDue, text)
	stmt.OutstandingPrincipal = matchedAmount(pncOutstanding, text)
	stmt.Principal = pncPrincipal(text)
	stmt.Interest = matchedAmount(pncInterest, text)
	stmt.Escrow = matchedAmount(pncEscrow, text)
	// PNC folds fees into the amount due; there is no separate fees line.

	stmt.PropertyAddress = pncPropertyAddress(text)
	return stmt, nil
}

// pncPrincipal finds the monthly principal breakdown while avoiding the
// Outstanding Principal balance line.
func pncPrincipal(text string) decimal.Decimal {
	if _, after, found := strings.Cut(text, "Explanation of Amount Due"); found {
		if amt := matchedAmount(pncPrincipalBreakdown, after); !amt.IsZero() {
			return amt
		}
	}
	for _, loc := range pncPrincipalAny.FindAllStringSubmatchIndex(text, -1) {
		if strings.HasSuffix(text[:loc[0]], "Outstanding ") {
			continue
		}
		amt, err := parseAmount(text[loc[2]:loc[3]])
		if err == nil {
			return amt
		}
	}
	return decimal.Zero
}

func pncPropertyAddress(text string) string {
	flat := strings.ReplaceAll(text, "\n", " ")
	raw, ok := firstMatch(pncAddress, flat)
	if !ok {
		return ""
	}
	return demergeAddress(raw)
}
