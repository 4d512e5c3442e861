package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rentledger/reconciler/internal/domain/entity"
	domainerror "github.com/rentledger/reconciler/internal/domain/error"
)

// Huntington statements lose most interior spaces during text extraction;
// the label patterns below match the merged forms.
var (
	huntLoanNumber     = regexp.MustCompile(`Loan Account Number\s*(\d+)`)
	huntStatementDate  = regexp.MustCompile(`Statement Date:\s*(\d{2}/\d{2}/\d{4})`)
	huntPaymentDueDate = regexp.MustCompile(`Payment DueDate\s*(\d{2}/\d{2}/\d{4})`)
	huntAmountDue      = regexp.MustCompile(`Amount Due:\s*\$([\d,]+\.\d{2})`)
	huntOutstanding    = regexp.MustCompile(`OutstandingPrincipal\s*\$([\d,]+\.\d{2})`)
	huntPrincipal      = regexp.MustCompile(`Principal\s*\$([\d,]+\.\d{2})`)
	huntInterest       = regexp.MustCompile(`Interest\s*\$([\d,]+\.\d{2})`)
	huntEscrow         = regexp.MustCompile(`Escrow\(fortaxes and/orinsurance\)\s*\$([\d,]+\.\d{2})`)
	huntFees           = regexp.MustCompile(`TotalFees andCharges\s*\$([\d,]+\.\d{2})`)

	huntAddressSplit = regexp.MustCompile(`\s{5,}`)
)

type huntingtonParser struct{}

func (p *huntingtonParser) Bank() string { return "Huntington" }

func (p *huntingtonParser) Matches(text string) bool {
	return strings.Contains(text, "Huntington") || huntLoanNumber.MatchString(text)
}

func (p *huntingtonParser) Parse(text, sourceFile string) (*entity.MortgageStatement, error) {
	loanNumber, ok := firstMatch(huntLoanNumber, text)
	if !ok {
		return nil, domainerror.NewIngestError(
			domainerror.ErrStatementIncomplete,
			fmt.Sprintf("no loan account number found in %s", sourceFile),
		)
	}
	stmt := entity.NewMortgageStatement(p.Bank(), loanNumber)
	stmt.SourceFile = sourceFile

	stmt.StatementDate, _ = firstMatch(huntStatementDate, text)
	stmt.PaymentDueDate, _ = firstMatch(huntPaymentDueDate, text)
	stmt.AmountDue = matchedAmount(huntAmountDue, text)
	stmt.OutstandingPrincipal = matchedAmount(huntOutstanding, text)
	stmt.Principal = huntingtonPrincipal(text)
	stmt.Interest = matchedAmount(huntInterest, text)
	stmt.Escrow = matchedAmount(huntEscrow, text)
	stmt.Fees = matchedAmount(huntFees, text)

	stmt.PropertyAddress = huntingtonPropertyAddress(text)
	return stmt, nil
}

// huntingtonPrincipal skips the OutstandingPrincipal balance line and takes
// the first remaining Principal figure, which is the monthly breakdown.
func huntingtonPrincipal(text string) decimal.Decimal {
	for _, loc := range huntPrincipal.FindAllStringSubmatchIndex(text, -1) {
		if strings.HasSuffix(text[:loc[0]], "Outstanding") {
			continue
		}
		amt, err := parseAmount(text[loc[2]:loc[3]])
		if err == nil {
			return amt
		}
	}
	return decimal.Zero
}

// huntingtonPropertyAddress walks the lines following the PropertyAddress
// label. The address column shares lines with the loan summary column, so
// each line is cut at the first wide gap.
func huntingtonPropertyAddress(text string) string {
	var lines []string
	inSection := false
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, "PropertyAddress") {
			inSection = true
			_, after, _ := strings.Cut(line, "PropertyAddress")
			part := strings.TrimSpace(huntAddressSplit.Split(after, 2)[0])
			if part != "" {
				lines = append(lines, part)
			}
			continue
		}
		if !inSection {
			continue
		}
		if containsAny(line, "OutstandingPrincipal", "MaturityDate", "InterestRate", "PrepaymentPenalty") {
			break
		}
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		part := huntAddressSplit.Split(stripped, 2)[0]
		if containsAny(part, "Principal", "Interest", "Escrow", "RegularMonthly", "TotalFees") &&
			strings.Index(line, part) < 40 {
			break
		}
		if len(lines) < 3 {
			lines = append(lines, part)
		}
	}
	return demergeAddress(strings.Join(lines, " "))
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
