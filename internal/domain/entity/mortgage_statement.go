package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Mortgage component sub-categories as they appear in the owner's ledger.
const (
	SubCategoryMortgagePrincipal = "Mortgage Principal"
	SubCategoryMortgageInterest  = "Mortgage Interest"
	SubCategoryEscrowPayments    = "General Escrow Payments"
)

// MortgageComponentSubCategories lists the ledger sub-categories a split
// mortgage payment is expected to land in, in breakdown order.
var MortgageComponentSubCategories = []string{
	SubCategoryMortgagePrincipal,
	SubCategoryMortgageInterest,
	SubCategoryEscrowPayments,
}

// MortgageStatement represents one extracted monthly mortgage statement.
type MortgageStatement struct {
	ID                   uuid.UUID
	PropertyID           *uuid.UUID
	Bank                 string
	PropertyAddress      string
	StatementDate        string
	PaymentDueDate       string
	AmountDue            decimal.Decimal
	Principal            decimal.Decimal
	Interest             decimal.Decimal
	Escrow               decimal.Decimal
	Fees                 decimal.Decimal
	OutstandingPrincipal decimal.Decimal
	LoanNumber           string
	SourceFile           string
	Valid                bool
	ValidationError      string
	CreatedAt            time.Time
}

// NewMortgageStatement creates a new MortgageStatement entity.
func NewMortgageStatement(bank, loanNumber string) *MortgageStatement {
	return &MortgageStatement{
		ID:         uuid.New(),
		Bank:       bank,
		LoanNumber: loanNumber,
		Valid:      true,
		CreatedAt:  time.Now().UTC(),
	}
}

// MortgageComponent is one expected ledger split of a statement.
type MortgageComponent struct {
	SubCategory string
	Amount      decimal.Decimal
}

// Components returns the positive payment components of the statement in
// breakdown order. Fees are charged separately and are not part of the
// expected ledger split.
func (s *MortgageStatement) Components() []MortgageComponent {
	out := make([]MortgageComponent, 0, 3)
	for _, c := range []MortgageComponent{
		{SubCategory: SubCategoryMortgagePrincipal, Amount: s.Principal},
		{SubCategory: SubCategoryMortgageInterest, Amount: s.Interest},
		{SubCategory: SubCategoryEscrowPayments, Amount: s.Escrow},
	} {
		if c.Amount.IsPositive() {
			out = append(out, c)
		}
	}
	return out
}

// ComponentSum returns principal + interest + escrow + fees.
func (s *MortgageStatement) ComponentSum() decimal.Decimal {
	return s.Principal.Add(s.Interest).Add(s.Escrow).Add(s.Fees)
}
