package reconcile

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rentledger/reconciler/internal/domain/entity"
	"github.com/rentledger/reconciler/internal/domain/valueobject"
)

// matchRentPlatform pairs completed platform payments with ledger rent
// deposits on the same property. Tenants pay late and the platform settles
// slowly, so the window is wide; amounts must agree to the cent.
func (uc *Engine) matchRentPlatform(st *runState, payeeToken string) {
	payeeToken = strings.ToLower(payeeToken)
	consumedRent := make(map[uuid.UUID]struct{})

	for _, rtx := range st.rent {
		if rtx.PropertyID == nil || !rtx.CreditAmount.IsPositive() {
			continue
		}
		if _, done := consumedRent[rtx.ID]; done {
			continue
		}

		rDate, ok := ParseDate(rtx.CompletedOn)
		if !ok {
			continue
		}

		var best *entity.LedgerTransaction
		bestDiff := 0

		for _, tx := range st.ledger {
			if st.consumed(tx.ID) || !sameProperty(tx.PropertyID, rtx.PropertyID) {
				continue
			}

			// Rent deposits: Income category, and either the Rents
			// sub-category or the platform's name in the payee.
			if !valueobject.CategoriesEqual(tx.Category, valueobject.CategoryIncome) {
				continue
			}
			isRents := strings.EqualFold(strings.TrimSpace(tx.SubCategory), valueobject.SubCategoryRents)
			payeeHit := payeeToken != "" && strings.Contains(strings.ToLower(tx.Payee), payeeToken)
			if !isRents && !payeeHit {
				continue
			}

			if !st.cfg.AmountsMatch(tx.Amount, rtx.CreditAmount) {
				continue
			}

			txDate, ok := ParseDate(tx.Date)
			if !ok {
				continue
			}
			diff := absDays(rDate, txDate)
			if diff > st.cfg.RentPlatformDateToleranceDays {
				continue
			}

			if best == nil || diff < bestDiff {
				best = tx
				bestDiff = diff
			}
		}

		if best == nil {
			continue
		}

		match := entity.NewReconciliationMatch(entity.MatchTypeRentPlatform, 1.0)
		match.LedgerTransactionID = &best.ID
		match.RentPlatformID = &rtx.ID
		match.Notes = fmt.Sprintf("Rent platform match: date diff=%dd, amount=%s", bestDiff, rtx.CreditAmount.StringFixed(2))
		st.addMatch(match)
		st.consume(best.ID)
		consumedRent[rtx.ID] = struct{}{}
		st.bumpMatched("rent_platform", 1)
	}
}
