package reconcile

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rentledger/reconciler/internal/domain/entity"
)

// matchManagerTransactions pairs ledger rows with manager GL rows on exact
// amount (sign-inverted) within a tight date window. Only manager-managed
// properties participate; when both sides carry a property link the links
// must agree, and unlinked rows fall back to amount/date alone.
func (uc *Engine) matchManagerTransactions(st *runState) {
	consumedManager := make(map[uuid.UUID]struct{})

	for _, tx := range st.ledger {
		if st.consumed(tx.ID) {
			continue
		}
		if tx.PropertyID != nil {
			if p, ok := st.properties[*tx.PropertyID]; ok && !p.ManagerManaged {
				continue
			}
		}

		txDate, ok := ParseDate(tx.Date)
		if !ok {
			continue
		}

		var best *entity.ManagerTransaction
		bestDiff := 0

		for _, mtx := range st.manager {
			if _, done := consumedManager[mtx.ID]; done {
				continue
			}
			if tx.PropertyID != nil && mtx.PropertyID != nil && *tx.PropertyID != *mtx.PropertyID {
				continue
			}

			if !st.cfg.AmountsMatch(tx.Amount, mtx.LedgerAmount()) {
				continue
			}

			mDate, ok := ParseDate(mtx.EntryDate)
			if !ok {
				continue
			}
			diff := absDays(txDate, mDate)
			if diff > st.cfg.ManagerDateToleranceDays {
				continue
			}

			if best == nil || diff < bestDiff {
				best = mtx
				bestDiff = diff
			}
		}

		if best == nil {
			continue
		}

		match := entity.NewReconciliationMatch(entity.MatchTypeAmountDate, 1.0)
		match.LedgerTransactionID = &tx.ID
		match.ManagerTransactionID = &best.ID
		match.Notes = fmt.Sprintf("Manager match: date diff=%dd", bestDiff)
		st.addMatch(match)
		st.consume(tx.ID)
		consumedManager[best.ID] = struct{}{}
		st.bumpMatched("manager", 1)
	}
}
