package reconcile

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rentledger/reconciler/internal/domain/entity"
	"github.com/rentledger/reconciler/internal/domain/valueobject"
)

// matchMortgageComponents pairs each statement's principal, interest and
// escrow breakdowns with ledger split rows. Two passes widen the window
// after the due date; the second pass only sees components the first one
// left unmatched. A ledger row with a mismatched amount still matches at
// reduced confidence, with both figures recorded for the report.
func (uc *Engine) matchMortgageComponents(st *runState) {
	for _, passDays := range []int{st.cfg.MortgageFirstPassDays, st.cfg.MortgageSecondPassDays} {
		for _, stmt := range st.statements {
			if stmt.PropertyID == nil {
				continue
			}

			dueDate, ok := statementMatchDate(stmt)
			if !ok {
				continue
			}

			for _, comp := range stmt.Components() {
				if st.componentDone(stmt.ID, comp.SubCategory) {
					continue
				}

				type candidate struct {
					tx          *entity.LedgerTransaction
					daysAfter   int
					exactAmount bool
				}
				var candidates []candidate

				for _, tx := range st.ledger {
					if st.consumed(tx.ID) || !sameProperty(tx.PropertyID, stmt.PropertyID) {
						continue
					}

					// A categorized row must name this component; a blank
					// sub-category row is eligible on amount alone.
					if tx.SubCategory != "" && tx.SubCategory != comp.SubCategory {
						continue
					}

					txDate, ok := ParseDate(tx.Date)
					if !ok {
						continue
					}

					// Payments land on or after the due date. Anything
					// earlier belongs to the previous statement period.
					daysAfter := daysBetween(dueDate, txDate)
					if daysAfter < 0 || daysAfter > passDays {
						continue
					}

					exact := tx.Amount.Add(comp.Amount).Abs().LessThan(st.cfg.AmountTolerance)
					candidates = append(candidates, candidate{tx: tx, daysAfter: daysAfter, exactAmount: exact})
				}

				if len(candidates) == 0 {
					continue
				}

				best := candidates[0]
				for _, c := range candidates[1:] {
					if (c.exactAmount && !best.exactAmount) ||
						(c.exactAmount == best.exactAmount && c.daysAfter < best.daysAfter) {
						best = c
					}
				}

				match := entity.NewReconciliationMatch(entity.MatchTypeMortgageComponent, 1.0)
				match.LedgerTransactionID = &best.tx.ID
				match.MortgageStatementID = &stmt.ID
				match.MortgageComponent = comp.SubCategory
				if best.exactAmount {
					match.Notes = fmt.Sprintf("%s match (diff=%dd)", comp.SubCategory, best.daysAfter)
				} else {
					match.Score = 0.5
					match.Notes = fmt.Sprintf("%s match (diff=%dd, AMT MISMATCH: stmt=%s vs ledger=%s)",
						comp.SubCategory, best.daysAfter, comp.Amount.StringFixed(2), best.tx.Amount.Abs().StringFixed(2))
					st.summary.ComponentMismatches = append(st.summary.ComponentMismatches, valueobject.ComponentMismatch{
						StatementID:     stmt.ID,
						PropertyName:    st.propertyName(stmt.PropertyID),
						SubCategory:     comp.SubCategory,
						StatementAmount: comp.Amount,
						LedgerAmount:    best.tx.Amount.Abs(),
					})
				}
				st.addMatch(match)
				st.consume(best.tx.ID)
				st.markComponent(stmt.ID, comp.SubCategory)
				st.bumpMatched("mortgage", 1)
				st.summary.ComponentsMatched++
			}
		}
	}

	for _, stmt := range st.statements {
		st.summary.ComponentsExpected += len(stmt.Components())
	}
}

// detectUnsplitPayments looks for one unconsumed ledger lump sum covering a
// statement whose components were not all matched. Findings are reported
// for manual splitting, not recorded as matches; the lump sum stays
// available to later phases.
func (uc *Engine) detectUnsplitPayments(st *runState) {
	for _, stmt := range st.statements {
		if stmt.PropertyID == nil || !stmt.AmountDue.IsPositive() {
			continue
		}
		if st.componentCount(stmt.ID) >= st.cfg.FullComponentMatchCount {
			continue
		}

		dueDate, ok := statementMatchDate(stmt)
		if !ok {
			continue
		}

		var best *entity.LedgerTransaction
		bestDateDiff := 0
		bestAmountDiff := st.cfg.UnsplitAmountTolerance

		for _, tx := range st.ledger {
			if st.consumed(tx.ID) || !sameProperty(tx.PropertyID, stmt.PropertyID) {
				continue
			}
			if isComponentSubCategory(tx.SubCategory) {
				continue
			}

			txDate, ok := ParseDate(tx.Date)
			if !ok {
				continue
			}
			dateDiff := absDays(dueDate, txDate)
			if dateDiff > st.cfg.UnsplitDateToleranceDays {
				continue
			}

			amountDiff := tx.Amount.Add(stmt.AmountDue).Abs()
			if amountDiff.GreaterThan(st.cfg.UnsplitAmountTolerance) {
				continue
			}

			if best == nil || dateDiff < bestDateDiff ||
				(dateDiff == bestDateDiff && amountDiff.LessThan(bestAmountDiff)) {
				best = tx
				bestDateDiff = dateDiff
				bestAmountDiff = amountDiff
			}
		}

		if best == nil {
			continue
		}

		expected := make([]valueobject.MortgageComponentAmount, 0, 3)
		for _, comp := range stmt.Components() {
			expected = append(expected, valueobject.MortgageComponentAmount{
				SubCategory: comp.SubCategory,
				Amount:      comp.Amount,
			})
		}

		st.summary.UnsplitPayments = append(st.summary.UnsplitPayments, valueobject.UnsplitPayment{
			StatementID:         stmt.ID,
			LedgerTransactionID: best.ID,
			PropertyName:        st.propertyName(stmt.PropertyID),
			LedgerAmount:        best.Amount,
			AmountDue:           stmt.AmountDue,
			DueDate:             stmt.PaymentDueDate,
			LedgerDate:          best.Date,
			MatchedComponents:   st.matchedComponents(stmt.ID),
			ExpectedComponents:  expected,
		})
	}
}

// statementMatchDate returns the date component matching anchors on: the
// payment due date, falling back to the statement date.
func statementMatchDate(stmt *entity.MortgageStatement) (time.Time, bool) {
	if d, ok := ParseDate(stmt.PaymentDueDate); ok {
		return d, true
	}
	return ParseDate(stmt.StatementDate)
}

func isComponentSubCategory(sub string) bool {
	for _, c := range entity.MortgageComponentSubCategories {
		if sub == c {
			return true
		}
	}
	return false
}

func (st *runState) markComponent(stmtID uuid.UUID, sub string) {
	if st.componentMatched[stmtID] == nil {
		st.componentMatched[stmtID] = make(map[string]bool)
	}
	st.componentMatched[stmtID][sub] = true
}

func (st *runState) componentDone(stmtID uuid.UUID, sub string) bool {
	return st.componentMatched[stmtID][sub]
}

func (st *runState) componentCount(stmtID uuid.UUID) int {
	return len(st.componentMatched[stmtID])
}

func (st *runState) matchedComponents(stmtID uuid.UUID) []string {
	out := make([]string, 0, 3)
	for _, c := range entity.MortgageComponentSubCategories {
		if st.componentMatched[stmtID][c] {
			out = append(out, c)
		}
	}
	return out
}
