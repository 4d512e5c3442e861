package reconcile

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentledger/reconciler/internal/domain/entity"
	"github.com/rentledger/reconciler/internal/domain/valueobject"
)

// capitalExpenseFloor is the amount above which a repair line may cross
// over to Capital Expenses when the source allows it.
var capitalExpenseFloor = decimal.NewFromInt(1000)

// Utility bills dated before the report line are suspect; allow them only
// this close.
const utilityBeforeReportMaxDays = 5

// matchReportSource runs the exact/split/monthly sequence for one
// income/expense report source. Every source gets the same matcher; the
// config carries the per-manager quirks.
func (uc *Engine) matchReportSource(st *runState, src valueobject.ReportSourceConfig) {
	propIDs := sourcePropertyIDs(st, src)
	consumedReport := make(map[uuid.UUID]struct{})

	for _, rtx := range st.reports[src.Name] {
		if _, done := consumedReport[rtx.ID]; done {
			continue
		}

		if _, ok := ParseDate(rtx.Date); !ok {
			continue
		}

		// Narrow to this row's property when the report line is linked;
		// combined reports fall back to everything the source covers.
		rowProps := propIDs
		if rtx.PropertyID != nil {
			rowProps = map[uuid.UUID]bool{*rtx.PropertyID: true}
		}
		if len(rowProps) == 0 {
			continue
		}

		// Fee roll-up sources only report monthly totals for some
		// categories; exact matching against them produces false pairs.
		if !src.PrefersMonthly(rtx.Category) {
			if uc.reportExactMatch(st, src, rtx, rowProps, consumedReport) {
				continue
			}
			if rtx.PropertyID != nil &&
				uc.reportSplitMatch(st, src, rtx, *rtx.PropertyID, consumedReport) {
				continue
			}
		}
		if src.MonthlyEligible(rtx.Category) {
			uc.reportMonthlyMatch(st, src, rtx, rowProps, consumedReport)
		}
	}
}

// reportExactMatch finds the single best one-to-one ledger match for a
// report row. Utilities prefer ledger dates on or after the report date.
func (uc *Engine) reportExactMatch(
	st *runState,
	src valueobject.ReportSourceConfig,
	rtx *entity.ReportTransaction,
	rowProps map[uuid.UUID]bool,
	consumedReport map[uuid.UUID]struct{},
) bool {
	rDate, _ := ParseDate(rtx.Date)
	isUtilities := valueobject.CategoriesEqual(rtx.Category, valueobject.CategoryUtilities)
	signFlexible := valueobject.SignFlexible(rtx.Category, rtx.SubCategory)

	var best *entity.LedgerTransaction
	bestDiff := 0
	bestAfter := false

	for _, tx := range st.ledger {
		if st.consumed(tx.ID) || tx.PropertyID == nil || !rowProps[*tx.PropertyID] {
			continue
		}
		if !reportCategoryMatch(src, rtx, tx) {
			continue
		}
		if !valueobject.SubCategoriesCompatible(rtx.Category, tx.SubCategory, rtx.SubCategory, src.FlexibleSubCategory) {
			continue
		}

		txDate, ok := ParseDate(tx.Date)
		if !ok {
			continue
		}

		var amountOK bool
		if signFlexible {
			amountOK = st.cfg.AmountsMatch(tx.Amount.Abs(), rtx.Amount.Abs())
		} else {
			amountOK = st.cfg.AmountsMatch(tx.Amount, rtx.Amount)
		}
		if !amountOK {
			continue
		}

		diff := absDays(rDate, txDate)
		if diff > st.cfg.ReportDateToleranceDays {
			continue
		}
		after := !txDate.Before(rDate)
		if isUtilities && !after && diff > utilityBeforeReportMaxDays {
			continue
		}

		better := best == nil || diff < bestDiff
		if isUtilities && best != nil {
			// Bills are paid after they are issued; an after-date hit
			// beats any before-date hit.
			if after != bestAfter {
				better = after
			} else {
				better = diff < bestDiff
			}
		}
		if better {
			best = tx
			bestDiff = diff
			bestAfter = after
		}
	}

	if best == nil {
		return false
	}

	match := entity.NewReconciliationMatch(src.Name, 1.0)
	match.LedgerTransactionID = &best.ID
	match.ReportTransactionID = &rtx.ID
	match.ReportSource = src.Name
	match.Notes = fmt.Sprintf("%s match: %s (%s), date diff=%dd, amount=%s",
		src.Name, rtx.AccountName, rtx.Type, bestDiff, rtx.Amount.StringFixed(2))
	st.addMatch(match)
	st.consume(best.ID)
	consumedReport[rtx.ID] = struct{}{}
	st.bumpMatched(src.Name, 1)
	return true
}

// reportSplitMatch looks for 2..N ledger rows that sum to one report line,
// for rent paid in installments and similar splits. The candidate pool is
// sorted by date proximity so small combinations of near rows are tried
// first, and combination size is capped.
func (uc *Engine) reportSplitMatch(
	st *runState,
	src valueobject.ReportSourceConfig,
	rtx *entity.ReportTransaction,
	propID uuid.UUID,
	consumedReport map[uuid.UUID]struct{},
) bool {
	rDate, _ := ParseDate(rtx.Date)
	signFlexible := valueobject.SignFlexible(rtx.Category, rtx.SubCategory)

	type candidate struct {
		tx   *entity.LedgerTransaction
		diff int
	}
	var pool []candidate

	for _, tx := range st.ledger {
		if st.consumed(tx.ID) || tx.PropertyID == nil || *tx.PropertyID != propID {
			continue
		}
		if !valueobject.CategoriesEqual(tx.Category, rtx.Category) {
			continue
		}
		if !valueobject.SubCategoriesCompatible(rtx.Category, tx.SubCategory, rtx.SubCategory, src.FlexibleSubCategory) {
			continue
		}
		txDate, ok := ParseDate(tx.Date)
		if !ok {
			continue
		}
		diff := absDays(rDate, txDate)
		if diff > st.cfg.ReportDateToleranceDays {
			continue
		}
		if !signFlexible && tx.Amount.Mul(rtx.Amount).Sign() <= 0 {
			continue
		}
		pool = append(pool, candidate{tx: tx, diff: diff})
	}

	if len(pool) < st.cfg.SplitMinParts {
		return false
	}
	for i := 1; i < len(pool); i++ {
		for j := i; j > 0 && pool[j].diff < pool[j-1].diff; j-- {
			pool[j], pool[j-1] = pool[j-1], pool[j]
		}
	}

	maxParts := st.cfg.SplitMaxParts
	if len(pool) < maxParts {
		maxParts = len(pool)
	}

	for size := st.cfg.SplitMinParts; size <= maxParts; size++ {
		combo := findSumCombination(pool, size, func(idxs []int) bool {
			sum := decimal.Zero
			for _, i := range idxs {
				sum = sum.Add(pool[i].tx.Amount)
			}
			if signFlexible {
				return st.cfg.AmountsMatch(sum.Abs(), rtx.Amount.Abs())
			}
			return st.cfg.AmountsMatch(sum, rtx.Amount)
		})
		if combo == nil {
			continue
		}

		primary := pool[combo[0]]
		match := entity.NewReconciliationMatch(src.Name+entity.MatchSuffixSplit, 0.95)
		match.LedgerTransactionID = &primary.tx.ID
		match.ReportTransactionID = &rtx.ID
		match.ReportSource = src.Name
		match.Notes = fmt.Sprintf("%s split match: %s (%s), %d transactions totaling %s, date diff=%dd",
			src.Name, rtx.AccountName, rtx.Type, size, rtx.Amount.StringFixed(2), primary.diff)
		st.addMatch(match)
		st.consume(primary.tx.ID)
		st.bumpMatched(src.Name, 1)

		for _, i := range combo[1:] {
			part := entity.NewReconciliationMatch(src.Name+entity.MatchSuffixSplit, 0.95)
			part.LedgerTransactionID = &pool[i].tx.ID
			part.ReportTransactionID = &rtx.ID
			part.ReportSource = src.Name
			part.Notes = fmt.Sprintf("%s split match (part of %d totaling %s)",
				src.Name, size, rtx.Amount.StringFixed(2))
			st.addMatch(part)
			st.consume(pool[i].tx.ID)
			st.bumpMatched(src.Name, 1)
		}

		consumedReport[rtx.ID] = struct{}{}
		return true
	}

	return false
}

// reportMonthlyMatch sums every unconsumed candidate in the report row's
// calendar month and matches the lot when the total agrees. Fee categories
// get charged per tenant event but reported as one monthly line.
func (uc *Engine) reportMonthlyMatch(
	st *runState,
	src valueobject.ReportSourceConfig,
	rtx *entity.ReportTransaction,
	rowProps map[uuid.UUID]bool,
	consumedReport map[uuid.UUID]struct{},
) {
	reportDate, _ := ParseDate(rtx.Date)

	var monthTxs []*entity.LedgerTransaction
	sum := decimal.Zero

	for _, tx := range st.ledger {
		if st.consumed(tx.ID) || tx.PropertyID == nil || !rowProps[*tx.PropertyID] {
			continue
		}
		if !valueobject.CategoriesEqual(tx.Category, rtx.Category) {
			continue
		}
		if !valueobject.SubCategoriesCompatible(rtx.Category, tx.SubCategory, rtx.SubCategory, src.FlexibleSubCategory) {
			continue
		}
		txDate, ok := ParseDate(tx.Date)
		if !ok || !sameMonth(txDate, reportDate) {
			continue
		}
		if tx.Amount.Mul(rtx.Amount).Sign() <= 0 {
			continue
		}
		monthTxs = append(monthTxs, tx)
		sum = sum.Add(tx.Amount)
	}

	if len(monthTxs) == 0 || !st.cfg.AmountsMatch(sum, rtx.Amount) {
		return
	}

	monthLabel := reportDate.Format("January 2006")
	for i, tx := range monthTxs {
		match := entity.NewReconciliationMatch(src.Name+entity.MatchSuffixMonthly, 0.90)
		match.LedgerTransactionID = &tx.ID
		match.ReportTransactionID = &rtx.ID
		match.ReportSource = src.Name
		if i == 0 {
			match.Notes = fmt.Sprintf("%s monthly aggregation: %s (%s), %d transactions in %s totaling %s",
				src.Name, rtx.AccountName, rtx.Type, len(monthTxs), monthLabel, rtx.Amount.StringFixed(2))
		} else {
			match.Notes = fmt.Sprintf("%s monthly aggregation (part of %d totaling %s)",
				src.Name, len(monthTxs), rtx.Amount.StringFixed(2))
		}
		st.addMatch(match)
		st.consume(tx.ID)
		st.bumpMatched(src.Name, 1)
	}
	consumedReport[rtx.ID] = struct{}{}
}

// inferDistributions reconstructs owner-distribution deposits for sources
// that report rent and management fee but not the net payout. A month with
// both lines implies a deposit of their sum (the fee is negative); the
// deposit may be categorized as rent income or as an owner distribution.
func (uc *Engine) inferDistributions(st *runState, src valueobject.ReportSourceConfig) {
	propIDs := sourcePropertyIDs(st, src)
	token := strings.ToLower(src.PayeeToken)

	type monthLines struct {
		rent *entity.ReportTransaction
		fee  *entity.ReportTransaction
	}
	months := make(map[string]*monthLines)
	var order []string

	for _, rtx := range st.reports[src.Name] {
		d, ok := ParseDate(rtx.Date)
		if !ok {
			continue
		}
		key := d.Format("2006-01")
		if months[key] == nil {
			months[key] = &monthLines{}
			order = append(order, key)
		}
		switch {
		case valueobject.CategoriesEqual(rtx.Category, valueobject.CategoryIncome) &&
			strings.EqualFold(rtx.SubCategory, valueobject.SubCategoryRents):
			months[key].rent = rtx
		case valueobject.CategoriesEqual(rtx.Category, valueobject.CategoryManagementFee):
			months[key].fee = rtx
		}
	}

	for _, key := range order {
		lines := months[key]
		if lines.rent == nil || lines.fee == nil {
			continue
		}
		rentDate, ok := ParseDate(lines.rent.Date)
		if !ok {
			continue
		}
		expected := lines.rent.Amount.Add(lines.fee.Amount)

		var best *entity.LedgerTransaction
		bestDiff := 0

		for _, tx := range st.ledger {
			if st.consumed(tx.ID) || tx.PropertyID == nil || !propIDs[*tx.PropertyID] {
				continue
			}
			if token != "" && !strings.Contains(strings.ToLower(tx.Payee), token) {
				continue
			}
			if !st.cfg.AmountsMatch(tx.Amount, expected) {
				continue
			}
			txDate, ok := ParseDate(tx.Date)
			if !ok || !sameMonth(txDate, rentDate) {
				continue
			}
			isRent := valueobject.CategoriesEqual(tx.Category, valueobject.CategoryIncome) &&
				strings.EqualFold(tx.SubCategory, valueobject.SubCategoryRents)
			isDistribution := tx.IsOwnerDistribution()
			if !isRent && !isDistribution {
				continue
			}
			diff := absDays(rentDate, txDate)
			if best == nil || diff < bestDiff {
				best = tx
				bestDiff = diff
			}
		}

		if best == nil {
			continue
		}

		match := entity.NewReconciliationMatch(src.Name+entity.MatchSuffixDistribution, 0.90)
		match.LedgerTransactionID = &best.ID
		match.ReportTransactionID = &lines.rent.ID
		match.ReportSource = src.Name
		match.Notes = fmt.Sprintf("%s owner distribution: %s (rent %s - mgmt fee %s), date diff=%dd",
			src.Name, expected.StringFixed(2), lines.rent.Amount.StringFixed(2),
			lines.fee.Amount.Abs().StringFixed(2), bestDiff)
		st.addMatch(match)
		st.consume(best.ID)
		st.bumpMatched(src.Name, 1)
	}
}

// reportCategoryMatch compares categories, honoring the capital-expense
// crossover for large amounts when the source enables it.
func reportCategoryMatch(src valueobject.ReportSourceConfig, rtx *entity.ReportTransaction, tx *entity.LedgerTransaction) bool {
	if valueobject.CategoriesEqual(tx.Category, rtx.Category) {
		return true
	}
	if !src.CapitalExpenseEquivalence || rtx.Amount.Abs().LessThanOrEqual(capitalExpenseFloor) {
		return false
	}
	pair := func(a, b string) bool {
		return valueobject.CategoriesEqual(tx.Category, a) && valueobject.CategoriesEqual(rtx.Category, b)
	}
	return pair("Capital Expenses", "Repairs & Maintenance") || pair("Repairs & Maintenance", "Capital Expenses")
}

// sourcePropertyIDs resolves the source's configured property names.
func sourcePropertyIDs(st *runState, src valueobject.ReportSourceConfig) map[uuid.UUID]bool {
	out := make(map[uuid.UUID]bool)
	for id, p := range st.properties {
		if src.ReportsOn(p.Name) {
			out[id] = true
		}
	}
	return out
}

// findSumCombination enumerates index combinations of the given size in
// pool order and returns the first whose sum predicate holds.
func findSumCombination[T any](pool []T, size int, sumOK func(idxs []int) bool) []int {
	idxs := make([]int, size)
	var walk func(start, depth int) []int
	walk = func(start, depth int) []int {
		if depth == size {
			if sumOK(idxs) {
				out := make([]int, size)
				copy(out, idxs)
				return out
			}
			return nil
		}
		for i := start; i <= len(pool)-(size-depth); i++ {
			idxs[depth] = i
			if found := walk(i+1, depth+1); found != nil {
				return found
			}
		}
		return nil
	}
	return walk(0, 0)
}
