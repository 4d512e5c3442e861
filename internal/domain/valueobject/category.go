package valueobject

import "strings"

// CategoryPair is a mapped (category, sub-category) in the ledger vocabulary.
// SubCategory may be blank; comparison rules treat blank as unspecified, not
// as a mismatch.
type CategoryPair struct {
	Category    string
	SubCategory string
}

// Ledger categories with no reconciliation source. Their unmatched rows are
// reported in a separate bucket instead of being treated as discrepancies.
const (
	CategoryInsurance     = "Insurance"
	CategoryTaxes         = "Taxes"
	CategoryAdminOther    = "Admin & Other"
	CategoryManagementFee = "Management Fees"
	CategoryUtilities     = "Utilities"
	CategoryIncome        = "Income"
	CategoryTransfers     = "Transfers"

	SubCategoryRents              = "Rents"
	SubCategoryWaterAndSewer      = "Water & Sewer"
	SubCategoryPropertyManagement = "Property Management"
	SubCategoryOwnerDistributions = "Owner Distributions"
)

// CategoriesEqual compares categories case-insensitively.
func CategoriesEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// SubCategoriesCompatible implements the permissive sub-category comparison
// used by report matching. A blank sub-category on either side is compatible
// with anything; management-fee rows match whether the ledger split them out
// as Property Management or left the sub-category empty. With flexible set,
// containment in either direction also counts, which absorbs labels like
// "Management Fee" vs "Management Fees - Residential".
func SubCategoriesCompatible(category, ledgerSub, reportSub string, flexible bool) bool {
	l := strings.TrimSpace(strings.ToLower(ledgerSub))
	r := strings.TrimSpace(strings.ToLower(reportSub))

	if l == "" || r == "" {
		return true
	}
	if l == r {
		return true
	}
	if CategoriesEqual(category, CategoryManagementFee) {
		pm := strings.ToLower(SubCategoryPropertyManagement)
		if l == pm || r == pm {
			return true
		}
	}
	if flexible {
		return strings.Contains(l, r) || strings.Contains(r, l)
	}
	return false
}

// SignFlexible reports whether amounts under this category pair are compared
// by absolute value. Water and sewer bills are recorded with inconsistent
// signs across sources; no other sub-category gets this treatment.
func SignFlexible(category, subCategory string) bool {
	return CategoriesEqual(category, CategoryUtilities) &&
		strings.EqualFold(strings.TrimSpace(subCategory), SubCategoryWaterAndSewer)
}

// HasNoReconciliationSource reports whether a ledger category pair has no
// external source to reconcile against.
func HasNoReconciliationSource(category, subCategory string) bool {
	if CategoriesEqual(category, CategoryInsurance) || CategoriesEqual(category, CategoryTaxes) {
		return true
	}
	if CategoriesEqual(category, CategoryAdminOther) {
		sub := strings.ToLower(subCategory)
		for _, kw := range []string{"hoa", "dues", "licenses", "bank fees"} {
			if strings.Contains(sub, kw) {
				return true
			}
		}
	}
	return false
}
