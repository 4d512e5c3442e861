package categorymap

import "github.com/rentledger/reconciler/internal/domain/valueobject"

func pair(category, subCategory string) valueobject.CategoryPair {
	return valueobject.CategoryPair{Category: category, SubCategory: subCategory}
}

// ManagerGLRules maps the property manager's combined GL account names to
// ledger category pairs. Order matters: memo-gated rules sit above their
// account-level defaults.
var ManagerGLRules = []Rule{
	// Income
	{AccountAny: []string{"rent income"}, Pair: pair("Income", "Rents")},
	{AccountAny: []string{"late fee"}, Pair: pair("Income", "Late Fees")},
	{AccountAny: []string{"utility reimbursement"}, Pair: pair("Income", "Tenant Pass-Throughs")},
	{AccountAny: []string{"eviction fee reimbursement"}, Pair: pair("Income", "Eviction Fees")},

	// Management
	{AccountAny: []string{"management fees"}, Pair: pair("Management Fees", "Property Management")},
	{AccountAny: []string{"leasing fee", "lease renewal fee"}, Pair: pair("Management Fees", "Leasing Commissions")},

	// Expenses
	{AccountAny: []string{"labor costs"}, Pair: pair("Repairs & Maintenance", "Labor")},
	{AccountAny: []string{"cleaning and maintenance"}, Pair: pair("Repairs & Maintenance", "Cleaning & Janitorial")},
	{AccountAny: []string{"legal and professional fees"}, Pair: pair("Admin & Other", "Legal")},
	{
		AccountAny: []string{"material"},
		MemoAny:    []string{"plumb", "faucet", "bath", "drain", "sink", "toilet"},
		Pair:       pair("Repairs & Maintenance", "Plumbing Repairs"),
	},
	{AccountAny: []string{"material"}, MemoAny: []string{"roof"}, Pair: pair("Repairs & Maintenance", "Roof Repairs")},
	{
		AccountAny: []string{"material"},
		MemoAny:    []string{"lawn", "garden", "tree", "grass", "yard"},
		Pair:       pair("Repairs & Maintenance", "Gardening & Landscaping"),
	},
	{
		AccountAny: []string{"material"},
		MemoAny:    []string{"lock", "key", "door", "screen"},
		Pair:       pair("Repairs & Maintenance", "Security, Locks & Keys"),
	},
	{
		AccountAny: []string{"material"},
		MemoAny:    []string{"paint", "supplies", "moulding", "outlet", "plate", "batteries", "light", "filter", "gloves", "nails"},
		Pair:       pair("Repairs & Maintenance", "Labor"),
	},
	{AccountAny: []string{"material"}, Pair: pair("Repairs & Maintenance", "")},
	{
		AccountAny: []string{"utilities"},
		MemoAny:    []string{"water", "sewer", "gsd", "sanitary", "mcd"},
		Pair:       pair("Utilities", "Water & Sewer"),
	},
	{
		AccountAny: []string{"utilities"},
		MemoAny:    []string{"electric", "firstenergy", "light"},
		Pair:       pair("Utilities", "Electric"),
	},
	{AccountAny: []string{"utilities"}, MemoAny: []string{"nipsco"}, Pair: pair("Utilities", "Gas & Electric")},
	{AccountAny: []string{"utilities"}, MemoAny: []string{"gas"}, Pair: pair("Utilities", "Gas")},
	// Unrouted utility bills are nearly always municipal water.
	{AccountAny: []string{"utilities"}, Pair: pair("Utilities", "Water & Sewer")},
	{
		AccountAny: []string{"rental registration", "admin fee rental registration"},
		Pair:       pair("Repairs & Maintenance", "Permits & Inspections"),
	},

	// Transfers / equity
	{AccountAny: []string{"owner contribution"}, Pair: pair("Transfers", "Owner Contributions")},
	{AccountAny: []string{"owner draw"}, Pair: pair("Transfers", "Owner Distributions")},

	// Liabilities
	{AccountAny: []string{"security deposit liability"}, Pair: pair("Transfers", "Security Deposits")},
}

// ReportAccountRules maps income/expense report account names to ledger
// category pairs. Report accounts are coarser than GL accounts; these cover
// the lines every manager's report carries.
var ReportAccountRules = []Rule{
	{AccountAny: []string{"rent"}, Pair: pair("Income", "Rents")},
	{AccountAny: []string{"late fee"}, Pair: pair("Income", "Late Fees")},
	{AccountAny: []string{"management fee"}, Pair: pair("Management Fees", "Property Management")},
	{AccountAny: []string{"leasing", "lease renewal"}, Pair: pair("Management Fees", "Leasing Commissions")},
	{AccountAny: []string{"maintenance", "repair"}, Pair: pair("Repairs & Maintenance", "")},
	{AccountAny: []string{"water", "sewer"}, Pair: pair("Utilities", "Water & Sewer")},
	{AccountAny: []string{"electric"}, Pair: pair("Utilities", "Electric")},
	{AccountAny: []string{"gas"}, Pair: pair("Utilities", "Gas")},
	{AccountAny: []string{"utility", "utilities"}, Pair: pair("Utilities", "Water & Sewer")},
	{AccountAny: []string{"legal", "eviction"}, Pair: pair("Admin & Other", "Legal")},
	{AccountAny: []string{"owner distribution", "owner draw", "owner payment"}, Pair: pair("Transfers", "Owner Distributions")},
	{AccountAny: []string{"owner contribution"}, Pair: pair("Transfers", "Owner Contributions")},
}

// NewManagerGLMapper returns a mapper over ManagerGLRules.
func NewManagerGLMapper() *Mapper {
	return NewMapper(ManagerGLRules)
}

// NewReportAccountMapper returns a mapper over ReportAccountRules.
func NewReportAccountMapper() *Mapper {
	return NewMapper(ReportAccountRules)
}
