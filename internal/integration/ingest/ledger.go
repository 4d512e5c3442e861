package ingest

import (
	"io"

	"github.com/rentledger/reconciler/internal/application/usecase/property"
	"github.com/rentledger/reconciler/internal/domain/entity"
)

// LedgerFilterFields are the filter-rule keys matched by containment for
// ledger rows. Everything else matches exactly.
var LedgerFilterFields = []string{"name", "category", "sub_category", "notes", "details"}

// LedgerResult carries the parsed ledger rows plus the distinct property
// names seen, used to seed the property table.
type LedgerResult struct {
	Transactions  []*entity.LedgerTransaction
	PropertyNames []string
}

// ParseLedgerCSV reads the owner's ledger export. Rows matching an exclusion
// rule are kept but flagged; reporting still wants to see them.
func ParseLedgerCSV(r io.Reader, rules *RuleSet, resolver *property.Resolver) (*LedgerResult, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	result := &LedgerResult{}
	seenNames := make(map[string]bool)

	for _, row := range rows {
		propertyName := row["Property"]
		if propertyName != "" && !seenNames[propertyName] {
			seenNames[propertyName] = true
			result.PropertyNames = append(result.PropertyNames, propertyName)
		}

		tx := entity.NewLedgerTransaction(
			nil,
			row["Date"],
			row["Name"],
			row["Category"],
			row["Sub-Category"],
			CleanAmount(row["Amount"]),
		)
		tx.Notes = row["Notes"]
		tx.Details = row["Details"]
		tx.Account = row["Account"]
		tx.DataSource = row["Data Source"]
		if p := resolver.ByName(propertyName); p != nil {
			tx.PropertyID = &p.ID
		}

		if reason, excluded := rules.Evaluate(map[string]string{
			"name":         row["Name"],
			"category":     row["Category"],
			"sub_category": row["Sub-Category"],
			"notes":        row["Notes"],
			"details":      row["Details"],
			"property":     propertyName,
			"amount":       row["Amount"],
			"account":      row["Account"],
		}); excluded {
			tx.Filtered = true
			tx.FilterReason = reason
		}

		result.Transactions = append(result.Transactions, tx)
	}
	return result, nil
}
