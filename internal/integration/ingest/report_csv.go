package ingest

import (
	"io"
	"strings"

	"github.com/rentledger/reconciler/internal/application/usecase/categorymap"
	"github.com/rentledger/reconciler/internal/application/usecase/property"
	"github.com/rentledger/reconciler/internal/application/usecase/reconcile"
	"github.com/rentledger/reconciler/internal/domain/entity"
)

// ParseReportCSV reads one manager's income/expense report in CSV form.
// When the source covers a single property its name comes from the spec;
// multi-property reports carry a Property column.
func ParseReportCSV(r io.Reader, spec SourceSpec, resolver *property.Resolver) ([]*entity.ReportTransaction, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}
	mapper := categorymap.NewReportAccountMapper()

	transactions := make([]*entity.ReportTransaction, 0, len(rows))
	for _, row := range rows {
		account := row["Account"]
		if account == "" {
			account = row["Account Name"]
		}
		if account == "" {
			continue
		}

		txType := normalizeReportType(row["Type"])
		amount := CleanAmount(row["Amount"])
		// Expenses are stored negative regardless of how the report signs them.
		if txType == entity.ReportTransactionExpense && amount.IsPositive() {
			amount = amount.Neg()
		}

		tx := entity.NewReportTransaction(nil, spec.Name, account, txType, row["Date"], amount)
		tx.AccountCode = row["Account Code"]
		tx.Month = reportMonth(row["Month"], row["Date"])

		pair := mapper.MapOrDefault(account, "")
		tx.Category = pair.Category
		tx.SubCategory = pair.SubCategory

		propertyName := row["Property"]
		if propertyName == "" && len(spec.Properties) == 1 {
			propertyName = spec.Properties[0]
		}
		if p := resolver.ResolveBuilding(propertyName); p != nil {
			tx.PropertyID = &p.ID
		}

		transactions = append(transactions, tx)
	}
	return transactions, nil
}

func normalizeReportType(raw string) entity.ReportTransactionType {
	if strings.EqualFold(strings.TrimSpace(raw), "Income") {
		return entity.ReportTransactionIncome
	}
	return entity.ReportTransactionExpense
}

// reportMonth keeps the report's own month label, deriving one from the
// transaction date when the report has none.
func reportMonth(monthCol, date string) string {
	if monthCol != "" {
		return monthCol
	}
	if t, ok := reconcile.ParseDate(date); ok {
		return t.Format("Jan 2006")
	}
	return ""
}
