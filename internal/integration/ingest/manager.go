package ingest

import (
	"io"

	"github.com/rentledger/reconciler/internal/application/usecase/property"
	"github.com/rentledger/reconciler/internal/domain/entity"
)

// ParseManagerCSV reads the property manager's general ledger export.
// Property links come from building-name resolution; filter rules match the
// export's own column names exactly.
func ParseManagerCSV(r io.Reader, rules *RuleSet, resolver *property.Resolver) ([]*entity.ManagerTransaction, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	transactions := make([]*entity.ManagerTransaction, 0, len(rows))
	for _, row := range rows {
		tx := entity.NewManagerTransaction(
			nil,
			row["buildingName"],
			row["entryDate"],
			row["glAccountName"],
			CleanAmount(row["amount"]),
		)
		tx.UnitNumber = row["unitNumber"]
		tx.CombinedGLAccount = row["combinedGLAccountName"]
		tx.PayeeName = row["payeeName"]
		tx.PostingMemo = row["postingMemo"]
		tx.PropertyStreet = row["addressLine1"]
		tx.PropertyCity = row["city"]
		tx.PropertyState = row["state"]
		tx.PropertyZip = row["zip"]

		if p := resolver.ResolveBuilding(tx.BuildingName); p != nil {
			tx.PropertyID = &p.ID
		}

		if reason, excluded := rules.Evaluate(row); excluded {
			tx.Filtered = true
			tx.FilterReason = reason
		}

		transactions = append(transactions, tx)
	}
	return transactions, nil
}
