package ingest

import (
	"io"

	"github.com/rentledger/reconciler/internal/application/usecase/property"
	"github.com/rentledger/reconciler/internal/domain/entity"
)

// ParseRentPlatformCSV reads the rent collection platform export. Only
// completed payments load; pending and reversed rows would double-count.
func ParseRentPlatformCSV(r io.Reader, resolver *property.Resolver) ([]*entity.RentPlatformTransaction, int, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, 0, err
	}

	var transactions []*entity.RentPlatformTransaction
	skipped := 0
	for _, row := range rows {
		if row["Type"] != "Payment" || row["Status"] != "Completed" {
			skipped++
			continue
		}

		tx := entity.NewRentPlatformTransaction(
			nil,
			row["Completed On"],
			CleanAmount(row["Credit Amt"]),
		)
		tx.Type = row["Type"]
		tx.Memo = row["Memo"]
		tx.Status = row["Status"]
		tx.InitiatedOn = row["Initiated On"]
		tx.DebitAmount = CleanAmount(row["Debit Amt"])
		tx.InitiatedBy = row["Initiated By"]
		tx.PropertyAddress = row["Property"]
		tx.Unit = row["Unit"]
		tx.TransactionID = row["TransactionID"]
		tx.ReferenceID = row["ReferenceID"]

		if p := resolver.ResolveAddress(tx.PropertyAddress); p != nil {
			tx.PropertyID = &p.ID
		}

		transactions = append(transactions, tx)
	}
	return transactions, skipped, nil
}
