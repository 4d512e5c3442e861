package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	domainerror "github.com/rentledger/reconciler/internal/domain/error"
)

// readRows reads a CSV into header-keyed rows. The exports come out of
// spreadsheet tools with a UTF-8 BOM and the occasional ragged line.
func readRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, domainerror.NewIngestError(domainerror.ErrMalformedHeader, "file is empty")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(rows)+2, err)
		}
		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(record) {
				row[h] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
