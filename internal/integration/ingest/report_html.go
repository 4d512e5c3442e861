package ingest

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/rentledger/reconciler/internal/application/usecase/categorymap"
	"github.com/rentledger/reconciler/internal/application/usecase/property"
	"github.com/rentledger/reconciler/internal/domain/entity"
)

// ParseReportHTML reads a manager's income/expense report exported as an
// HTML table. The layout is one account per row with one amount column per
// month; section heading rows switch between income and expense accounts.
func ParseReportHTML(r io.Reader, spec SourceSpec, resolver *property.Resolver) ([]*entity.ReportTransaction, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report html: %w", err)
	}

	tables := collectTables(doc)
	if len(tables) == 0 {
		return nil, fmt.Errorf("report html contains no tables")
	}
	mapper := categorymap.NewReportAccountMapper()

	propertyID := resolveSpecProperty(spec, resolver)
	var transactions []*entity.ReportTransaction

	for _, table := range tables {
		months := monthColumns(table)
		if len(months) == 0 {
			continue
		}

		txType := entity.ReportTransactionIncome
		for _, row := range table {
			if len(row) == 1 {
				// Section heading row.
				heading := strings.ToLower(row[0])
				if strings.Contains(heading, "expense") {
					txType = entity.ReportTransactionExpense
				} else if strings.Contains(heading, "income") {
					txType = entity.ReportTransactionIncome
				}
				continue
			}
			code, name, amounts := splitAccountRow(row)
			if name == "" || strings.EqualFold(name, "Total") {
				continue
			}

			for col, raw := range amounts {
				month, ok := months[col]
				if !ok || raw == "" || raw == "-" {
					continue
				}
				amount := CleanAmount(raw)
				if amount.IsZero() {
					continue
				}
				if txType == entity.ReportTransactionExpense && amount.IsPositive() {
					amount = amount.Neg()
				}

				tx := entity.NewReportTransaction(
					propertyID, spec.Name, name, txType,
					month.Format("2006-01-02"), amount,
				)
				tx.AccountCode = code
				tx.Month = month.Format("Jan 2006")
				pair := mapper.MapOrDefault(name, "")
				tx.Category = pair.Category
				tx.SubCategory = pair.SubCategory
				transactions = append(transactions, tx)
			}
		}
	}
	return transactions, nil
}

func resolveSpecProperty(spec SourceSpec, resolver *property.Resolver) *uuid.UUID {
	if len(spec.Properties) != 1 {
		return nil
	}
	if p := resolver.ResolveBuilding(spec.Properties[0]); p != nil {
		return &p.ID
	}
	return nil
}

// monthColumns maps amount column offsets to the month each one covers,
// from the first header row containing parseable month labels.
func monthColumns(table [][]string) map[int]time.Time {
	for _, row := range table {
		months := make(map[int]time.Time)
		_, _, amounts := splitAccountRow(row)
		for col, label := range amounts {
			if t, ok := parseMonthLabel(label); ok {
				months[col] = t
			}
		}
		if len(months) > 0 {
			return months
		}
	}
	return nil
}

// splitAccountRow separates an account row into its code, name, and amount
// cells. Rows without a numeric-looking code column have the name first.
func splitAccountRow(row []string) (code, name string, amounts map[int]string) {
	amounts = make(map[int]string)
	if len(row) < 2 {
		return "", "", amounts
	}
	start := 1
	name = row[0]
	if looksLikeAccountCode(row[0]) && len(row) > 2 {
		code = row[0]
		name = row[1]
		start = 2
	}
	for i := start; i < len(row); i++ {
		amounts[i-start] = row[i]
	}
	return code, name, amounts
}

func looksLikeAccountCode(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != '-' {
			return false
		}
	}
	return true
}

var monthLabelFormats = []string{"Jan 06", "Jan 2006", "January 2006"}

func parseMonthLabel(label string) (time.Time, bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return time.Time{}, false
	}
	normalized := strings.ToUpper(label[:1]) + strings.ToLower(label[1:])
	for _, format := range monthLabelFormats {
		if t, err := time.Parse(format, normalized); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// collectTables flattens every <table> in the document to rows of trimmed
// cell text.
func collectTables(doc *html.Node) [][][]string {
	var tables [][][]string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			tables = append(tables, tableRows(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return tables
}

func tableRows(table *html.Node) [][]string {
	var rows [][]string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					cells = append(cells, strings.TrimSpace(nodeText(c)))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return rows
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}
