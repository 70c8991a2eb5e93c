package source

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/hyperjump/lookalike/internal/models"
)

// Column names of the input tables.
const (
	ColCustomerID      = "CustomerID"
	ColSignupDate      = "SignupDate"
	ColProductID       = "ProductID"
	ColCategory        = "Category"
	ColTransactionID   = "TransactionID"
	ColTransactionDate = "TransactionDate"
	ColTotalValue      = "TotalValue"
)

// table is a header plus string rows, independent of the file format it came from.
type table struct {
	name   string // path, path#sheet, or path#table; used in errors
	header []string
	rows   [][]string
}

func newTable(name string, records [][]string) (*table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: header row required", name)
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return &table{name: name, header: header, rows: records[1:]}, nil
}

// columns maps each header name to its index and checks that required ones exist.
func (t *table) columns(required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(t.header))
	for i, h := range t.header {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%s: %w %q", t.name, ErrMissingColumn, col)
		}
	}
	return idx, nil
}

// attributes collects every non-key column of row.
func (t *table) attributes(row []string, keys ...string) map[string]string {
	var attrs map[string]string
	for i, h := range t.header {
		if h == "" || slices.Contains(keys, h) {
			continue
		}
		if attrs == nil {
			attrs = make(map[string]string)
		}
		attrs[h] = cell(row, i)
	}
	return attrs
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func decodeCustomers(t *table) ([]*models.Customer, error) {
	keys := []string{ColCustomerID, ColSignupDate}
	col, err := t.columns(keys...)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Customer, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, &models.Customer{
			ID:         cell(row, col[ColCustomerID]),
			SignupDate: ParseDate(cell(row, col[ColSignupDate])),
			Attributes: t.attributes(row, keys...),
		})
	}
	return out, nil
}

func decodeProducts(t *table) ([]*models.Product, error) {
	keys := []string{ColProductID, ColCategory}
	col, err := t.columns(keys...)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Product, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, &models.Product{
			ID:         cell(row, col[ColProductID]),
			Category:   cell(row, col[ColCategory]),
			Attributes: t.attributes(row, keys...),
		})
	}
	return out, nil
}

func decodeTransactions(t *table) ([]*models.Transaction, error) {
	keys := []string{ColTransactionID, ColCustomerID, ColProductID, ColTransactionDate, ColTotalValue}
	col, err := t.columns(keys...)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Transaction, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, &models.Transaction{
			ID:         cell(row, col[ColTransactionID]),
			CustomerID: cell(row, col[ColCustomerID]),
			ProductID:  cell(row, col[ColProductID]),
			Date:       ParseTimestamp(cell(row, col[ColTransactionDate])),
			TotalValue: parseAmount(cell(row, col[ColTotalValue])),
			Attributes: t.attributes(row, keys...),
		})
	}
	return out, nil
}

// parseAmount returns nil for empty, non-numeric, and non-finite values.
func parseAmount(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
