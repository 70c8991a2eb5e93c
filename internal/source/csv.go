package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/hyperjump/lookalike/internal/models"
)

// CSVLoader reads the three tables from delimiter-separated files with header rows.
type CSVLoader struct {
	CustomersPath    string
	ProductsPath     string
	TransactionsPath string
	Delimiter        rune
}

// Load reads and decodes all three files.
func (l *CSVLoader) Load(ctx context.Context) (*models.Dataset, error) {
	tables := make([]*table, 0, 3)
	for _, path := range l.Paths() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := l.readFile(path)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return decodeDataset(tables[0], tables[1], tables[2])
}

// Paths returns the customers, products, and transactions paths in that order.
func (l *CSVLoader) Paths() []string {
	return []string{l.CustomersPath, l.ProductsPath, l.TransactionsPath}
}

func (l *CSVLoader) readFile(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if l.Delimiter != 0 {
		r.Comma = l.Delimiter
	}
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return newTable(path, records)
}
