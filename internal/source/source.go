// Package source loads the customers, products, and transactions tables from CSV files,
// an XLSX workbook, or a SQLite database.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyperjump/lookalike/internal/config"
	"github.com/hyperjump/lookalike/internal/models"
)

var (
	// ErrMissingColumn is returned when a table lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrUnknownFormat is returned by New for an unsupported input format.
	ErrUnknownFormat = errors.New("unknown input format")
)

// Loader loads the three raw record sets of one run.
type Loader interface {
	Load(ctx context.Context) (*models.Dataset, error)
	// Paths returns the files the loader reads, for watching.
	Paths() []string
}

// New creates a loader for the configured input format.
// Supported formats: "csv" (default), "xlsx", "sqlite".
func New(cfg config.InputConfig) (Loader, error) {
	switch cfg.Format {
	case config.FormatCSV, "":
		delim := ','
		if r := []rune(cfg.Delimiter); len(r) == 1 {
			delim = r[0]
		}
		return &CSVLoader{
			CustomersPath:    cfg.CustomersPath,
			ProductsPath:     cfg.ProductsPath,
			TransactionsPath: cfg.TransactionsPath,
			Delimiter:        delim,
		}, nil
	case config.FormatXLSX:
		return &WorkbookLoader{Path: cfg.WorkbookPath, Sheets: cfg.Sheets}, nil
	case config.FormatSQLite:
		return &SQLiteLoader{Path: cfg.DatabasePath, Tables: cfg.Sheets}, nil
	default:
		return nil, fmt.Errorf("%w: %s (supported: csv, xlsx, sqlite)", ErrUnknownFormat, cfg.Format)
	}
}

// decodeDataset turns the three raw tables into typed records.
func decodeDataset(customers, products, transactions *table) (*models.Dataset, error) {
	cs, err := decodeCustomers(customers)
	if err != nil {
		return nil, err
	}
	ps, err := decodeProducts(products)
	if err != nil {
		return nil, err
	}
	ts, err := decodeTransactions(transactions)
	if err != nil {
		return nil, err
	}
	return &models.Dataset{Customers: cs, Products: ps, Transactions: ts}, nil
}
