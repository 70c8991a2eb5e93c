package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/lookalike/internal/config"
	"github.com/hyperjump/lookalike/internal/models"
)

// WorkbookLoader reads the three tables from sheets of one XLSX workbook.
// Cells are read unformatted; numeric date cells are converted from Excel serial dates.
type WorkbookLoader struct {
	Path   string
	Sheets config.SheetConfig
}

// Load opens the workbook and decodes the customers, products, and transactions sheets.
func (l *WorkbookLoader) Load(ctx context.Context) (*models.Dataset, error) {
	f, err := excelize.OpenFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", l.Path, err)
	}
	defer f.Close()

	sheets := []string{l.Sheets.Customers, l.Sheets.Products, l.Sheets.Transactions}
	tables := make([]*table, 0, len(sheets))
	for _, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("get rows for sheet %q in %s: %w", sheet, l.Path, err)
		}
		t, err := newTable(l.Path+"#"+sheet, rows)
		if err != nil {
			return nil, err
		}
		convertSerialDates(t)
		tables = append(tables, t)
	}
	return decodeDataset(tables[0], tables[1], tables[2])
}

// Paths returns the workbook path.
func (l *WorkbookLoader) Paths() []string {
	return []string{l.Path}
}

// convertSerialDates rewrites numeric date cells as RFC 3339 text.
func convertSerialDates(t *table) {
	for i, h := range t.header {
		if h != ColSignupDate && h != ColTransactionDate {
			continue
		}
		for _, row := range t.rows {
			if i >= len(row) {
				continue
			}
			serial, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
			if err != nil {
				continue
			}
			ts, err := excelize.ExcelDateToTime(serial, false)
			if err != nil {
				continue
			}
			row[i] = ts.Round(time.Second).Format(time.RFC3339)
		}
	}
}
