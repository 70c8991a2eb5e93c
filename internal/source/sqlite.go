package source

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/lookalike/internal/config"
	"github.com/hyperjump/lookalike/internal/models"
)

// SQLiteLoader reads the three tables from a SQLite database opened read-only.
// Table columns use the same names as the CSV headers. DATE and TIMESTAMP columns
// arrive as RFC 3339 text.
type SQLiteLoader struct {
	Path   string
	Tables config.SheetConfig
}

// Load queries every row of the customers, products, and transactions tables.
func (l *SQLiteLoader) Load(ctx context.Context) (*models.Dataset, error) {
	if _, err := os.Stat(l.Path); err != nil {
		return nil, fmt.Errorf("open database %s: %w", l.Path, err)
	}
	db, err := sql.Open("sqlite3", readOnlyDSN(l.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	names := []string{l.Tables.Customers, l.Tables.Products, l.Tables.Transactions}
	tables := make([]*table, 0, len(names))
	for _, name := range names {
		t, err := l.readTable(ctx, db, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return decodeDataset(tables[0], tables[1], tables[2])
}

// readOnlyDSN builds a read-only SQLite URI for path, escaping characters such as '?' and '#'.
func readOnlyDSN(path string) string {
	escaped := strings.ReplaceAll(url.PathEscape(path), "%2F", "/")
	return "file:" + escaped + "?mode=ro"
}

// cellText renders a scanned column value. The driver returns the zero time for DATE and
// TIMESTAMP text it cannot parse, which is treated as missing.
func cellText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

// Paths returns the database path.
func (l *SQLiteLoader) Paths() []string {
	return []string{l.Path}
}

func (l *SQLiteLoader) readTable(ctx context.Context, db *sql.DB, name string) (*table, error) {
	query := fmt.Sprintf(`SELECT * FROM "%s"`, strings.ReplaceAll(name, `"`, `""`))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query table %q in %s: %w", name, l.Path, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns of %q: %w", name, err)
	}
	records := [][]string{header}
	values := make([]any, len(header))
	dest := make([]any, len(header))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %q: %w", name, err)
		}
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = cellText(v)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %q: %w", name, err)
	}
	return newTable(l.Path+"#"+name, records)
}
