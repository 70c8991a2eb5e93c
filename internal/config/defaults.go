package config

// Input formats.
const (
	FormatCSV    = "csv"
	FormatXLSX   = "xlsx"
	FormatSQLite = "sqlite"
)

// Output formats.
const (
	OutputCSV  = "csv"
	OutputJSON = "json"
)

const (
	// DefaultTopK is the number of lookalikes kept per query customer.
	DefaultTopK = 3
	// DefaultQueryCount is the number of customers lookalikes are generated for.
	DefaultQueryCount = 20
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Input.Format == "" {
		cfg.Input.Format = FormatCSV
	}
	if cfg.Input.CustomersPath == "" {
		cfg.Input.CustomersPath = "Customers.csv"
	}
	if cfg.Input.ProductsPath == "" {
		cfg.Input.ProductsPath = "Products.csv"
	}
	if cfg.Input.TransactionsPath == "" {
		cfg.Input.TransactionsPath = "Transactions.csv"
	}
	if cfg.Input.WorkbookPath == "" {
		cfg.Input.WorkbookPath = "data.xlsx"
	}
	if cfg.Input.DatabasePath == "" {
		cfg.Input.DatabasePath = "data.db"
	}
	if cfg.Input.Delimiter == "" {
		cfg.Input.Delimiter = ","
	}
	if cfg.Input.Sheets.Customers == "" {
		cfg.Input.Sheets.Customers = "Customers"
	}
	if cfg.Input.Sheets.Products == "" {
		cfg.Input.Sheets.Products = "Products"
	}
	if cfg.Input.Sheets.Transactions == "" {
		cfg.Input.Sheets.Transactions = "Transactions"
	}
	if cfg.Output.Path == "" {
		cfg.Output.Path = "Lookalike.csv"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = OutputCSV
	}
	if cfg.Lookalike.TopK == 0 {
		cfg.Lookalike.TopK = DefaultTopK
	}
	if cfg.Watch.DebounceMs == 0 {
		cfg.Watch.DebounceMs = 400
	}
}
