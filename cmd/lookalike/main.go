// Package main is the lookalike CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/lookalike/internal/config"
	"github.com/hyperjump/lookalike/internal/output"
	"github.com/hyperjump/lookalike/internal/pipeline"
	"github.com/hyperjump/lookalike/internal/watcher"
	"github.com/hyperjump/lookalike/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/lookalike/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory; if neither exists, defaults are used.
// Returns the config and the path that was actually loaded ("" when defaults were used).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); statErr != nil {
			cfg, err := config.LoadOrDefault(path)
			return cfg, "", err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "run":
		os.Exit(runBatch(os.Args[2:]))
	case "watch":
		os.Exit(runWatch(os.Args[2:]))
	case "version", "--version", "-v":
		fmt.Printf("lookalike version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// runFlags are the flags shared by run and watch. Zero values leave the config untouched.
type runFlags struct {
	configPath   string
	debug        bool
	quiet        bool
	format       string
	customers    string
	products     string
	transactions string
	workbook     string
	database     string
	output       string
	outputFormat string
	k            int
	queryCount   int
	queryIDs     string
	workers      int
}

func newFlagSet(name string) (*flag.FlagSet, *runFlags) {
	f := &runFlags{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", defaultConfigPath, "config file path")
	fs.BoolVar(&f.debug, "debug", false, "enable debug logging")
	fs.BoolVar(&f.quiet, "quiet", false, "do not print the lookalike summary")
	fs.StringVar(&f.format, "format", "", "input format: csv, xlsx, or sqlite")
	fs.StringVar(&f.customers, "customers", "", "customers CSV path")
	fs.StringVar(&f.products, "products", "", "products CSV path")
	fs.StringVar(&f.transactions, "transactions", "", "transactions CSV path")
	fs.StringVar(&f.workbook, "workbook", "", "XLSX workbook path (format xlsx)")
	fs.StringVar(&f.database, "database", "", "SQLite database path (format sqlite)")
	fs.StringVar(&f.output, "output", "", "output file path")
	fs.StringVar(&f.outputFormat, "output-format", "", "output format: csv or json")
	fs.IntVar(&f.k, "k", 0, "lookalikes per customer")
	fs.IntVar(&f.queryCount, "query-count", -1, "first N customers to rank (0 = all)")
	fs.StringVar(&f.queryIDs, "query-ids", "", "comma-separated customer IDs to rank (overrides --query-count)")
	fs.IntVar(&f.workers, "workers", 0, "similarity workers (0 = GOMAXPROCS)")
	return fs, f
}

// apply overrides cfg with every flag that was set, then validates.
func (f *runFlags) apply(cfg *config.Config) error {
	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setString(&cfg.Input.Format, f.format)
	setString(&cfg.Input.CustomersPath, f.customers)
	setString(&cfg.Input.ProductsPath, f.products)
	setString(&cfg.Input.TransactionsPath, f.transactions)
	setString(&cfg.Input.WorkbookPath, f.workbook)
	setString(&cfg.Input.DatabasePath, f.database)
	setString(&cfg.Output.Path, f.output)
	setString(&cfg.Output.Format, f.outputFormat)
	if f.k > 0 {
		cfg.Lookalike.TopK = f.k
	}
	if f.queryCount >= 0 {
		n := f.queryCount
		cfg.Lookalike.QueryCount = &n
	}
	if ids := splitIDs(f.queryIDs); len(ids) > 0 {
		cfg.Lookalike.QueryIDs = ids
	}
	if f.workers > 0 {
		cfg.Similarity.Workers = f.workers
	}
	if f.debug {
		cfg.Debug = true
	}
	return cfg.Validate()
}

// splitIDs splits a comma-separated list, dropping blanks.
func splitIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// setup parses flags, loads config, and builds the logger and pipeline.
func setup(name string, args []string) (*config.Config, *runFlags, *zap.Logger, *pipeline.Pipeline, error) {
	fs, flags := newFlagSet(name)
	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, nil, err
	}
	cfg, resolvedConfigPath, err := loadConfig(flags.configPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := flags.apply(cfg); err != nil {
		return nil, nil, nil, nil, err
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("input_format", cfg.Input.Format),
		zap.Int("top_k", cfg.Lookalike.TopK),
		zap.Bool("debug", cfg.Debug),
	)
	p, err := pipeline.FromConfig(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, nil, nil, err
	}
	return cfg, flags, logger, p, nil
}

func runBatch(args []string) int {
	cfg, flags, logger, p, err := setup("run", args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := p.RunAndWrite(ctx, cfg.Output.Path, output.Format(cfg.Output.Format))
	if err != nil {
		logger.Error("lookalike run failed", zap.Error(err))
		return 1
	}
	if !flags.quiet {
		output.WriteSummary(os.Stdout, result)
	}
	return 0
}

func runWatch(args []string) int {
	cfg, flags, logger, p, err := setup("watch", args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runMu sync.Mutex
	rerun := func() {
		runMu.Lock()
		defer runMu.Unlock()
		result, err := p.RunAndWrite(ctx, cfg.Output.Path, output.Format(cfg.Output.Format))
		if err != nil {
			logger.Warn("lookalike run failed", zap.Error(err))
			return
		}
		if !flags.quiet {
			output.WriteSummary(os.Stdout, result)
		}
	}
	rerun()

	w := watcher.NewWatcher(p.Inputs(), func(path string) {
		logger.Info("input changed, recomputing", zap.String("path", path))
		rerun()
	},
		watcher.WithLogger(logger),
		watcher.WithDebounce(time.Duration(cfg.Watch.DebounceMs)*time.Millisecond),
	)
	if err := w.Start(ctx); err != nil {
		logger.Error("failed to start watcher", zap.Error(err))
		return 1
	}
	defer w.Stop()
	logger.Info("watching inputs", zap.Strings("files", w.Files()))

	<-ctx.Done()
	logger.Info("Shutting down...")
	return 0
}

func printUsage() {
	fmt.Println(`lookalike - Customer lookalike recommendations from transaction history

Usage:
  lookalike run [flags]      Compute lookalikes once and write the output file
  lookalike watch [flags]    Compute lookalikes, then recompute whenever an input changes
  lookalike version          Show version
  lookalike help             Show this help

Flags (run and watch):
  --config string          Config file path (default: ./config.yaml, then /usr/local/etc/lookalike/config.yaml)
  --debug                  Enable debug logging
  --quiet                  Do not print the lookalike summary
  --format string          Input format: csv, xlsx, or sqlite (default: csv)
  --customers string       Customers CSV path (default: Customers.csv)
  --products string        Products CSV path (default: Products.csv)
  --transactions string    Transactions CSV path (default: Transactions.csv)
  --workbook string        XLSX workbook with Customers, Products, Transactions sheets
  --database string        SQLite database with customers, products, transactions tables
  --output string          Output path (default: Lookalike.csv)
  --output-format string   Output format: csv or json (default: csv)
  --k int                  Lookalikes per customer (default: 3)
  --query-count int        Rank the first N customers by ID; 0 ranks all (default: 20)
  --query-ids string       Comma-separated customer IDs to rank (overrides --query-count)
  --workers int            Similarity workers (default: GOMAXPROCS)

Examples:
  lookalike run --customers data/Customers.csv --products data/Products.csv --transactions data/Transactions.csv
  lookalike run --query-count 0 --output out/Lookalike.csv
  lookalike run --format xlsx --workbook data.xlsx --query-ids C0001,C0002
  lookalike watch --config config.yaml`)
}
