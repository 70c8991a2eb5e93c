// Package pipeline runs the lookalike batch: load, join, build features, compute similarity,
// extract lookalikes, and write the output file.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/lookalike/internal/config"
	"github.com/hyperjump/lookalike/internal/features"
	"github.com/hyperjump/lookalike/internal/join"
	"github.com/hyperjump/lookalike/internal/lookalike"
	"github.com/hyperjump/lookalike/internal/models"
	"github.com/hyperjump/lookalike/internal/output"
	"github.com/hyperjump/lookalike/internal/similarity"
	"github.com/hyperjump/lookalike/internal/source"
)

// Pipeline wires one loader, similarity engine, and extractor together.
type Pipeline struct {
	loader     source.Loader
	engine     *similarity.Engine
	extractor  *lookalike.Extractor
	queryIDs   []string
	queryCount int
	logger     *zap.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the logger for stage progress. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithQuery sets explicit query IDs, or the first count customers when ids is empty.
func WithQuery(ids []string, count int) PipelineOption {
	return func(p *Pipeline) {
		p.queryIDs = ids
		p.queryCount = count
	}
}

// New creates a pipeline. k <= 0 uses lookalike.DefaultK.
func New(loader source.Loader, engine *similarity.Engine, k int, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		loader:     loader,
		engine:     engine,
		extractor:  lookalike.NewExtractor(k),
		queryCount: config.DefaultQueryCount,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FromConfig builds the loader, engine, and pipeline described by cfg.
func FromConfig(cfg *config.Config, logger *zap.Logger) (*Pipeline, error) {
	loader, err := source.New(cfg.Input)
	if err != nil {
		return nil, err
	}
	engine := similarity.NewEngine(
		similarity.WithWorkers(cfg.Similarity.Workers),
		similarity.WithLogger(logger),
	)
	return New(loader, engine, cfg.Lookalike.TopK,
		WithLogger(logger),
		WithQuery(cfg.Lookalike.QueryIDs, cfg.Lookalike.QueryCountOrDefault()),
	), nil
}

// Inputs returns the files the pipeline reads.
func (p *Pipeline) Inputs() []string {
	return p.loader.Paths()
}

// Run executes every stage and returns the result. Each stage completes before the next starts.
func (p *Pipeline) Run(ctx context.Context) (*models.Result, error) {
	runID := uuid.New().String()
	logger := p.logger.With(zap.String("run_id", runID))
	start := time.Now()

	stageStart := time.Now()
	ds, err := p.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load input: %w", err)
	}
	logger.Info("input loaded",
		zap.Int("customers", len(ds.Customers)),
		zap.Int("products", len(ds.Products)),
		zap.Int("transactions", len(ds.Transactions)),
		zap.Duration("duration", time.Since(stageStart)),
	)

	rows, stats := join.Join(ds)
	if stats.OrphanProducts > 0 || stats.OrphanCustomers > 0 {
		logger.Warn("transactions with unmatched keys kept",
			zap.Int("orphan_products", stats.OrphanProducts),
			zap.Int("orphan_customers", stats.OrphanCustomers),
		)
	}
	if stats.NegativeTotals > 0 {
		logger.Warn("transactions with negative total value kept",
			zap.Int("negative_totals", stats.NegativeTotals),
		)
	}

	stageStart = time.Now()
	set := features.Build(rows)
	logger.Info("features built",
		zap.Int("customers", len(set.Vectors)),
		zap.Strings("features", set.FeatureNames()),
		zap.Int("dimensions", set.Dimensions()),
		zap.Duration("duration", time.Since(stageStart)),
	)

	stageStart = time.Now()
	matrix, err := p.engine.Compute(ctx, set)
	if err != nil {
		return nil, err
	}
	logger.Info("similarity matrix computed",
		zap.Int("customers", matrix.Size()),
		zap.Duration("duration", time.Since(stageStart)),
	)

	query := lookalike.QuerySet(matrix.IDs(), p.queryIDs, p.queryCount)
	entries, skipped := p.extractor.Extract(matrix, query)
	if len(skipped) > 0 {
		logger.Warn("unknown query customers skipped", zap.Strings("customer_ids", skipped))
	}
	result := &models.Result{
		RunID:      runID,
		Entries:    entries,
		MeanScore:  lookalike.MeanScore(entries),
		Customers:  matrix.Size(),
		Categories: set.Vocabulary,
		Skipped:    skipped,
	}
	logger.Info("lookalikes extracted",
		zap.Int("query_customers", len(entries)),
		zap.Int("k", p.extractor.K()),
		zap.Float64("mean_score", result.MeanScore),
		zap.Duration("total_duration", time.Since(start)),
	)
	return result, nil
}

// RunAndWrite runs the pipeline and writes the result to path.
func (p *Pipeline) RunAndWrite(ctx context.Context, path string, format output.Format) (*models.Result, error) {
	result, err := p.Run(ctx)
	if err != nil {
		return nil, err
	}
	if err := output.WriteFile(path, format, result); err != nil {
		return nil, err
	}
	p.logger.Info("output written",
		zap.String("run_id", result.RunID),
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("rows", len(result.Entries)),
	)
	return result, nil
}
