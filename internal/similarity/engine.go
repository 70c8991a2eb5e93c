package similarity

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hyperjump/lookalike/internal/models"
)

// ErrDimensionMismatch is returned when feature vectors differ in width.
var ErrDimensionMismatch = errors.New("feature dimension mismatch")

// Engine scales a feature set and fills the all-pairs similarity matrix.
type Engine struct {
	workers int
	logger  *zap.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithWorkers bounds the number of rows filled concurrently. Values <= 0 use GOMAXPROCS.
func WithWorkers(n int) EngineOption {
	return func(e *Engine) { e.workers = n }
}

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates a similarity engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers <= 0 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	return e
}

// Scaled holds the min-max scaled vectors of a feature set, aligned with its customer IDs.
type Scaled struct {
	IDs     []string
	Vectors [][]float64
}

// Scale fits min-max scaling over the whole population and applies it to every vector.
func Scale(set *models.FeatureSet) (*Scaled, error) {
	ids := make([]string, len(set.Vectors))
	raw := make([][]float64, len(set.Vectors))
	dim := set.Dimensions()
	for i, v := range set.Vectors {
		ids[i] = v.CustomerID
		raw[i] = v.Values()
		if len(raw[i]) != dim {
			return nil, fmt.Errorf("%w: customer %s has %d features, expected %d", ErrDimensionMismatch, v.CustomerID, len(raw[i]), dim)
		}
	}
	scaler, err := FitMinMax(raw)
	if err != nil {
		return nil, err
	}
	return &Scaled{IDs: ids, Vectors: scaler.TransformAll(raw)}, nil
}

// Compute scales set and returns its cosine similarity matrix. Each row task fills the cells
// (i, j) and (j, i) for j >= i, so tasks never write the same cell and sim(i, j) == sim(j, i)
// exactly.
func (e *Engine) Compute(ctx context.Context, set *models.FeatureSet) (*Matrix, error) {
	scaled, err := Scale(set)
	if err != nil {
		return nil, err
	}
	return e.ComputeScaled(ctx, scaled)
}

// ComputeScaled fills the similarity matrix for already scaled vectors.
func (e *Engine) ComputeScaled(ctx context.Context, scaled *Scaled) (*Matrix, error) {
	n := len(scaled.IDs)
	m := newMatrix(scaled.IDs)
	norms := make([]float64, n)
	for i, v := range scaled.Vectors {
		norms[i] = L2Norm(v)
	}

	e.logger.Debug("similarity matrix fill",
		zap.Int("customers", n),
		zap.Int("workers", e.workers),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			vi := scaled.Vectors[i]
			for j := i; j < n; j++ {
				s := cosine(vi, scaled.Vectors[j], norms[i], norms[j])
				m.set(i, j, s)
				m.set(j, i, s)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("similarity matrix: %w", err)
	}
	return m, nil
}
