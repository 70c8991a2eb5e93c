package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/hyperjump/lookalike/internal/features"
	"github.com/hyperjump/lookalike/internal/lookalike"
	"github.com/hyperjump/lookalike/internal/models"
	"github.com/hyperjump/lookalike/internal/similarity"
)

var categories = []string{"Books", "Clothing", "Electronics", "Home Decor"}

func joinedRows(customers, perCustomer int) []*models.JoinedRecord {
	rows := make([]*models.JoinedRecord, 0, customers*perCustomer)
	for i := 0; i < customers; i++ {
		id := fmt.Sprintf("C%05d", i)
		for j := 0; j < perCustomer; j++ {
			v := float64((i*31+j*17)%500) + 1
			rows = append(rows, &models.JoinedRecord{
				Transaction: &models.Transaction{CustomerID: id, TotalValue: &v},
				Product:     &models.Product{Category: categories[(i+j)%len(categories)]},
			})
		}
	}
	return rows
}

func BenchmarkBuildFeatures(b *testing.B) {
	rows := joinedRows(1000, 5)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = features.Build(rows)
	}
}

func BenchmarkMatrixSequential(b *testing.B) {
	set := features.Build(joinedRows(1000, 5))
	engine := similarity.NewEngine(similarity.WithWorkers(1))
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.Compute(ctx, set)
	}
}

func BenchmarkMatrixParallel(b *testing.B) {
	set := features.Build(joinedRows(1000, 5))
	engine := similarity.NewEngine()
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = engine.Compute(ctx, set)
	}
}

func BenchmarkExtractAll(b *testing.B) {
	set := features.Build(joinedRows(1000, 5))
	m, err := similarity.NewEngine().Compute(context.Background(), set)
	if err != nil {
		b.Fatal(err)
	}
	e := lookalike.NewExtractor(3)
	ids := m.IDs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Extract(m, ids)
	}
}
