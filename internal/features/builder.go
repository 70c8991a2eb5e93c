// Package features aggregates joined transaction rows into per-customer feature vectors.
package features

import (
	"sort"

	"github.com/hyperjump/lookalike/internal/models"
)

// group accumulates one customer's rows.
type group struct {
	rows        int
	validTotals int
	totalSpent  float64
	categories  map[string]int
}

// Vocabulary returns the sorted distinct non-empty categories across rows.
func Vocabulary(rows []*models.JoinedRecord) []string {
	seen := make(map[string]struct{})
	for _, r := range rows {
		if c := r.Category(); c != "" {
			seen[c] = struct{}{}
		}
	}
	vocab := make([]string, 0, len(seen))
	for c := range seen {
		vocab = append(vocab, c)
	}
	sort.Strings(vocab)
	return vocab
}

// Build returns one feature vector per customer ID present in rows, ordered by ascending ID.
//
// num_transactions counts every row. Missing total values are excluded: total_spent sums the
// valid values and avg_transaction_value divides by their count (0 when there are none).
// Category proportions divide by num_transactions, so rows with an unknown product lower
// every proportion.
func Build(rows []*models.JoinedRecord) *models.FeatureSet {
	vocab := Vocabulary(rows)
	groups := make(map[string]*group)
	for _, r := range rows {
		id := r.CustomerID()
		g, ok := groups[id]
		if !ok {
			g = &group{categories: make(map[string]int)}
			groups[id] = g
		}
		g.rows++
		if v := r.Transaction.TotalValue; v != nil {
			g.validTotals++
			g.totalSpent += *v
		}
		if c := r.Category(); c != "" {
			g.categories[c]++
		}
	}

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	vectors := make([]*models.FeatureVector, 0, len(ids))
	for _, id := range ids {
		vectors = append(vectors, reduce(id, groups[id], vocab))
	}
	return &models.FeatureSet{Vocabulary: vocab, Vectors: vectors}
}

func reduce(id string, g *group, vocab []string) *models.FeatureVector {
	v := &models.FeatureVector{
		CustomerID:          id,
		TotalSpent:          g.totalSpent,
		NumTransactions:     g.rows,
		CategoryProportions: make([]float64, len(vocab)),
	}
	if g.validTotals > 0 {
		v.AvgTransactionValue = g.totalSpent / float64(g.validTotals)
	}
	for i, c := range vocab {
		v.CategoryProportions[i] = float64(g.categories[c]) / float64(g.rows)
	}
	return v
}
