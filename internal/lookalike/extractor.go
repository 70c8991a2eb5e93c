// Package lookalike ranks the most similar other customers for each query customer.
package lookalike

import (
	"sort"

	"github.com/hyperjump/lookalike/internal/models"
)

// DefaultK is the number of lookalikes returned per customer.
const DefaultK = 3

// Scores is a square similarity lookup indexed by customer.
type Scores interface {
	Size() int
	ID(i int) string
	Index(id string) (int, bool)
	At(i, j int) float64
}

// Extractor selects the top K lookalikes per query customer.
type Extractor struct {
	k int
}

// NewExtractor creates an extractor returning up to k lookalikes; k <= 0 uses DefaultK.
func NewExtractor(k int) *Extractor {
	if k <= 0 {
		k = DefaultK
	}
	return &Extractor{k: k}
}

// K returns the number of lookalikes kept per customer.
func (e *Extractor) K() int {
	return e.k
}

// Top ranks every other customer against the customer at index i: descending score, equal
// scores by ascending customer ID. The customer itself is never included. Fewer than K
// entries are returned when fewer other customers exist.
func (e *Extractor) Top(s Scores, i int) []models.Lookalike {
	n := s.Size()
	candidates := make([]models.Lookalike, 0, max(n-1, 0))
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		candidates = append(candidates, models.Lookalike{CustomerID: s.ID(j), Score: s.At(i, j)})
	}
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].Score != candidates[b].Score {
			return candidates[a].Score > candidates[b].Score
		}
		return candidates[a].CustomerID < candidates[b].CustomerID
	})
	if len(candidates) > e.k {
		candidates = candidates[:e.k]
	}
	return candidates
}

// Extract builds one entry per query ID, in query order. IDs unknown to s are returned in
// skipped instead of failing the run.
func (e *Extractor) Extract(s Scores, queryIDs []string) (entries []models.LookalikeEntry, skipped []string) {
	entries = make([]models.LookalikeEntry, 0, len(queryIDs))
	for _, id := range queryIDs {
		i, ok := s.Index(id)
		if !ok {
			skipped = append(skipped, id)
			continue
		}
		entries = append(entries, models.LookalikeEntry{CustomerID: id, Lookalikes: e.Top(s, i)})
	}
	return entries, skipped
}

// MeanScore returns the mean of every emitted lookalike score across entries, or 0 when none
// were emitted.
func MeanScore(entries []models.LookalikeEntry) float64 {
	var sum float64
	var n int
	for _, e := range entries {
		for _, l := range e.Lookalikes {
			sum += l.Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// QuerySet resolves which customers get lookalikes. Explicit IDs win, in the given order with
// duplicates dropped. Otherwise the first count customers of ids (already in ascending order)
// are used; count <= 0 selects every customer.
func QuerySet(ids []string, explicit []string, count int) []string {
	if len(explicit) > 0 {
		seen := make(map[string]struct{}, len(explicit))
		out := make([]string, 0, len(explicit))
		for _, id := range explicit {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
		return out
	}
	if count <= 0 || count > len(ids) {
		count = len(ids)
	}
	return append([]string(nil), ids[:count]...)
}
