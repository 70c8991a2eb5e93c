package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperjump/lookalike/internal/models"
)

func amount(v float64) *float64 { return &v }

func row(customer, category string, total *float64) *models.JoinedRecord {
	r := &models.JoinedRecord{
		Transaction: &models.Transaction{CustomerID: customer, TotalValue: total},
		Customer:    &models.Customer{ID: customer},
	}
	if category != "" {
		r.Product = &models.Product{ID: "P-" + category, Category: category}
	}
	return r
}

func vectorByID(t *testing.T, set *models.FeatureSet, id string) *models.FeatureVector {
	t.Helper()
	for _, v := range set.Vectors {
		if v.CustomerID == id {
			return v
		}
	}
	t.Fatalf("no vector for %s", id)
	return nil
}

func TestBuild_singleElectronicsTransaction(t *testing.T) {
	rows := []*models.JoinedRecord{
		row("C1", "Electronics", amount(100)),
		row("C2", "Books", amount(20)),
		row("C2", "Clothing", amount(40)),
	}
	set := Build(rows)
	require.Equal(t, []string{"Books", "Clothing", "Electronics"}, set.Vocabulary)

	v := vectorByID(t, set, "C1")
	assert.Equal(t, 1, v.NumTransactions)
	assert.InDelta(t, 100, v.TotalSpent, 1e-9)
	assert.InDelta(t, 100, v.AvgTransactionValue, 1e-9)
	assert.Equal(t, []float64{0, 0, 1}, v.CategoryProportions)
}

func TestBuild_dimensionsAndOrder(t *testing.T) {
	rows := []*models.JoinedRecord{
		row("C3", "Books", amount(10)),
		row("C1", "Home Decor", amount(10)),
		row("C2", "", amount(10)),
	}
	set := Build(rows)
	require.Len(t, set.Vectors, 3)
	assert.Equal(t, "C1", set.Vectors[0].CustomerID)
	assert.Equal(t, "C3", set.Vectors[2].CustomerID)
	for _, v := range set.Vectors {
		assert.Len(t, v.Values(), set.Dimensions())
	}
}

func TestBuild_proportionsSumToOne(t *testing.T) {
	rows := []*models.JoinedRecord{
		row("C1", "Books", amount(1)),
		row("C1", "Books", amount(1)),
		row("C1", "Electronics", amount(1)),
		row("C2", "", amount(5)), // unknown product only
	}
	set := Build(rows)

	sum := func(v *models.FeatureVector) float64 {
		var s float64
		for _, p := range v.CategoryProportions {
			s += p
		}
		return s
	}
	c1 := vectorByID(t, set, "C1")
	assert.InDelta(t, 1.0, sum(c1), 1e-9)
	assert.InDelta(t, 2.0/3.0, c1.CategoryProportions[0], 1e-12)
	assert.InDelta(t, 0.0, sum(vectorByID(t, set, "C2")), 1e-12)
}

func TestBuild_unknownCategoryCountsInDenominator(t *testing.T) {
	rows := []*models.JoinedRecord{
		row("C1", "Books", amount(10)),
		row("C1", "", amount(30)),
	}
	set := Build(rows)
	v := vectorByID(t, set, "C1")
	assert.Equal(t, 2, v.NumTransactions)
	assert.InDelta(t, 0.5, v.CategoryProportions[0], 1e-12)
}

func TestBuild_missingTotalValueExcluded(t *testing.T) {
	rows := []*models.JoinedRecord{
		row("C1", "Books", amount(10)),
		row("C1", "Books", nil),
		row("C1", "Books", amount(30)),
		row("C2", "Books", nil),
	}
	set := Build(rows)

	c1 := vectorByID(t, set, "C1")
	assert.Equal(t, 3, c1.NumTransactions)
	assert.InDelta(t, 40, c1.TotalSpent, 1e-9)
	assert.InDelta(t, 20, c1.AvgTransactionValue, 1e-9)

	c2 := vectorByID(t, set, "C2")
	assert.Equal(t, 1, c2.NumTransactions)
	assert.Zero(t, c2.TotalSpent)
	assert.Zero(t, c2.AvgTransactionValue)
}

func TestBuild_identicalHistoriesIdenticalVectors(t *testing.T) {
	rows := []*models.JoinedRecord{
		row("A", "Books", amount(12.5)),
		row("A", "Electronics", amount(99)),
		row("B", "Books", amount(12.5)),
		row("B", "Electronics", amount(99)),
	}
	set := Build(rows)
	assert.Equal(t, vectorByID(t, set, "A").Values(), vectorByID(t, set, "B").Values())
}

func TestBuild_orphanCustomerStillAggregated(t *testing.T) {
	r := row("C9", "Books", amount(5))
	r.Customer = nil
	set := Build([]*models.JoinedRecord{r})
	require.Len(t, set.Vectors, 1)
	assert.Equal(t, "C9", set.Vectors[0].CustomerID)
}

func TestBuild_empty(t *testing.T) {
	set := Build(nil)
	assert.Empty(t, set.Vectors)
	assert.Empty(t, set.Vocabulary)
	assert.Equal(t, models.SpendingFeatureCount, set.Dimensions())
}
