package models

// SpendingFeatureCount is the number of spending features that precede the category proportions.
const SpendingFeatureCount = 3

// FeatureVector is the per-customer numeric summary built from joined rows.
// CategoryProportions is aligned with the vocabulary the vector was built against.
type FeatureVector struct {
	CustomerID          string    `json:"customer_id"`
	TotalSpent          float64   `json:"total_spent"`
	NumTransactions     int       `json:"num_transactions"`
	AvgTransactionValue float64   `json:"avg_transaction_value"`
	CategoryProportions []float64 `json:"category_proportions"`
}

// Values returns the flat vector: total_spent, num_transactions, avg_transaction_value,
// then one proportion per vocabulary category.
func (f *FeatureVector) Values() []float64 {
	out := make([]float64, 0, SpendingFeatureCount+len(f.CategoryProportions))
	out = append(out, f.TotalSpent, float64(f.NumTransactions), f.AvgTransactionValue)
	return append(out, f.CategoryProportions...)
}

// FeatureSet is the full population of feature vectors sharing one vocabulary.
type FeatureSet struct {
	// Vocabulary is the sorted list of distinct non-empty categories.
	Vocabulary []string
	// Vectors are ordered by ascending customer ID.
	Vectors []*FeatureVector
}

// Dimensions returns the width of every vector in the set.
func (s *FeatureSet) Dimensions() int {
	return SpendingFeatureCount + len(s.Vocabulary)
}

// FeatureNames returns the column names matching Values().
func (s *FeatureSet) FeatureNames() []string {
	names := []string{"total_spent", "num_transactions", "avg_transaction_value"}
	return append(names, s.Vocabulary...)
}
