package models

// Lookalike is one similar customer with its similarity score.
type Lookalike struct {
	CustomerID string  `json:"customer_id"`
	Score      float64 `json:"score"`
}

// LookalikeEntry is the ranked lookalike list for one query customer.
// Lookalikes are sorted by descending score, ties by ascending customer ID.
type LookalikeEntry struct {
	CustomerID string      `json:"customer_id"`
	Lookalikes []Lookalike `json:"lookalikes"`
}

// Result is the output of one pipeline run.
type Result struct {
	RunID      string           `json:"run_id"`
	Entries    []LookalikeEntry `json:"entries"`
	MeanScore  float64          `json:"mean_score"`
	Customers  int              `json:"customers"`
	Categories []string         `json:"categories"`
	// Skipped lists query IDs that had no feature vector.
	Skipped []string `json:"skipped,omitempty"`
}
