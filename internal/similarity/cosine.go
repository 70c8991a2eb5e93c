// Package similarity scales customer feature vectors and computes their pairwise cosine similarity.
package similarity

import "math"

// InnerProduct returns the inner product of two vectors.
func InnerProduct(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}

// L2Norm returns the L2 norm of a vector.
func L2Norm(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// CosineSimilarity returns dot(a, b) / (|a| |b|). A zero-norm vector has similarity 0 with
// every vector, itself included.
func CosineSimilarity(a, b []float64) float64 {
	return cosine(a, b, L2Norm(a), L2Norm(b))
}

func cosine(a, b []float64, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	return InnerProduct(a, b) / (normA * normB)
}
