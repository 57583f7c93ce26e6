// Package matching implements cosine-similarity matching of ingredient
// embeddings against precomputed household inventory embeddings
package matching

import "math"

// CosineSimilarity returns the cosine of the angle between a and b in
// [-1, 1]. Vectors of different lengths are compared over the shorter
// prefix. A zero-norm vector yields 0 rather than NaN.
func CosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}
	return dot / denom
}
