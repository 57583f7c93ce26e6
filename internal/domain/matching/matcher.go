package matching

// InventoryVector is an inventory entry prepared for matching: the base
// ingredient name plus its precomputed embedding
type InventoryVector struct {
	Name      string
	Embedding []float64
}

// Result is the matching decision for one input vector. Matched is true
// when the best inventory candidate scored at or above the threshold.
// With no inventory to compare against, BestScore is -1.
type Result struct {
	Matched       bool
	Match         string
	BestCandidate string
	BestScore     float64
}

// FindBestMatches scores every input vector against every inventory vector
// and applies the threshold. One result per input, same order. Pure
// function over precomputed vectors; no I/O.
func FindBestMatches(vectors [][]float64, inventory []InventoryVector, threshold float64) []Result {
	results := make([]Result, len(vectors))

	for i, vector := range vectors {
		best := Result{BestScore: -1}
		for _, candidate := range inventory {
			score := CosineSimilarity(vector, candidate.Embedding)
			if score > best.BestScore {
				best.BestScore = score
				best.BestCandidate = candidate.Name
			}
		}
		if best.BestCandidate != "" && best.BestScore >= threshold {
			best.Matched = true
			best.Match = best.BestCandidate
		}
		results[i] = best
	}

	return results
}
