package outbound

import "context"

// AIService abstracts the AI provider used for embeddings and base
// ingredient derivation
type AIService interface {
	// ComputeEmbeddings returns one vector per input text, in input order,
	// from a single batched provider call. Empty input returns an empty
	// result without any network traffic.
	ComputeEmbeddings(ctx context.Context, texts []string) ([][]float64, error)

	// DeriveBaseIngredients maps raw product names to their core food
	// concept ("Sainsbury's Whole Milk 2L" -> "whole milk"), one result per
	// input, in input order. Used only by the offline backfill.
	DeriveBaseIngredients(ctx context.Context, names []string) ([]string, error)
}
