package embedding

import "context"

// EmbeddingProvider defines the contract for any embedding backend
type EmbeddingProvider interface {
	// Generate creates a vector embedding for the given text
	Generate(ctx context.Context, text string) ([]float32, error)
}
