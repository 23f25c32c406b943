package domain

// EmbeddingDimensions is the fixed vector length for résumé and job embeddings.
const EmbeddingDimensions = 1536

// ValidEmbedding reports whether v can be stored in a vector(1536) column.
func ValidEmbedding(v []float32) bool {
	return len(v) == EmbeddingDimensions
}
