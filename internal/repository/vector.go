package repository

import (
	"github.com/Knnivedh/job-rec/internal/domain"

	"github.com/pgvector/pgvector-go"
)

// toVector maps an embedding to a nullable vector parameter. Anything that
// is not exactly EmbeddingDimensions long is stored as NULL.
func toVector(emb []float32) any {
	if !domain.ValidEmbedding(emb) {
		return nil
	}
	return pgvector.NewVector(emb)
}

func fromVector(v *pgvector.Vector) []float32 {
	if v == nil {
		return nil
	}
	return v.Slice()
}
