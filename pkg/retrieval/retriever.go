package retrieval

import (
	"context"

	"robotics-tutor-be/pkg/store"
)

// Retriever finds knowledge-base chunks relevant to a query. Implementations
// must return chunks ordered by descending similarity and must not return
// chunks below the threshold.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int, threshold float64) ([]store.RetrievedChunk, error)
}
