package embedding

// Task types passed through to providers that distinguish query and
// document embeddings. Providers that don't support the hint ignore it.
const (
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

// EmbeddingResponseEmbedding holds the raw vector.
type EmbeddingResponseEmbedding struct {
	Values []float32 `json:"values"`
}

// EmbeddingResponse is the provider-agnostic embedding result. The shape
// mirrors the Gemini embedContent payload, which the other providers map
// their output onto.
type EmbeddingResponse struct {
	Embedding EmbeddingResponseEmbedding `json:"embedding"`
}

// EmbeddingProvider turns text into a vector suitable for cosine search
// over the knowledge base.
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}
