package pgvector

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"robotics-tutor-be/pkg/embedding"
	"robotics-tutor-be/pkg/retrieval"
	"robotics-tutor-be/pkg/store"
)

// DocumentChunk is one embedded slice of a knowledge-base document.
type DocumentChunk struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Content        string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"`
	SourceURL      string          `gorm:"type:text;index"`
	Position       int             `gorm:"default:0"` // 0-based chunk index within the document
	Metadata       datatypes.JSON  `gorm:"type:jsonb"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt  `gorm:"index"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}

// Retriever searches document_chunks by cosine similarity, embedding the
// query first.
type Retriever struct {
	db       *gorm.DB
	embedder embedding.EmbeddingProvider
}

var _ retrieval.Retriever = &Retriever{}

func NewRetriever(db *gorm.DB, embedder embedding.EmbeddingProvider) *Retriever {
	return &Retriever{
		db:       db,
		embedder: embedder,
	}
}

func (r *Retriever) Retrieve(ctx context.Context, query string, topK int, threshold float64) ([]store.RetrievedChunk, error) {
	if topK <= 0 {
		topK = 5
	}

	embeddingRes, err := r.embedder.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding_value <=> query_vector) recovers the similarity.
	type result struct {
		DocumentChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embeddingRes.Embedding.Values)

	err = r.db.WithContext(ctx).
		Table("document_chunks").
		Select("document_chunks.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("document_chunks.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(topK).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	chunks := make([]store.RetrievedChunk, len(results))
	for i, res := range results {
		chunks[i] = store.RetrievedChunk{
			Content:         res.Content,
			URL:             res.SourceURL,
			Position:        res.Position,
			SimilarityScore: res.Similarity,
		}
	}
	return chunks, nil
}
