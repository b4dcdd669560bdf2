package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"robotics-tutor-be/internal/config"
	"robotics-tutor-be/pkg/database"
	"robotics-tutor-be/pkg/embedding"
	"robotics-tutor-be/pkg/embedding/jina"
	retrievalpg "robotics-tutor-be/pkg/retrieval/pgvector"
	"robotics-tutor-be/pkg/utils"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Seeds the document_chunks table from a directory of markdown files. Each
// file becomes one logical document, URL-addressed by its relative path.
func main() {
	dir := flag.String("dir", "./knowledge", "directory of markdown files to ingest")
	baseURL := flag.String("base-url", "https://docs.example.com", "URL prefix recorded as chunk source")
	flag.Parse()

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	if err := db.AutoMigrate(&retrievalpg.DocumentChunk{}); err != nil {
		log.Fatalf("Failed to migrate document_chunks: %v", err)
	}

	var embedder embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embedder = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	case "jina":
		embedder = jina.NewJinaProvider(cfg.Ai.JinaAPIKey)
	default:
		embedder = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("Failed to read directory %s: %v", *dir, err)
	}

	totalChunks := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(*dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Printf("[ERROR] Failed to read %s: %v", path, err)
			continue
		}

		sourceURL := *baseURL + "/" + strings.TrimSuffix(entry.Name(), ".md")

		// ChunkSize: 1500 chars (approx 375 tokens), Overlap: 200 chars
		chunks := utils.SplitText(string(raw), 1500, 200)
		log.Printf("[INFO] %s split into %d chunks", entry.Name(), len(chunks))

		// Replace any previous rows for this document
		if err := db.Where("source_url = ?", sourceURL).Delete(&retrievalpg.DocumentChunk{}).Error; err != nil {
			log.Printf("[ERROR] Failed to delete old chunks for %s: %v", sourceURL, err)
			continue
		}

		for i, chunk := range chunks {
			res, err := embedder.Generate(chunk, embedding.TaskRetrievalDocument)
			if err != nil {
				log.Fatalf("Failed to embed chunk %d of %s: %v", i, entry.Name(), err)
			}

			row := retrievalpg.DocumentChunk{
				Id:             uuid.New(),
				Content:        chunk,
				EmbeddingValue: pgvector.NewVector(res.Embedding.Values),
				SourceURL:      sourceURL,
				Position:       i,
				CreatedAt:      time.Now(),
			}
			if err := db.Create(&row).Error; err != nil {
				log.Fatalf("Failed to insert chunk %d of %s: %v", i, entry.Name(), err)
			}
			totalChunks++
		}
	}

	log.Printf("[SUCCESS] Seeded %d chunks from %s", totalChunks, *dir)
}
