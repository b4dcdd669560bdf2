package bootstrap

import (
	"io"
	"log"
	"os"
	"sync/atomic"

	"robotics-tutor-be/internal/config"
	"robotics-tutor-be/internal/controller"
	"robotics-tutor-be/internal/pkg/logger"
	"robotics-tutor-be/internal/repository/memory"
	"robotics-tutor-be/internal/service"
	"robotics-tutor-be/pkg/database"
	"robotics-tutor-be/pkg/embedding"
	"robotics-tutor-be/pkg/embedding/jina"
	"robotics-tutor-be/pkg/llm/factory"
	"robotics-tutor-be/pkg/rag/executor"
	"robotics-tutor-be/pkg/rag/intent"
	"robotics-tutor-be/pkg/rag/response"
	"robotics-tutor-be/pkg/rag/session"
	"robotics-tutor-be/pkg/retrieval"
	"robotics-tutor-be/pkg/retrieval/httpengine"
	pgvectorretriever "robotics-tutor-be/pkg/retrieval/pgvector"

	pktNats "robotics-tutor-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const usageTopicName = "USAGE_EVENTS"

type Container struct {
	// Controllers
	QueryController  controller.IQueryController
	HealthController controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	ready atomic.Bool
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	container := &Container{}

	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	container.Logger = sysLogger

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS mirror for usage events. Optional, the in-process bus keeps
	// working without it.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 3. AI Providers
	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else if cfg.Ai.EmbeddingProvider == "jina" {
		embeddingProvider = jina.NewJinaProvider(cfg.Ai.JinaAPIKey)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Ai.LLMAPIKey,
		cfg.Ai.LLMTimeout,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Retrieval Engine
	var retriever retrieval.Retriever
	if cfg.Retrieval.Engine == "http" {
		retriever = httpengine.NewClient(cfg.Retrieval.BaseURL, cfg.Retrieval.Timeout)
		log.Printf("[INFO] Using Retrieval Engine: HTTP (%s)", cfg.Retrieval.BaseURL)
	} else {
		retriever = pgvectorretriever.NewRetriever(db, embeddingProvider)
		log.Printf("[INFO] Using Retrieval Engine: PGVECTOR")
	}

	// 5. Sessions and Pipeline
	sessionRepo := memory.NewSessionRepository()
	sessions := session.NewManager(sessionRepo)

	pipelineLogger := newPipelineLogger()
	generator := response.NewGenerator(llmProvider, pipelineLogger)
	pipeline := executor.NewPipeline(
		intent.NewClassifier(),
		retriever,
		generator,
		sessions,
		pipelineLogger,
	)

	// 6. Services
	publisherService := service.NewPublisherService(pubSub, usageTopicName, natsPub)
	consumerService := service.NewUsageConsumerService(pubSub, usageTopicName, sysLogger)
	queryService := service.NewQueryService(pipeline, sessions, publisherService)

	// 7. Controllers
	container.QueryController = controller.NewQueryController(queryService)
	container.HealthController = controller.NewHealthController(container.Ready)
	container.ConsumerService = consumerService

	container.ready.Store(true)
	sysLogger.Info("bootstrap", "RAG Agent initialized successfully", nil)

	return container
}

// Ready reports whether wiring completed.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// newPipelineLogger writes pipeline internals to logs/llm_rag.log and the
// console. Falls back to console-only when the file cannot be opened.
func newPipelineLogger() *log.Logger {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		log.Printf("[WARN] Failed to create logs directory: %v", err)
		return log.Default()
	}
	f, err := os.OpenFile("logs/llm_rag.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("[WARN] Failed to open pipeline log file: %v", err)
		return log.Default()
	}
	return log.New(io.MultiWriter(os.Stdout, f), "", log.LstdFlags)
}

// NewDatabase opens the Postgres connection used by the pgvector retrieval
// engine and the knowledge-base seeder.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	return database.NewGormDBFromDSN(cfg.Database.Connection)
}
