package executor

import (
	"context"
	"fmt"
	"log"
	"time"

	"robotics-tutor-be/pkg/rag/confidence"
	"robotics-tutor-be/pkg/rag/intent"
	"robotics-tutor-be/pkg/rag/prompt"
	"robotics-tutor-be/pkg/rag/response"
	"robotics-tutor-be/pkg/rag/session"
	"robotics-tutor-be/pkg/rag/tutor"
	"robotics-tutor-be/pkg/retrieval"
	"robotics-tutor-be/pkg/store"
)

const (
	// Retrieval fanout per turn.
	topK      = 5
	threshold = 0.3
)

const errorAnswer = "Sorry, I encountered an error processing your request."

// Result is the structured outcome of one pipeline run. Err is empty on the
// happy path; a non-empty Err with a filled Answer means the turn degraded
// but still produced a reply.
type Result struct {
	Answer        string
	Sources       []string
	MatchedChunks []store.RetrievedChunk
	Err           string
	QueryTimeMS   float64
	Confidence    confidence.Level
	IntentData    *intent.Result
}

// Pipeline runs the full turn sequence: intent detection, retrieval, context
// assembly, generation, tutor post-processing and session bookkeeping.
type Pipeline struct {
	classifier *intent.Classifier
	retriever  retrieval.Retriever
	generator  *response.Generator
	sessions   *session.Manager
	logger     *log.Logger
}

func NewPipeline(
	classifier *intent.Classifier,
	retriever retrieval.Retriever,
	generator *response.Generator,
	sessions *session.Manager,
	logger *log.Logger,
) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		retriever:  retriever,
		generator:  generator,
		sessions:   sessions,
		logger:     logger,
	}
}

// Process always returns a Result, never panics. Any failure inside the turn
// degrades to the fixed error answer with the intent recomputed, and the
// session still records the exchange.
func (p *Pipeline) Process(ctx context.Context, query string, tutorMode bool, sessionID string) (result *Result) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Printf("[ERROR] Pipeline panic: %v", r)
			result = &Result{
				Answer:        errorAnswer,
				Sources:       []string{},
				MatchedChunks: []store.RetrievedChunk{},
				Err:           fmt.Sprintf("%v", r),
				QueryTimeMS:   elapsedMS(start),
				Confidence:    confidence.Low,
				IntentData:    p.classifier.Detect(query),
			}
			if sessionID != "" {
				p.sessions.AppendTurn(sessionID, query, errorAnswer, nil)
			}
		}
	}()

	var history []store.ConversationTurn
	if sessionID != "" {
		history = p.sessions.History(sessionID)
	}

	intentData := p.classifier.Detect(query)
	p.logger.Printf("[INFO] Intent detected: primary=%s confidence=%.2f", intentData.PrimaryIntent, intentData.Confidence)

	var errMsg string
	chunks, err := p.retriever.Retrieve(ctx, query, topK, threshold)
	if err != nil {
		// Retrieval failure is recoverable, the turn continues without
		// knowledge-base support.
		p.logger.Printf("[WARN] Retrieval failed: %v", err)
		chunks = nil
		errMsg = err.Error()
	}

	retrievalLevel := confidence.Score(chunks)
	contextBlock := prompt.NewBuilder(history, query, intentData, chunks).Build()

	answer := p.generator.Generate(ctx, query, contextBlock, intentData, retrievalLevel)

	if tutorMode {
		answer = tutor.EnhanceAnswer(answer, query, true, intentData)
		answer = tutor.FormatAnswer(answer, chunks, query, true, intentData)
	} else {
		answer = tutor.InjectContext(answer, chunks)
	}

	sources := dedupSources(chunks)

	if sessionID != "" {
		p.sessions.AppendTurn(sessionID, query, answer, sources)
	}

	queryTimeMS := elapsedMS(start)
	p.logger.Printf("[INFO] Query processed in %.2fms", queryTimeMS)

	if chunks == nil {
		chunks = []store.RetrievedChunk{}
	}

	return &Result{
		Answer:        answer,
		Sources:       sources,
		MatchedChunks: chunks,
		Err:           errMsg,
		QueryTimeMS:   queryTimeMS,
		Confidence:    retrievalLevel,
		IntentData:    intentData,
	}
}

// dedupSources keeps the first occurrence of each URL in retrieval order.
func dedupSources(chunks []store.RetrievedChunk) []string {
	sources := make([]string, 0, len(chunks))
	seen := make(map[string]bool)
	for _, chunk := range chunks {
		if !seen[chunk.URL] {
			seen[chunk.URL] = true
			sources = append(sources, chunk.URL)
		}
	}
	return sources
}

func elapsedMS(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
