package response

import (
	"context"
	"fmt"
	"log"
	"strings"

	"robotics-tutor-be/pkg/llm"
	"robotics-tutor-be/pkg/rag/confidence"
	"robotics-tutor-be/pkg/rag/intent"
)

// shortInputThreshold is the trimmed length below which a query is answered
// with a clarification request instead of entering intent dispatch.
const shortInputThreshold = 10

// canned maps intents that never reach the language model to their reply
// builders. Every label absent from this table delegates to the model.
var canned = map[intent.Label]func(query string) string{
	intent.Greeting:      func(string) string { return GreetingReply },
	intent.Feedback:      func(string) string { return GreetingReply },
	intent.TutorRequest:  func(q string) string { return fmt.Sprintf(explainTemplate, q) },
	intent.Clarification: func(q string) string { return fmt.Sprintf(explainTemplate, q) },
	intent.ExampleRequest: func(q string) string {
		return fmt.Sprintf(exampleTemplate, q)
	},
	intent.Comparison: func(q string) string { return fmt.Sprintf(comparisonTemplate, q) },
	intent.Help:       func(string) string { return HelpReply },
	intent.Quit:       func(string) string { return FarewellReply },
}

// Generator produces the raw answer for a turn, either from the canned table
// or by delegating to the language model with the assembled context.
type Generator struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewGenerator(llmProvider llm.LLMProvider, logger *log.Logger) *Generator {
	return &Generator{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Generate never returns an error: a failing model call degrades to a fixed
// apologetic reply so the turn always completes.
func (g *Generator) Generate(ctx context.Context, query, contextBlock string, intentData *intent.Result, retrieval confidence.Level) string {
	trimmed := strings.TrimSpace(query)
	if len([]rune(trimmed)) < shortInputThreshold {
		return g.handleShortInput(query, trimmed)
	}

	if build, ok := canned[intentData.PrimaryIntent]; ok {
		return build(query)
	}

	promptText := contextBlock + "\n\nBased on the above context, please answer the following query: " + query

	answer, err := g.llmProvider.Generate(ctx, promptText)
	if err != nil {
		g.logger.Printf("[ERROR] LLM generation failed: %v", err)
		return ProcessingFallback
	}

	// Weakly supported answers carry an explicit caveat.
	if retrieval == confidence.Low {
		answer += GeneralKnowledgeCaveat
	}

	return answer
}

// handleShortInput echoes the query back and asks for elaboration, phrased
// as a question when the input itself was one.
func (g *Generator) handleShortInput(raw, trimmed string) string {
	if strings.HasSuffix(trimmed, "?") {
		return fmt.Sprintf(shortQuestionTemplate, raw)
	}
	return fmt.Sprintf(shortStatementTemplate, raw, raw, raw)
}
