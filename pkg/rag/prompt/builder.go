package prompt

import (
	"fmt"
	"strings"

	"robotics-tutor-be/pkg/rag/intent"
	"robotics-tutor-be/pkg/store"
)

// previewLimit caps how much of a history turn or chunk is quoted verbatim.
const previewLimit = 200

// Builder assembles the prompt-ready context block for one turn: prior
// conversation, the current query with its detected intent, and the top
// retrieved chunks, in that fixed order.
type Builder struct {
	history    []store.ConversationTurn
	query      string
	intentData *intent.Result
	chunks     []store.RetrievedChunk
}

func NewBuilder(history []store.ConversationTurn, query string, intentData *intent.Result, chunks []store.RetrievedChunk) *Builder {
	return &Builder{
		history:    history,
		query:      query,
		intentData: intentData,
		chunks:     chunks,
	}
}

// Build is deterministic for identical inputs and has no side effects.
func (b *Builder) Build() string {
	var parts []string

	if len(b.history) > 0 {
		parts = append(parts, "## Previous Conversation Context:")
		history := b.history
		if len(history) > store.HistoryWindow {
			history = history[len(history)-store.HistoryWindow:]
		}
		for _, turn := range history {
			parts = append(parts, fmt.Sprintf("  %s: %s", strings.ToUpper(turn.Role), truncate(turn.Content, previewLimit)))
		}
		parts = append(parts, "")
	}

	parts = append(parts, fmt.Sprintf("## Current User Query: %s", b.query))
	parts = append(parts, fmt.Sprintf("## Detected Intent: %s", b.intentData.PrimaryIntent))

	if len(b.chunks) > 0 {
		parts = append(parts, "\n## Relevant Information Found:")
		chunks := b.chunks
		if len(chunks) > 3 {
			chunks = chunks[:3]
		}
		for i, chunk := range chunks {
			parts = append(parts, fmt.Sprintf("### [%d] %s", i+1, truncate(chunk.Content, previewLimit)))
			parts = append(parts, fmt.Sprintf("    Source: %s", chunk.URL))
			parts = append(parts, fmt.Sprintf("    Relevance: %.3f\n", chunk.SimilarityScore))
		}
	}

	return strings.Join(parts, "\n")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
