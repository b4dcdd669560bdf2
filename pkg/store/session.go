package store

// RetrievedChunk is a span of indexed source text returned by the retrieval
// engine, ranked by similarity to the query.
type RetrievedChunk struct {
	Content         string  `json:"content"`
	URL             string  `json:"url"`
	Position        int     `json:"position"`
	SimilarityScore float64 `json:"similarity_score"`
}

// ConversationTurn is a single message in a session transcript.
// Timestamp is unix seconds, matching the wire format of the history endpoint.
type ConversationTurn struct {
	Role      string   `json:"role"` // "user" | "assistant"
	Content   string   `json:"content"`
	Timestamp float64  `json:"timestamp"`
	Sources   []string `json:"sources,omitempty"` // assistant turns only
}

// Session is the bounded transcript held in memory for a caller-supplied id.
type Session struct {
	ID    string             `json:"id"`
	Turns []ConversationTurn `json:"turns"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// MaxTurns bounds a transcript to 5 user + 5 assistant messages.
	// Oldest turns are evicted first.
	MaxTurns = 10

	// HistoryWindow is how many prior turns feed the prompt context.
	HistoryWindow = 5
)
