package prompt

import (
	"strings"
	"testing"

	"robotics-tutor-be/pkg/rag/intent"
	"robotics-tutor-be/pkg/store"
)

func detect(t *testing.T, query string) *intent.Result {
	t.Helper()
	return intent.NewClassifier().Detect(query)
}

func TestBuildMinimal(t *testing.T) {
	query := "what is a humanoid robot"
	got := NewBuilder(nil, query, detect(t, query), nil).Build()

	if !strings.Contains(got, "## Current User Query: what is a humanoid robot") {
		t.Errorf("missing query section:\n%s", got)
	}
	if !strings.Contains(got, "## Detected Intent: ") {
		t.Errorf("missing intent section:\n%s", got)
	}
	if strings.Contains(got, "## Previous Conversation Context:") {
		t.Errorf("unexpected history section with no history:\n%s", got)
	}
	if strings.Contains(got, "## Relevant Information Found:") {
		t.Errorf("unexpected chunk section with no chunks:\n%s", got)
	}
}

func TestBuildWithHistoryAndChunks(t *testing.T) {
	history := []store.ConversationTurn{
		{Role: store.RoleUser, Content: "tell me about ROS"},
		{Role: store.RoleAssistant, Content: "ROS is a robotics middleware."},
	}
	chunks := []store.RetrievedChunk{
		{Content: "ROS 2 uses DDS for transport.", URL: "https://docs/ros2", SimilarityScore: 0.91},
	}
	query := "how do nodes communicate"

	got := NewBuilder(history, query, detect(t, query), chunks).Build()

	if !strings.Contains(got, "## Previous Conversation Context:") {
		t.Fatalf("missing history section:\n%s", got)
	}
	if !strings.Contains(got, "  USER: tell me about ROS") {
		t.Errorf("history line not uppercased role format:\n%s", got)
	}
	if !strings.Contains(got, "### [1] ROS 2 uses DDS for transport.") {
		t.Errorf("missing chunk entry:\n%s", got)
	}
	if !strings.Contains(got, "    Source: https://docs/ros2") {
		t.Errorf("missing chunk source line:\n%s", got)
	}
	if !strings.Contains(got, "    Relevance: 0.910") {
		t.Errorf("missing three-decimal relevance:\n%s", got)
	}
}

func TestBuildTruncatesLongContent(t *testing.T) {
	long := strings.Repeat("x", 500)
	history := []store.ConversationTurn{{Role: store.RoleUser, Content: long}}
	query := "anything here"

	got := NewBuilder(history, query, detect(t, query), nil).Build()

	want := strings.Repeat("x", 200) + "..."
	if !strings.Contains(got, want) {
		t.Errorf("history content not truncated to 200 chars with ellipsis")
	}
	if strings.Contains(got, strings.Repeat("x", 201)) {
		t.Errorf("found more than 200 consecutive chars, truncation failed")
	}
}

func TestBuildCapsHistoryAndChunks(t *testing.T) {
	var history []store.ConversationTurn
	for i := 0; i < 8; i++ {
		history = append(history, store.ConversationTurn{Role: store.RoleUser, Content: "turn"})
	}
	var chunks []store.RetrievedChunk
	for i := 0; i < 5; i++ {
		chunks = append(chunks, store.RetrievedChunk{Content: "chunk", URL: "u", SimilarityScore: 0.5})
	}
	query := "sample question"

	got := NewBuilder(history, query, detect(t, query), chunks).Build()

	if n := strings.Count(got, "  USER: turn"); n != store.HistoryWindow {
		t.Errorf("history lines = %d, want %d", n, store.HistoryWindow)
	}
	if strings.Contains(got, "### [4]") {
		t.Errorf("more than 3 chunks rendered:\n%s", got)
	}
	if !strings.Contains(got, "### [3]") {
		t.Errorf("expected 3 chunks rendered:\n%s", got)
	}
}

func TestBuildDeterministic(t *testing.T) {
	chunks := []store.RetrievedChunk{{Content: "c", URL: "u", SimilarityScore: 0.4}}
	query := "repeatable build"
	res := detect(t, query)

	a := NewBuilder(nil, query, res, chunks).Build()
	b := NewBuilder(nil, query, res, chunks).Build()
	if a != b {
		t.Errorf("Build is not deterministic:\n%s\n---\n%s", a, b)
	}
}
