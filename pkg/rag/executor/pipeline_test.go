package executor

import (
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"robotics-tutor-be/internal/repository/memory"
	"robotics-tutor-be/pkg/llm"
	"robotics-tutor-be/pkg/rag/confidence"
	"robotics-tutor-be/pkg/rag/intent"
	"robotics-tutor-be/pkg/rag/response"
	"robotics-tutor-be/pkg/rag/session"
	"robotics-tutor-be/pkg/store"
)

type fakeLLM struct {
	reply string
	err   error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.reply, f.err
}

type fakeRetriever struct {
	chunks []store.RetrievedChunk
	err    error
	panics bool
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string, topK int, threshold float64) ([]store.RetrievedChunk, error) {
	if f.panics {
		panic("retriever exploded")
	}
	return f.chunks, f.err
}

func newTestPipeline(r *fakeRetriever, model *fakeLLM) (*Pipeline, *session.Manager) {
	logger := log.New(log.Writer(), "", 0)
	sessions := session.NewManager(memory.NewSessionRepository())
	generator := response.NewGenerator(model, logger)
	p := NewPipeline(intent.NewClassifier(), r, generator, sessions, logger)
	return p, sessions
}

func TestProcessHappyPath(t *testing.T) {
	chunks := []store.RetrievedChunk{
		{Content: "ROS 2 intro", URL: "https://docs/ros", Position: 0, SimilarityScore: 0.92},
		{Content: "ROS 2 nodes", URL: "https://docs/ros", Position: 1, SimilarityScore: 0.88},
		{Content: "Gazebo intro", URL: "https://docs/gazebo", Position: 0, SimilarityScore: 0.75},
	}
	p, sessions := newTestPipeline(&fakeRetriever{chunks: chunks}, &fakeLLM{reply: "model answer"})

	result := p.Process(context.Background(), "robot arm torque ripple at low speed", false, "s1")

	if result.Err != "" {
		t.Fatalf("unexpected error: %s", result.Err)
	}
	if result.Confidence != confidence.High {
		t.Errorf("Confidence = %q, want high", result.Confidence)
	}
	if len(result.MatchedChunks) != 3 {
		t.Errorf("MatchedChunks = %d, want 3", len(result.MatchedChunks))
	}
	// Duplicate URLs collapse, retrieval order kept.
	if len(result.Sources) != 2 || result.Sources[0] != "https://docs/ros" || result.Sources[1] != "https://docs/gazebo" {
		t.Errorf("Sources = %v, want deduplicated in order", result.Sources)
	}
	if !strings.Contains(result.Answer, "model answer") {
		t.Errorf("Answer = %q, want it to carry the model reply", result.Answer)
	}
	// Non-tutor answers cite the top chunks inline.
	if !strings.Contains(result.Answer, "Reference Materials") {
		t.Errorf("non-tutor answer missing injected context: %q", result.Answer)
	}
	if result.QueryTimeMS < 0 {
		t.Errorf("QueryTimeMS = %f, want non-negative", result.QueryTimeMS)
	}

	turns := sessions.Transcript("s1")
	if len(turns) != 2 {
		t.Fatalf("session turns = %d, want 2", len(turns))
	}
	if len(turns[1].Sources) != 2 {
		t.Errorf("assistant turn sources = %v, want 2 deduplicated", turns[1].Sources)
	}
}

func TestProcessTutorMode(t *testing.T) {
	chunks := []store.RetrievedChunk{{Content: "c", URL: "u", SimilarityScore: 0.8}}
	p, _ := newTestPipeline(&fakeRetriever{chunks: chunks}, &fakeLLM{reply: "model answer"})

	result := p.Process(context.Background(), "describe the humanoid balance control stack", true, "")

	if !strings.Contains(result.Answer, "Physical AI & Humanoid Robotics Tutor Response") {
		t.Errorf("tutor mode answer missing template header: %q", result.Answer)
	}
	if strings.Contains(result.Answer, "Reference Materials") {
		t.Errorf("tutor mode must not use the inline injection block: %q", result.Answer)
	}
}

func TestProcessRetrievalFailureDegrades(t *testing.T) {
	p, sessions := newTestPipeline(
		&fakeRetriever{err: errors.New("engine down")},
		&fakeLLM{reply: "model answer"},
	)

	result := p.Process(context.Background(), "robot arm torque ripple at low speed", false, "s1")

	if result.Err == "" || !strings.Contains(result.Err, "engine down") {
		t.Errorf("Err = %q, want retrieval error carried through", result.Err)
	}
	if len(result.MatchedChunks) != 0 {
		t.Errorf("MatchedChunks = %v, want none", result.MatchedChunks)
	}
	if result.Confidence != confidence.Low {
		t.Errorf("Confidence = %q, want low with no chunks", result.Confidence)
	}
	// The turn still completes and the caveat marks the weak support.
	if !strings.Contains(result.Answer, "based on general knowledge") {
		t.Errorf("degraded answer missing caveat: %q", result.Answer)
	}
	if len(sessions.Transcript("s1")) != 2 {
		t.Errorf("degraded turn should still update the session")
	}
}

func TestProcessPanicRecovery(t *testing.T) {
	p, sessions := newTestPipeline(&fakeRetriever{panics: true}, &fakeLLM{})

	result := p.Process(context.Background(), "hello there everyone", false, "s1")

	if result == nil {
		t.Fatal("Process returned nil after panic")
	}
	if result.Answer != "Sorry, I encountered an error processing your request." {
		t.Errorf("Answer = %q, want the fixed error answer", result.Answer)
	}
	if !strings.Contains(result.Err, "retriever exploded") {
		t.Errorf("Err = %q, want panic value", result.Err)
	}
	if result.IntentData == nil || result.IntentData.PrimaryIntent != intent.Greeting {
		t.Errorf("intent not recomputed for error result: %+v", result.IntentData)
	}
	if len(sessions.Transcript("s1")) != 2 {
		t.Errorf("error turn should still update the session")
	}
}

func TestProcessCannedIntentSkipsModel(t *testing.T) {
	p, _ := newTestPipeline(
		&fakeRetriever{},
		&fakeLLM{err: errors.New("model must not be called")},
	)

	result := p.Process(context.Background(), "hello there my good friend", false, "")

	if !strings.Contains(result.Answer, "Hello! I'm your Physical AI") {
		t.Errorf("greeting should use the canned reply: %q", result.Answer)
	}
	if result.Err != "" {
		t.Errorf("unexpected error: %s", result.Err)
	}
}

func TestProcessUsesSessionHistory(t *testing.T) {
	chunks := []store.RetrievedChunk{{Content: "c", URL: "u", SimilarityScore: 0.8}}
	p, sessions := newTestPipeline(&fakeRetriever{chunks: chunks}, &fakeLLM{reply: "second answer"})

	sessions.AppendTurn("s1", "first question about robotics", "first answer", nil)
	result := p.Process(context.Background(), "continue with more detail please", false, "s1")

	if result.Err != "" {
		t.Fatalf("unexpected error: %s", result.Err)
	}
	if turns := sessions.Transcript("s1"); len(turns) != 4 {
		t.Errorf("session turns = %d, want 4 after second exchange", len(turns))
	}
}
