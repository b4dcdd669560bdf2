package response

import (
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"robotics-tutor-be/pkg/llm"
	"robotics-tutor-be/pkg/rag/confidence"
	"robotics-tutor-be/pkg/rag/intent"
)

type fakeLLM struct {
	reply string
	err   error
	calls int
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, nil, opts...)
}

func newTestGenerator(fake *fakeLLM) *Generator {
	return NewGenerator(fake, log.New(log.Writer(), "", 0))
}

func TestGenerateShortInput(t *testing.T) {
	fake := &fakeLLM{reply: "should not be used"}
	g := newTestGenerator(fake)
	res := intent.NewClassifier().Detect("hi")

	got := g.Generate(context.Background(), "hi", "", res, confidence.Low)

	if !strings.Contains(got, "'hi'") {
		t.Errorf("short input not echoed back: %s", got)
	}
	if fake.calls != 0 {
		t.Errorf("LLM called %d times for short input, want 0", fake.calls)
	}
}

func TestGenerateShortQuestion(t *testing.T) {
	g := newTestGenerator(&fakeLLM{})
	res := intent.NewClassifier().Detect("ROS?")

	got := g.Generate(context.Background(), "ROS?", "", res, confidence.Low)

	if !strings.Contains(got, "I received your question") {
		t.Errorf("short question should use the question phrasing: %s", got)
	}
}

func TestGenerateCannedIntents(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		primary  intent.Label
		wantPart string
	}{
		{"greeting", "hello there my friend", intent.Greeting, "Hello! I'm your Physical AI"},
		{"feedback", "thanks, that was really great", intent.Feedback, "Hello! I'm your Physical AI"},
		{"tutor request", "explain inverse kinematics to me", intent.TutorRequest, "I can help explain this concept in detail"},
		{"example request", "show me a sample launch file", intent.ExampleRequest, "Here's an example related to your query"},
		{"comparison", "compare Gazebo versus Isaac Sim", intent.Comparison, "Comparing concepts related to your query"},
		{"help", "I need some guidance and tips", intent.Help, "I'm here to help you learn"},
		{"quit", "goodbye, see you later everyone", intent.Quit, "Thank you for using"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeLLM{reply: "model answer"}
			g := newTestGenerator(fake)
			res := &intent.Result{PrimaryIntent: tt.primary}

			got := g.Generate(context.Background(), tt.query, "", res, confidence.High)

			if !strings.Contains(got, tt.wantPart) {
				t.Errorf("Generate() = %q, want it to contain %q", got, tt.wantPart)
			}
			if fake.calls != 0 {
				t.Errorf("LLM called for canned intent %s", tt.primary)
			}
		})
	}
}

func TestGenerateDelegatesToModel(t *testing.T) {
	fake := &fakeLLM{reply: "a detailed robotics answer"}
	g := newTestGenerator(fake)
	res := &intent.Result{PrimaryIntent: intent.General}

	got := g.Generate(context.Background(), "describe humanoid balance control strategies", "context block", res, confidence.High)

	if got != "a detailed robotics answer" {
		t.Errorf("Generate() = %q, want the model reply", got)
	}
	if fake.calls != 1 {
		t.Errorf("LLM calls = %d, want 1", fake.calls)
	}
}

func TestGenerateAppendsCaveatOnLowRetrieval(t *testing.T) {
	fake := &fakeLLM{reply: "answer"}
	g := newTestGenerator(fake)
	res := &intent.Result{PrimaryIntent: intent.General}

	got := g.Generate(context.Background(), "describe humanoid balance control strategies", "", res, confidence.Low)

	if !strings.HasSuffix(got, GeneralKnowledgeCaveat) {
		t.Errorf("low retrieval confidence answer missing caveat: %q", got)
	}
}

func TestGenerateModelFailureFallsBack(t *testing.T) {
	fake := &fakeLLM{err: errors.New("connection refused")}
	g := newTestGenerator(fake)
	res := &intent.Result{PrimaryIntent: intent.General}

	got := g.Generate(context.Background(), "describe humanoid balance control strategies", "", res, confidence.High)

	if got != ProcessingFallback {
		t.Errorf("Generate() = %q, want fallback %q", got, ProcessingFallback)
	}
}
