package huggingface

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"robotics-tutor-be/pkg/llm"
)

func TestChatSendsOpenAIWireFormat(t *testing.T) {
	var captured []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"choices":[{"message":{"content":"the reply"}}]}`)
	}))
	defer srv.Close()

	p := NewHuggingFaceProvider("key", srv.URL, "test-model", 0)
	got, err := p.Chat(context.Background(), []llm.Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hi"},
	})
	if err != nil {
		t.Fatalf("Chat() error: %v", err)
	}
	if got != "the reply" {
		t.Errorf("Chat() = %q, want the reply", got)
	}

	// The endpoint requires lowercase role/content keys.
	var wire struct {
		Model    string `json:"model"`
		Messages []map[string]string
	}
	if err := json.Unmarshal(captured, &wire); err != nil {
		t.Fatalf("request body not JSON: %v", err)
	}
	if wire.Model != "test-model" {
		t.Errorf("model = %q, want test-model", wire.Model)
	}
	if len(wire.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(wire.Messages))
	}
	if wire.Messages[1]["role"] != "user" || wire.Messages[1]["content"] != "hi" {
		t.Errorf("lowercase role/content keys missing: %s", captured)
	}
	for _, msg := range wire.Messages {
		if _, bad := msg["Role"]; bad {
			t.Errorf("capitalized Role key on the wire: %s", captured)
		}
		if _, bad := msg["Content"]; bad {
			t.Errorf("capitalized Content key on the wire: %s", captured)
		}
	}
}

func TestNewHuggingFaceProviderTimeout(t *testing.T) {
	p := NewHuggingFaceProvider("key", "", "m", 45*time.Second)
	if p.client.Timeout != 45*time.Second {
		t.Errorf("client timeout = %v, want 45s", p.client.Timeout)
	}

	p = NewHuggingFaceProvider("key", "", "m", 0)
	if p.client.Timeout != defaultTimeout {
		t.Errorf("client timeout = %v, want the default", p.client.Timeout)
	}
	if p.baseURL != defaultRouterURL {
		t.Errorf("baseURL = %q, want the router default", p.baseURL)
	}
}
