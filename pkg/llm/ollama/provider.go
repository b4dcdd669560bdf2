package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"robotics-tutor-be/pkg/llm"
)

const (
	defaultTemperature = 0.7

	// Answer generation against the textbook corpus can take a while on
	// CPU-only hosts, hence the generous default.
	defaultTimeout = 120 * time.Second
)

// OllamaProvider talks to a local Ollama server over its /api/chat
// endpoint.
type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

var _ llm.LLMProvider = (*OllamaProvider)(nil)

func NewOllamaProvider(baseURL, modelName string, timeout time.Duration) *OllamaProvider {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &OllamaProvider{
		BaseURL:   baseURL,
		ModelName: modelName,
		Client:    &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model    string      `json:"model"`
	Messages []chatTurn  `json:"messages"`
	Stream   bool        `json:"stream"`
	Options  *genOptions `json:"options,omitempty"`
}

type chatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type genOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type chatResponse struct {
	Message chatTurn `json:"message"`
	Done    bool     `json:"done"`
}

func (o *OllamaProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := &llm.Options{Temperature: defaultTemperature, Model: o.ModelName}
	for _, apply := range options {
		apply(opts)
	}

	turns := make([]chatTurn, len(history))
	for i, msg := range history {
		role := msg.Role
		// Gemini-style transcripts use "model" for the assistant role.
		if role == "model" {
			role = "assistant"
		}
		turns[i] = chatTurn{Role: role, Content: msg.Content}
	}

	payload := chatRequest{
		Model:    opts.Model,
		Messages: turns,
		Stream:   false,
		Options:  &genOptions{Temperature: opts.Temperature},
	}
	if opts.MaxTokens > 0 {
		payload.Options.NumPredict = opts.MaxTokens
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama error: status %d, body: %s", resp.StatusCode, string(raw))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	return parsed.Message.Content, nil
}

// Generate wraps the prompt as a single user turn. Ollama's chat endpoint
// handles the single-turn case fine, so there is no separate completion path.
func (o *OllamaProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return o.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}
