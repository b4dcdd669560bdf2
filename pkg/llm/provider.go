package llm

import "context"

// Message is one turn of a chat exchange. Role is "system", "user" or
// "assistant"; providers map other role names onto these.
type Message struct {
	Role    string
	Content string
}

// Options carries per-call generation parameters. Zero values mean
// "use the provider default".
type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string
}

// Option mutates Options. Calls accept a variadic list so callers only
// spell out what they want to override.
type Option func(*Options)

func WithTemperature(temp float64) Option {
	return func(o *Options) { o.Temperature = temp }
}

func WithMaxTokens(n int) Option {
	return func(o *Options) { o.MaxTokens = n }
}

func WithModel(model string) Option {
	return func(o *Options) { o.Model = model }
}

// LLMProvider is the answer-generation backend of the pipeline.
type LLMProvider interface {
	// Chat sends a multi-turn history and returns the assistant reply.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate answers a single standalone prompt.
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
