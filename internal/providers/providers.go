package providers

import (
	"context"
)

// Message is one prior turn in the generation conversation, threaded back to
// the provider on the correction call.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// Config represents one text-generation request to an LLM provider.
type Config struct {
	Model       string
	Temperature float64
	System      string
	Prompt      string
	History     []Message
}

// Provider defines the interface for an LLM provider.
type Provider interface {
	GenerateText(ctx context.Context, config Config) (string, error)
}
