package llm

import "context"

// Message is one conversation turn sent to a provider.
type Message struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

// Provider is a single chat-completion endpoint.
type Provider interface {
	Name() string
	Complete(ctx context.Context, messages []Message) (string, error)
}
