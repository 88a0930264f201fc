package brain

import (
	"sync"

	"github.com/jamesstrohm55/ALFRED/internal/llm"
)

// DefaultMaxHistory is the number of conversation exchanges kept as
// LLM context.
const DefaultMaxHistory = 10

// History is a thread-safe rolling window of conversation messages.
// It holds at most maxHistory exchanges (two messages each), dropping
// the oldest message once the cap is exceeded.
type History struct {
	mu         sync.Mutex
	messages   []llm.Message
	maxHistory int
}

// NewHistory creates a conversation history with the given exchange cap.
func NewHistory(maxHistory int) *History {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &History{maxHistory: maxHistory}
}

// Add appends a message and trims the oldest entries past the cap.
func (h *History) Add(role, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.messages = append(h.messages, llm.Message{Role: role, Content: content})
	for len(h.messages) > h.maxHistory*2 {
		h.messages = h.messages[1:]
	}
}

// Messages returns the system prompt followed by a copy of the current
// conversation window.
func (h *History) Messages(systemPrompt string) []llm.Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]llm.Message, 0, len(h.messages)+1)
	out = append(out, llm.Message{Role: "system", Content: systemPrompt})
	out = append(out, h.messages...)
	return out
}

// Clear drops all stored messages.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}

// Len reports the number of stored messages.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.messages)
}
