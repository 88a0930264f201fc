package brain

import (
	"context"
	"strings"

	"github.com/jamesstrohm55/ALFRED/internal/llm"
	"github.com/jamesstrohm55/ALFRED/internal/logger"
)

const errorReply = "Sorry, I encountered an error while processing your request."

// Handler processes a command and reports whether it produced a reply.
type Handler interface {
	Handle(ctx context.Context, text string) (string, bool)
}

// CommandRunner executes fuzzy-matched OS commands.
type CommandRunner interface {
	Run(text string) (string, bool)
}

// route gates a service handler behind its trigger keywords.
type route struct {
	keywords []string
	handler  Handler
}

// Brain routes user input through memory commands, keyword-gated
// service handlers, OS automation, and finally the LLM.
type Brain struct {
	memory       Handler
	routes       []route
	automation   CommandRunner
	llm          LLMClient
	history      *History
	systemPrompt string
}

// LLMClient is the fallback LLM collaborator contract.
type LLMClient interface {
	Query(ctx context.Context, messages []llm.Message) string
}

// Option configures a Brain.
type Option func(*Brain)

// WithMemoryHandler sets the memory command handler.
func WithMemoryHandler(h Handler) Option {
	return func(b *Brain) { b.memory = h }
}

// WithService registers a keyword-gated service handler. Services are
// consulted in registration order; the first whose keywords match owns
// the input.
func WithService(h Handler, keywords ...string) Option {
	return func(b *Brain) { b.routes = append(b.routes, route{keywords: keywords, handler: h}) }
}

// WithAutomation sets the OS command runner.
func WithAutomation(r CommandRunner) Option {
	return func(b *Brain) { b.automation = r }
}

// WithLLM sets the fallback LLM client.
func WithLLM(c LLMClient) Option {
	return func(b *Brain) { b.llm = c }
}

// WithHistory sets the conversation history.
func WithHistory(h *History) Option {
	return func(b *Brain) { b.history = h }
}

// New creates a Brain with the given system prompt and collaborators.
func New(systemPrompt string, opts ...Option) *Brain {
	b := &Brain{systemPrompt: systemPrompt}
	for _, opt := range opts {
		opt(b)
	}
	if b.history == nil {
		b.history = NewHistory(DefaultMaxHistory)
	}
	return b
}

// Respond processes user input and returns the reply. The chain is:
// memory commands, keyword-gated services, OS automation, then the LLM
// with conversation context. The first non-empty reply wins. Any panic
// is recovered into a fixed apology.
func (b *Brain) Respond(ctx context.Context, text string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic while processing input: %v", r)
			reply = errorReply
		}
	}()

	lower := strings.ToLower(strings.TrimSpace(text))

	if b.memory != nil {
		if response, ok := b.memory.Handle(ctx, lower); ok {
			return response
		}
	}

	for _, rt := range b.routes {
		if !matchesAny(lower, rt.keywords) {
			continue
		}
		if response, ok := rt.handler.Handle(ctx, lower); ok {
			return response
		}
		// The matching service owns the keyword space; a declined
		// command falls through to automation, not to other services.
		break
	}

	if b.automation != nil {
		if response, ok := b.automation.Run(lower); ok {
			return response
		}
	}

	return b.queryWithContext(ctx, text)
}

// queryWithContext sends the input plus conversation history to the LLM
// and records both sides of the exchange.
func (b *Brain) queryWithContext(ctx context.Context, text string) string {
	if b.llm == nil {
		return errorReply
	}

	b.history.Add("user", text)
	response := b.llm.Query(ctx, b.history.Messages(b.systemPrompt))
	b.history.Add("assistant", response)
	return response
}

func matchesAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
