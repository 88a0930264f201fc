package llm

import (
	"context"

	"github.com/jamesstrohm55/ALFRED/internal/logger"
)

// ModelFailureReply is returned when both providers fail.
const ModelFailureReply = "Sorry, I couldn't process your request with any available models."

// FallbackClient queries a primary provider and retries once against a
// secondary provider when the primary fails. It never returns an error:
// a double failure degrades to a fixed apology string.
type FallbackClient struct {
	primary   Provider
	secondary Provider
}

// NewFallbackClient creates a fallback client. secondary may be nil.
func NewFallbackClient(primary, secondary Provider) *FallbackClient {
	return &FallbackClient{primary: primary, secondary: secondary}
}

// Query sends the message list to the primary provider, falling back to
// the secondary on any failure.
func (c *FallbackClient) Query(ctx context.Context, messages []Message) string {
	reply, err := c.primary.Complete(ctx, messages)
	if err == nil {
		return reply
	}
	logger.Warn("Primary LLM (%s) failed: %v", c.primary.Name(), err)

	if c.secondary == nil {
		return ModelFailureReply
	}

	reply, err = c.secondary.Complete(ctx, messages)
	if err != nil {
		logger.Error("Fallback LLM (%s) also failed: %v", c.secondary.Name(), err)
		return ModelFailureReply
	}

	logger.Info("Successfully used fallback LLM (%s)", c.secondary.Name())
	return reply
}
