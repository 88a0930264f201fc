package llm

import (
	"context"
	"fmt"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// ClaudeProvider implements Provider for Anthropic Claude.
type ClaudeProvider struct {
	client *anthropic.Client
	model  string
}

// NewClaude creates a Claude provider.
func NewClaude(apiKey, model string) *ClaudeProvider {
	return &ClaudeProvider{
		client: anthropic.NewClient(apiKey),
		model:  model,
	}
}

func (p *ClaudeProvider) Name() string {
	return "anthropic/" + p.model
}

func (p *ClaudeProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	// Anthropic takes the system prompt out of band; fold any system
	// turns into it and keep user/assistant turns in order.
	var system string
	reqMessages := make([]anthropic.Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == "system" {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		role := anthropic.RoleUser
		if m.Role == "assistant" {
			role = anthropic.RoleAssistant
		}
		reqMessages = append(reqMessages, anthropic.Message{
			Role:    role,
			Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(m.Content)},
		})
	}

	resp, err := p.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(p.model),
		Messages:  reqMessages,
		MaxTokens: 4096,
		System:    system,
	})
	if err != nil {
		return "", fmt.Errorf("claude complete: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("claude complete: empty response")
	}

	return resp.Content[0].GetText(), nil
}
