package memory

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// Handler answers memory commands (remember, recall, forget, list, search).
// Input is expected to be lowercased and trimmed by the dispatcher.
type Handler struct {
	store *Store
}

// NewHandler creates a memory command handler.
func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Handle processes a memory command. The second return value is false
// when the text is not a memory command.
func (h *Handler) Handle(ctx context.Context, text string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))

	if strings.HasPrefix(lower, "remember that") {
		fact := strings.TrimPrefix(lower, "remember that")
		if key, value, ok := strings.Cut(fact, " is "); ok {
			key = strings.TrimSpace(key)
			value = strings.TrimSpace(value)
			h.store.Remember(ctx, key, value)
			keyForReply := strings.ReplaceAll(key, "my ", "your ")
			return fmt.Sprintf("I'll remember that %s is %s.", keyForReply, value), true
		}
		return "Please phrase it like: 'Remember that [key] is [value]'.", true
	}

	if strings.Contains(lower, "what do you remember about") || strings.Contains(lower, "what do you know about") {
		key := strings.ReplaceAll(lower, "what do you remember about", "")
		key = strings.ReplaceAll(key, "what do you know about", "")
		key = strings.TrimSpace(key)
		keyForReply := strings.ReplaceAll(key, "my ", "your ")
		if value, ok := h.store.Recall(key); ok {
			return fmt.Sprintf("%s is %s.", capitalize(keyForReply), value), true
		}
		return fmt.Sprintf("I don't remember anything about %s.", keyForReply), true
	}

	if strings.HasPrefix(lower, "forget") {
		key := strings.TrimSpace(strings.TrimPrefix(lower, "forget"))
		if h.store.Forget(key) {
			return fmt.Sprintf("I've forgotten everything about %s.", key), true
		}
		return fmt.Sprintf("I don't remember anything about %s to forget.", key), true
	}

	if strings.HasPrefix(lower, "search your memory for") {
		query := strings.TrimSpace(strings.TrimPrefix(lower, "search your memory for"))
		matches := h.store.SemanticSearch(ctx, query, 3)
		if len(matches) == 0 {
			return fmt.Sprintf("I couldn't find anything related to %s.", query), true
		}
		var b strings.Builder
		b.WriteString("Here's what I found:")
		for _, m := range matches {
			b.WriteString("\n- " + m)
		}
		return b.String(), true
	}

	if strings.Contains(lower, "what do you remember") || strings.Contains(lower, "list everything you remember") {
		facts := h.store.List()
		if len(facts) == 0 {
			return "I don't have anything stored yet.", true
		}
		lines := make([]string, len(facts))
		for i, f := range facts {
			lines[i] = fmt.Sprintf("%s: %s", f.Key, f.Value)
		}
		return "Here is what I remember:\n" + strings.Join(lines, "\n"), true
	}

	return "", false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
