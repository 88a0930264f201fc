package files

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Handler answers file commands (find, open, delete, list).
type Handler struct {
	assistant *Assistant
	confirm   func(prompt string) bool
}

// NewHandler creates a file command handler. confirm gates destructive
// operations; a nil confirm refuses them.
func NewHandler(assistant *Assistant, confirm func(prompt string) bool) *Handler {
	return &Handler{assistant: assistant, confirm: confirm}
}

// Handle processes a file command, recognized by its leading verb.
func (h *Handler) Handle(ctx context.Context, text string) (string, bool) {
	lower := strings.ToLower(text)

	switch {
	case strings.HasPrefix(lower, "find "):
		filename := strings.TrimSpace(strings.TrimPrefix(lower, "find "))
		results := h.assistant.Find(ctx, filename)
		if len(results) == 0 {
			return "No files found.", true
		}
		// Cap the reply at 5 paths for brevity
		shown := results
		if len(shown) > 5 {
			shown = shown[:5]
		}
		return fmt.Sprintf("I found %d result(s):\n%s", len(results), strings.Join(shown, "\n")), true

	case strings.HasPrefix(lower, "open "):
		target := strings.TrimSpace(strings.TrimPrefix(lower, "open "))
		if _, err := os.Stat(target); err == nil {
			h.assistant.Open(target)
			return "File found and opened", true
		}
		matches := h.assistant.Find(ctx, target)
		if len(matches) == 0 {
			return "File not found.", true
		}
		h.assistant.Open(matches[0])
		return "File found and opened", true

	case strings.HasPrefix(lower, "delete "):
		filename := strings.TrimSpace(strings.TrimPrefix(lower, "delete "))
		matches := h.assistant.Find(ctx, filename)
		if len(matches) == 0 {
			return "File not found.", true
		}
		if h.confirm == nil || !h.confirm("Are you sure you want to delete this file?") {
			return "Delete operation canceled.", true
		}
		return h.assistant.Delete(matches[0]), true

	case strings.HasPrefix(lower, "list files in "):
		folder := strings.TrimSpace(strings.TrimPrefix(lower, "list files in "))
		if _, err := os.Stat(folder); err != nil {
			return "Folder not found.", true
		}
		names, err := h.assistant.ListFolder(folder)
		if err != nil || len(names) == 0 {
			return fmt.Sprintf("No files found in %s.", folder), true
		}
		return fmt.Sprintf("Files in %s:\n%s", folder, strings.Join(names, "\n")), true
	}

	return "", false
}
