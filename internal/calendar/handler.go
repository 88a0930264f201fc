package calendar

import (
	"context"
	"fmt"
	"strings"

	"github.com/jamesstrohm55/ALFRED/internal/logger"
)

const (
	parserMissingReply = "I need a natural-language date parser to handle calendar commands, but none is configured."
	noTitleReply       = "I need more information to add this event. Please try a command like:\n" +
		"\"Add meeting Team standup tomorrow at 10am for 1 hour\"\n" +
		"or \"Schedule event Doctor appointment on Friday at 2pm\""
	notConfiguredReply = "Calendar service is not configured. Please check your calendar setup."
)

// Handler answers add-event commands.
type Handler struct {
	parser *Parser
	adder  EventAdder
}

// NewHandler creates a calendar command handler. parser may be nil when
// date parsing is unavailable; adder may be nil when no calendar
// provider is configured.
func NewHandler(parser *Parser, adder EventAdder) *Handler {
	return &Handler{parser: parser, adder: adder}
}

// Handle processes a calendar command.
func (h *Handler) Handle(ctx context.Context, text string) (string, bool) {
	lower := strings.ToLower(text)

	matched := false
	for _, trigger := range Triggers {
		if strings.Contains(lower, trigger) {
			matched = true
			break
		}
	}
	if !matched {
		return "", false
	}

	if h.parser == nil {
		return parserMissingReply, true
	}

	parsed := h.parser.Parse(text)

	if parsed.Title == "" {
		return noTitleReply, true
	}
	if !parsed.HasStart {
		return fmt.Sprintf("I understood you want to add '%s', but I couldn't determine when. "+
			"Please include a date and time, like 'tomorrow at 3pm' or 'next Monday at 10am'.", parsed.Title), true
	}

	if h.adder == nil {
		logger.Error("Calendar service not available")
		return notConfiguredReply, true
	}

	end := parsed.Start.Add(parsed.Duration)
	if err := h.adder.AddEvent(ctx, parsed.Title, parsed.Start, end, parsed.Description); err != nil {
		logger.Error("Failed to add calendar event: %v", err)
		return fmt.Sprintf("Sorry, I couldn't add that event: %v", err), true
	}

	logger.Info("Added calendar event: %s at %s", parsed.Title, parsed.Start)
	return fmt.Sprintf("'%s' has been added to your calendar for %s.",
		parsed.Title, parsed.Start.Format("Monday, January 02 at 03:04 PM")), true
}
