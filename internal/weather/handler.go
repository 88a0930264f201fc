package weather

import (
	"context"
	"fmt"
	"strings"
)

var keywords = []string{
	"weather",
	"how's the weather",
	"what's the weather",
	"current weather",
	"weather update",
	"weather report",
	"forecast",
	"temperature",
}

// Handler answers weather questions.
type Handler struct {
	service *Service
}

// NewHandler creates a weather command handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Handle processes a weather question. The location is the text after
// the word "in" when present, otherwise resolved from the caller's IP.
func (h *Handler) Handle(ctx context.Context, text string) (string, bool) {
	lower := strings.ToLower(text)

	matched := false
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			matched = true
			break
		}
	}
	if !matched {
		return "", false
	}

	var location string
	if _, after, ok := strings.Cut(lower, " in "); ok {
		location = strings.TrimSpace(after)
	} else {
		city, country, ok := h.service.LocationFromIP(ctx)
		if !ok {
			return "Could not determine your location. Please specify a city.", true
		}
		location = fmt.Sprintf("%s, %s", city, country)
	}

	return h.service.Get(ctx, location), true
}
