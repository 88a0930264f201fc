package sysmon

import (
	"context"
	"fmt"
	"strings"
)

var statusKeywords = []string{
	"system monitor",
	"system status",
	"how is the system",
	"system stats",
	"system information",
	"check systems",
}

// Handler answers system status queries.
type Handler struct {
	stats   func() Stats
	overlay func() error // launches the visual monitor, nil when unavailable
}

// NewHandler creates a system monitor handler using live statistics.
func NewHandler(overlay func() error) *Handler {
	return &Handler{stats: Collect, overlay: overlay}
}

// Handle processes a system monitoring query.
func (h *Handler) Handle(ctx context.Context, text string) (string, bool) {
	lower := strings.ToLower(text)

	for _, word := range statusKeywords {
		if strings.Contains(lower, word) {
			s := h.stats()
			return fmt.Sprintf(
				"CPU Usage: %g percent. "+
					"RAM: %g out of %g gigabytes used (%g percent). "+
					"Disk: %g out of %g gigabytes used (%g percent). "+
					"Uptime: %s. "+
					"OS: %s %s.",
				s.CPUPercent,
				s.RAMUsedGB, s.RAMTotalGB, s.RAMPercent,
				s.DiskUsedGB, s.DiskTotalGB, s.DiskPercent,
				s.Uptime,
				s.OS, s.OSVersion,
			), true
		}
	}

	if strings.Contains(lower, "launch system overlay") || strings.Contains(lower, "show monitor") {
		if h.overlay == nil {
			return "System overlay is not available.", true
		}
		if err := h.overlay(); err != nil {
			return fmt.Sprintf("Could not launch system overlay: %v", err), true
		}
		return "Launching system overlay...", true
	}

	return "", false
}
