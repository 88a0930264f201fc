package sysmon

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func fakeStats() Stats {
	return Stats{
		CPUPercent:  12.5,
		RAMPercent:  50,
		RAMUsedGB:   8,
		RAMTotalGB:  16,
		DiskPercent: 75,
		DiskUsedGB:  300,
		DiskTotalGB: 400,
		Uptime:      "2:15:00",
		OS:          "ubuntu",
		OSVersion:   "24.04",
	}
}

func TestHandlerStatusReport(t *testing.T) {
	h := &Handler{stats: fakeStats}

	reply, ok := h.Handle(context.Background(), "give me a system status")
	if !ok {
		t.Fatal("Expected system query to be handled")
	}

	want := "CPU Usage: 12.5 percent. " +
		"RAM: 8 out of 16 gigabytes used (50 percent). " +
		"Disk: 300 out of 400 gigabytes used (75 percent). " +
		"Uptime: 2:15:00. " +
		"OS: ubuntu 24.04."
	if reply != want {
		t.Errorf("Unexpected report:\ngot:  %s\nwant: %s", reply, want)
	}
}

func TestHandlerKeywordVariants(t *testing.T) {
	h := &Handler{stats: fakeStats}

	for _, input := range []string{
		"system monitor",
		"how is the system doing",
		"check systems please",
		"show me system stats",
	} {
		if _, ok := h.Handle(context.Background(), input); !ok {
			t.Errorf("Expected '%s' to be handled", input)
		}
	}
}

func TestHandlerOverlay(t *testing.T) {
	launched := false
	h := &Handler{stats: fakeStats, overlay: func() error {
		launched = true
		return nil
	}}

	reply, ok := h.Handle(context.Background(), "launch system overlay")
	if !ok {
		t.Fatal("Expected overlay command to be handled")
	}
	if reply != "Launching system overlay..." {
		t.Errorf("Unexpected reply: %s", reply)
	}
	if !launched {
		t.Error("Expected overlay launcher to be called")
	}
}

func TestHandlerOverlayUnavailable(t *testing.T) {
	h := &Handler{stats: fakeStats}

	reply, _ := h.Handle(context.Background(), "show monitor")
	if reply != "System overlay is not available." {
		t.Errorf("Unexpected reply: %s", reply)
	}
}

func TestHandlerOverlayFailure(t *testing.T) {
	h := &Handler{stats: fakeStats, overlay: func() error {
		return errors.New("no display")
	}}

	reply, _ := h.Handle(context.Background(), "launch system overlay")
	if !strings.Contains(reply, "no display") {
		t.Errorf("Unexpected reply: %s", reply)
	}
}

func TestHandlerIgnoresUnrelatedInput(t *testing.T) {
	h := &Handler{stats: fakeStats}

	if _, ok := h.Handle(context.Background(), "what's the weather"); ok {
		t.Error("Expected unrelated input to be ignored")
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		seconds uint64
		want    string
	}{
		{0, "0:00:00"},
		{8100, "2:15:00"},
		{90061, "1 days, 1:01:01"},
	}
	for _, tt := range tests {
		if got := formatUptime(tt.seconds); got != tt.want {
			t.Errorf("formatUptime(%d) = %s, want %s", tt.seconds, got, tt.want)
		}
	}
}
