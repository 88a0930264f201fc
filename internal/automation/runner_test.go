package automation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testCommands() map[string]Action {
	return map[string]Action{
		"tell time":    func() string { return "The current time is 03:04 PM." },
		"open browser": func() string { return "Opening your browser, sir." },
	}
}

func TestRunnerMatchesAndExecutes(t *testing.T) {
	r := NewRunner(testCommands(), nil, nil)

	reply, ok := r.Run("tell tiem")
	if !ok {
		t.Fatal("Expected fuzzy match to succeed")
	}
	if reply != "The current time is 03:04 PM." {
		t.Errorf("Unexpected reply: %s", reply)
	}
}

func TestRunnerNoMatch(t *testing.T) {
	r := NewRunner(testCommands(), nil, nil)

	if _, ok := r.Run("completely unrelated command xyz123"); ok {
		t.Error("Expected no match for unrelated input")
	}
}

func TestRunnerLogsInputsAndMatches(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "command_log.txt")
	log := NewCommandLog(logPath)
	log.now = func() time.Time { return time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC) }

	r := NewRunner(testCommands(), nil, log)

	r.Run("opn browser")
	r.Run("completely unrelated command xyz123")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read command log: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "[2026-08-28 15:04:05] INPUT: opn browser\n") {
		t.Errorf("Log missing input line:\n%s", content)
	}
	if !strings.Contains(content, "             MATCHED: open browser\n") {
		t.Errorf("Log missing matched line:\n%s", content)
	}
	if !strings.Contains(content, "INPUT: completely unrelated command xyz123\n") {
		t.Errorf("Log missing unmatched input line:\n%s", content)
	}
	if strings.Contains(content, "MATCHED: completely") {
		t.Errorf("Unmatched input should have no MATCHED line:\n%s", content)
	}
}

func TestTellTimeCommand(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 8, 28, 15, 4, 0, 0, time.UTC) }
	commands := NewCommands("", now)

	got := commands["tell time"]()
	if got != "The current time is 03:04 PM." {
		t.Errorf("Unexpected reply: %s", got)
	}
}

func TestPlayMusicUnconfigured(t *testing.T) {
	commands := NewCommands("", nil)

	got := commands["play music"]()
	if !strings.HasPrefix(got, "Music path not configured.") {
		t.Errorf("Unexpected reply: %s", got)
	}
}
