package automation

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jamesstrohm55/ALFRED/internal/logger"
)

// CommandLog is an append-only audit log of automation inputs and the
// commands they matched.
type CommandLog struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewCommandLog creates a command log writing to path.
func NewCommandLog(path string) *CommandLog {
	return &CommandLog{path: path, now: time.Now}
}

// Record appends an input line, the matched command when there was one,
// and a trailing blank line. Logging failures are reported but never
// block command execution.
func (l *CommandLog) Record(input, matched string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		logger.Warn("Could not open command log: %v", err)
		return
	}
	defer f.Close()

	timestamp := l.now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(f, "[%s] INPUT: %s\n", timestamp, input)
	if matched != "" {
		fmt.Fprintf(f, "             MATCHED: %s\n", matched)
	}
	fmt.Fprintln(f)
}
