package automation

import (
	"sort"
	"strings"

	"github.com/jamesstrohm55/ALFRED/internal/logger"
)

// Runner fuzzy-matches user input against the command registry and
// executes the closest command.
type Runner struct {
	commands map[string]Action
	phrases  []string
	matcher  Matcher
	log      *CommandLog
}

// NewRunner creates an automation runner. log may be nil to disable the
// audit log.
func NewRunner(commands map[string]Action, matcher Matcher, log *CommandLog) *Runner {
	phrases := make([]string, 0, len(commands))
	for phrase := range commands {
		phrases = append(phrases, phrase)
	}
	sort.Strings(phrases)

	if matcher == nil {
		matcher = NewRatioMatcher(DefaultCutoff)
	}
	return &Runner{commands: commands, phrases: phrases, matcher: matcher, log: log}
}

// Run matches text against the known commands and executes the best
// match. Every input is logged, matched or not.
func (r *Runner) Run(text string) (string, bool) {
	input := strings.ToLower(strings.TrimSpace(text))

	if r.log != nil {
		r.log.Record(input, "")
	}

	matched, ok := r.matcher.Match(input, r.phrases)
	if !ok {
		return "", false
	}

	if r.log != nil {
		r.log.Record(input, matched)
	}
	logger.Info("Automation command matched: '%s' -> '%s'", input, matched)

	return r.commands[matched](), true
}
