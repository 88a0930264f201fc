package calendar

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParsedEvent is the result of parsing a natural-language event command.
type ParsedEvent struct {
	Title       string
	Start       time.Time
	HasStart    bool
	Duration    time.Duration
	Description string
}

// Triggers are the phrases that mark an utterance as an add-event command.
var Triggers = []string{"add meeting", "add event", "schedule meeting", "schedule event", "calendar add"}

var (
	durationRe    = regexp.MustCompile(`for\s+(\d+)\s*(hour|minute|hr|min)s?`)
	titlePrefixRe = regexp.MustCompile(`(?i)^(called|named|titled)\s+`)
	titleSplitRe  = regexp.MustCompile(`(?i)^([^@]+?)\s+(?:at|on|tomorrow|today|next|for)\s+`)

	// Ordered date/time expression patterns; the match starting earliest
	// in the text wins.
	datetimePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(tomorrow|today|tonight)\s+at\s+\d{1,2}(?::\d{2})?\s*(?:am|pm)?`),
		regexp.MustCompile(`(next|this)\s+\w+day\s+at\s+\d{1,2}(?::\d{2})?\s*(?:am|pm)?`),
		regexp.MustCompile(`on\s+\w+day\s+at\s+\d{1,2}(?::\d{2})?\s*(?:am|pm)?`),
		regexp.MustCompile(`at\s+\d{1,2}(?::\d{2})?\s*(?:am|pm)?`),
		regexp.MustCompile(`\d{1,2}(?::\d{2})?\s*(?:am|pm)`),
		regexp.MustCompile(`\d{1,2}/\d{1,2}(?:/\d{2,4})?\s+at\s+\d{1,2}(?::\d{2})?\s*(?:am|pm)?`),
	}

	titleCaser = cases.Title(language.English)
)

// Parser resolves natural-language date expressions to absolute times,
// preferring future dates.
type Parser struct {
	w   *when.Parser
	now func() time.Time
}

// NewParser creates an event command parser.
func NewParser() *Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{w: w, now: time.Now}
}

// Parse extracts title, start time, and duration from an event command.
// The trigger phrase may still be present; it is stripped first.
func (p *Parser) Parse(text string) ParsedEvent {
	result := ParsedEvent{Duration: time.Hour}

	lower := strings.ToLower(text)
	for _, trigger := range Triggers {
		if idx := strings.Index(lower, trigger); idx >= 0 {
			text = strings.TrimSpace(text[idx+len(trigger):])
			lower = strings.ToLower(text)
			break
		}
	}

	// Duration like "for 1 hour" or "for 30 minutes"
	if m := durationRe.FindStringSubmatchIndex(lower); m != nil {
		amount, _ := strconv.Atoi(lower[m[2]:m[3]])
		unit := lower[m[4]:m[5]]
		if strings.Contains(unit, "hour") || strings.Contains(unit, "hr") {
			result.Duration = time.Duration(amount) * time.Hour
		} else {
			result.Duration = time.Duration(amount) * time.Minute
		}
		text = text[:m[0]] + text[m[1]:]
		lower = strings.ToLower(text)
	}

	// Find the date/time expression starting earliest in the text
	dtStart := len(text)
	var dtText string
	for _, pattern := range datetimePatterns {
		if m := pattern.FindStringIndex(lower); m != nil && m[0] < dtStart {
			dtStart = m[0]
			dtText = lower[m[0]:m[1]]
		}
	}

	if dtText != "" {
		if start, ok := p.resolve(dtText); ok {
			result.Start = start
			result.HasStart = true

			title := strings.TrimSpace(text[:dtStart])
			title = titlePrefixRe.ReplaceAllString(title, "")
			title = strings.Trim(title, " ,.")
			if title != "" {
				result.Title = titleCaser.String(title)
			}
		}
	}

	// Title fallback: text before a common preposition, else whatever
	// precedes the date/time expression
	if result.Title == "" && strings.TrimSpace(text) != "" {
		if m := titleSplitRe.FindStringSubmatch(text); m != nil {
			result.Title = titleCaser.String(strings.TrimSpace(m[1]))
		} else {
			clean := text
			if dtStart < len(text) {
				clean = text[:dtStart]
			}
			clean = strings.Trim(clean, " ,.")
			if clean != "" {
				result.Title = titleCaser.String(clean)
			}
		}
	}

	return result
}

// resolve parses a date/time expression relative to now, pushing
// already-past results one day forward.
func (p *Parser) resolve(text string) (time.Time, bool) {
	base := p.now()
	r, err := p.w.Parse(text, base)
	if err != nil || r == nil {
		return time.Time{}, false
	}
	t := r.Time
	if t.Before(base) {
		t = t.Add(24 * time.Hour)
	}
	return t, true
}
