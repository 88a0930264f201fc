package automation

import "testing"

func TestRatioMatcher(t *testing.T) {
	phrases := []string{"open browser", "open vs code", "tell time", "play music", "lock computer"}
	m := NewRatioMatcher(DefaultCutoff)

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"exact match", "open browser", "open browser", true},
		{"minor typo", "opn browser", "open browser", true},
		{"transposed letters", "tell tiem", "tell time", true},
		{"close phrase", "play some music", "play music", true},
		{"unrelated input", "completely unrelated command xyz123", "", false},
		{"empty input", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Match(tt.input, phrases)
			if ok != tt.ok {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Match(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRatioMatcherCutoff(t *testing.T) {
	// A strict cutoff rejects matches a loose one accepts
	phrases := []string{"open browser"}

	loose := NewRatioMatcher(0.5)
	if _, ok := loose.Match("open browsr plz", phrases); !ok {
		t.Error("Expected loose matcher to accept near match")
	}

	strict := NewRatioMatcher(0.99)
	if _, ok := strict.Match("open browsr plz", phrases); ok {
		t.Error("Expected strict matcher to reject near match")
	}
}
