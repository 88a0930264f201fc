package brain

import (
	"fmt"
	"testing"
)

func TestHistoryTrimsOldest(t *testing.T) {
	h := NewHistory(10)

	for i := 0; i < 15; i++ {
		h.Add("user", fmt.Sprintf("question %d", i))
		h.Add("assistant", fmt.Sprintf("answer %d", i))
	}

	if h.Len() != 20 {
		t.Fatalf("Expected history capped at 20 messages, got %d", h.Len())
	}

	msgs := h.Messages("prompt")
	// index 0 is the system prompt; the oldest surviving message is the
	// user turn from exchange 5
	if msgs[1].Content != "question 5" {
		t.Errorf("Expected oldest surviving message 'question 5', got '%s'", msgs[1].Content)
	}
	if msgs[len(msgs)-1].Content != "answer 14" {
		t.Errorf("Expected newest message 'answer 14', got '%s'", msgs[len(msgs)-1].Content)
	}
}

func TestHistoryMessagesIncludesSystemPrompt(t *testing.T) {
	h := NewHistory(10)
	h.Add("user", "hello")

	msgs := h.Messages("you are a butler")
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != "system" || msgs[0].Content != "you are a butler" {
		t.Errorf("Expected system prompt first, got %+v", msgs[0])
	}
}

func TestHistoryMessagesReturnsCopy(t *testing.T) {
	h := NewHistory(10)
	h.Add("user", "hello")

	msgs := h.Messages("prompt")
	msgs[1].Content = "mutated"

	if got := h.Messages("prompt")[1].Content; got != "hello" {
		t.Errorf("Expected internal history unchanged, got '%s'", got)
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(10)
	h.Add("user", "hello")
	h.Clear()

	if h.Len() != 0 {
		t.Errorf("Expected empty history after Clear, got %d", h.Len())
	}
}
