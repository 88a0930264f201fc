package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// EventAdder is the calendar collaborator contract.
type EventAdder interface {
	AddEvent(ctx context.Context, title string, start, end time.Time, description string) error
}

// Client posts events to a calendar HTTP endpoint.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a calendar client for the given endpoint.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type eventPayload struct {
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description"`
}

// AddEvent posts an event to the calendar endpoint.
func (c *Client) AddEvent(ctx context.Context, title string, start, end time.Time, description string) error {
	body, err := json.Marshal(eventPayload{
		Title:       title,
		Start:       start,
		End:         end,
		Description: description,
	})
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("calendar request failed with status %d", resp.StatusCode)
	}
	return nil
}
