// Package quotes fetches short random quotes from an HTTP source.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxBody caps how much of a response we read; quotes are short.
const maxBody = 64 << 10

// Client asks a configured endpoint for one quote per call. There are no
// retries; a failed fetch is reported to the caller and dropped.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a quote client for the given endpoint.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// Fetch returns one quote. It accepts either a quotable-style JSON body
// with a "content" field or a plain text body.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("quotes: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("quotes: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("quotes: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("quotes: read body: %w", err)
	}

	var parsed struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Content != "" {
		return parsed.Content, nil
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return "", fmt.Errorf("quotes: empty response from %s", c.url)
	}
	return text, nil
}
