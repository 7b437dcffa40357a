// Package words fetches random words for content-generating games.
package words

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultURL is the public random word endpoint
const DefaultURL = "https://api.theturkey.dev/randomword"

// Client fetches random words over HTTP. A fetch failure must prevent the
// dependent game from starting; callers treat any error as "do not start".
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a words client for the given endpoint
func NewClient(url string) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// RandomWord fetches a single random word
func (c *Client) RandomWord(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("word fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("word fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if err != nil {
		return "", fmt.Errorf("failed to read word: %w", err)
	}

	word := strings.TrimSpace(string(body))
	if word == "" {
		return "", fmt.Errorf("word fetch returned empty body")
	}
	return word, nil
}
