package ticketing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ConnectionError is returned for every failed call to the ticketing backend.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("ticketing %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client queries the helpdesk ticketing system.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(config Config, logger *slog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// OpenTicketCount returns the number of open tickets assigned to the named
// technician. The assignee is matched on full name.
func (c *Client) OpenTicketCount(ctx context.Context, assignee string) (int, error) {
	if c.baseURL == "" {
		return 0, &ConnectionError{Op: "count", Err: fmt.Errorf("base url not configured")}
	}

	q := url.Values{}
	q.Set("assignee", assignee)
	q.Set("status", "open")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tickets/count?"+q.Encode(), nil)
	if err != nil {
		return 0, &ConnectionError{Op: "count", Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("ticketing request failed", "assignee", assignee, "error", err)
		return 0, &ConnectionError{Op: "count", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("ticketing backend returned an error", "assignee", assignee, "status", resp.StatusCode)
		return 0, &ConnectionError{Op: "count", Err: fmt.Errorf("API returned status %d", resp.StatusCode)}
	}

	var apiResponse struct {
		Count *int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return 0, &ConnectionError{Op: "count", Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if apiResponse.Count == nil {
		return 0, &ConnectionError{Op: "count", Err: fmt.Errorf("response has no count")}
	}

	return *apiResponse.Count, nil
}
