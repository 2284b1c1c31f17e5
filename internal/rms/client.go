// Package rms reads resident assignments from the housing records system.
package rms

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

// ConnectionError is returned for every failed call to the records system.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("rms %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Resident is one current room assignment.
type Resident struct {
	FullName string `json:"full_name"`
	Alias    string `json:"alias"`
	Email    string `json:"email"`
	Room     string `json:"room"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(config Config, logger *slog.Logger) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Residents lists everyone currently assigned to a building. Buildings are
// addressed by community and building name, the way the records system
// keys them.
func (c *Client) Residents(ctx context.Context, community, building string) ([]Resident, error) {
	if c.baseURL == "" {
		return nil, &ConnectionError{Op: "residents", Err: fmt.Errorf("base url not configured")}
	}

	q := url.Values{}
	q.Set("community", community)
	q.Set("building", building)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/residents?"+q.Encode(), nil)
	if err != nil {
		return nil, &ConnectionError{Op: "residents", Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("rms request failed", "community", community, "building", building, "error", err)
		return nil, &ConnectionError{Op: "residents", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("rms returned an error", "community", community, "building", building, "status", resp.StatusCode)
		return nil, &ConnectionError{Op: "residents", Err: fmt.Errorf("API returned status %d", resp.StatusCode)}
	}

	var apiResponse struct {
		Residents *[]Resident `json:"residents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, &ConnectionError{Op: "residents", Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if apiResponse.Residents == nil {
		return nil, &ConnectionError{Op: "residents", Err: fmt.Errorf("response has no residents")}
	}

	return *apiResponse.Residents, nil
}
