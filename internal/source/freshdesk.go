package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ticket-monitor-go/internal/config"
	"ticket-monitor-go/internal/models"
)

// TicketSource is the interface for fetching recent tickets
type TicketSource interface {
	FetchRecent(ctx context.Context, pageSize int) ([]models.Ticket, error)
}

// FreshdeskClient implements TicketSource against the Freshdesk v2 API
type FreshdeskClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewFreshdeskClient creates a new Freshdesk API client
func NewFreshdeskClient(cfg *config.FreshdeskConfig) *FreshdeskClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &FreshdeskClient{
		baseURL: cfg.BaseURL(),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// NewFreshdeskClientWithBaseURL creates a client against an explicit base
// URL, bypassing the domain-derived one. Used by tests.
func NewFreshdeskClientWithBaseURL(baseURL, apiKey string, client *http.Client) *FreshdeskClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &FreshdeskClient{baseURL: baseURL, apiKey: apiKey, client: client}
}

// FetchRecent fetches the most recent tickets, newest first. The Freshdesk
// API authenticates with the API key as the basic-auth username and a
// literal "X" password.
func (c *FreshdeskClient) FetchRecent(ctx context.Context, pageSize int) ([]models.Ticket, error) {
	url := fmt.Sprintf("%s/tickets?order_type=desc&page=1&per_page=%d", c.baseURL, pageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tickets request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, "X")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tickets request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("tickets request returned status %d: %s", resp.StatusCode, string(body))
	}

	var tickets []models.Ticket
	if err := json.NewDecoder(resp.Body).Decode(&tickets); err != nil {
		return nil, fmt.Errorf("failed to decode tickets response: %w", err)
	}

	return tickets, nil
}
