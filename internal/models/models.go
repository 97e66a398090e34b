package models

import (
	"fmt"
	"strconv"
	"time"
)

// Ticket represents a support ticket as returned by the helpdesk API.
// Tickets are created and owned by the helpdesk; this service only reads them.
type Ticket struct {
	ID          int64     `json:"id"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	ResponderID *int64    `json:"responder_id"`
}

// Key returns the ticket identifier used in the processed set.
func (t Ticket) Key() string {
	return strconv.FormatInt(t.ID, 10)
}

// HasResponder reports whether an agent is already assigned to the ticket.
func (t Ticket) HasResponder() bool {
	return t.ResponderID != nil
}

// URL builds the agent-facing ticket URL for the given helpdesk domain.
func (t Ticket) URL(domain string) string {
	return fmt.Sprintf("https://%s/a/tickets/%d", domain, t.ID)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Store     string            `json:"store"`
	Metrics   map[string]string `json:"metrics,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
