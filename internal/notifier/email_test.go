package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ticket-monitor-go/internal/config"
)

func TestBuildAlertHTML(t *testing.T) {
	html := buildAlertHTML("prod is down", "https://example.freshdesk.com/a/tickets/1")

	assert.Contains(t, html, "<p>prod is down</p>")
	assert.Contains(t, html, `<a href="https://example.freshdesk.com/a/tickets/1">View Ticket</a>`)
}

func TestBuildAlertHTMLEscapesTicketContent(t *testing.T) {
	html := buildAlertHTML(`<script>alert("x")</script>`, "https://example.freshdesk.com/a/tickets/1")

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestNewEmailNotifierRecipients(t *testing.T) {
	n := NewEmailNotifier(&config.EmailConfig{
		From:         "alerts@example.com",
		Password:     "secret",
		To:           "oncall@example.com",
		TeamsChannel: "channel@example.com",
		SMTPHost:     "smtp.office365.com",
		SMTPPort:     587,
	})

	assert.Equal(t, []string{"oncall@example.com", "channel@example.com"}, n.recipients)
	assert.Equal(t, "alerts@example.com", n.from)
}

func TestNewEmailNotifierSingleRecipient(t *testing.T) {
	n := NewEmailNotifier(&config.EmailConfig{
		From:     "alerts@example.com",
		Password: "secret",
		To:       "oncall@example.com",
		SMTPHost: "smtp.office365.com",
		SMTPPort: 587,
	})

	assert.Equal(t, []string{"oncall@example.com"}, n.recipients)
}
