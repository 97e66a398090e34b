package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
		},
		Freshdesk: FreshdeskConfig{
			Domain: "example.freshdesk.com",
			APIKey: "test",
		},
		Classifier: ClassifierConfig{
			APIKey: "test",
		},
		Email: EmailConfig{
			From:     "alerts@example.com",
			Password: "test",
			To:       "oncall@example.com",
		},
		Scheduler: SchedulerConfig{
			IntervalMinutes: 1,
			RecencyWindow:   time.Minute,
		},
		Storage: StorageConfig{
			ProcessedFile: "processed_tickets.txt",
		},
	}
}

func TestConfigValidation(t *testing.T) {
	config := validConfig()
	assert.NoError(t, config.Validate())

	invalidConfig := &Config{
		Server: ServerConfig{
			Port: "",
		},
	}
	assert.Error(t, invalidConfig.Validate())
}

func TestConfigValidationMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing freshdesk domain", func(c *Config) { c.Freshdesk.Domain = "" }},
		{"missing freshdesk api key", func(c *Config) { c.Freshdesk.APIKey = "" }},
		{"missing classifier api key", func(c *Config) { c.Classifier.APIKey = "" }},
		{"missing email from", func(c *Config) { c.Email.From = "" }},
		{"missing email recipient", func(c *Config) { c.Email.To = "" }},
		{"zero interval", func(c *Config) { c.Scheduler.IntervalMinutes = 0 }},
		{"zero recency window", func(c *Config) { c.Scheduler.RecencyWindow = 0 }},
		{"missing processed file", func(c *Config) { c.Storage.ProcessedFile = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(config)
			assert.Error(t, config.Validate())
		})
	}
}

func TestFreshdeskBaseURL(t *testing.T) {
	cfg := FreshdeskConfig{Domain: "example.freshdesk.com"}
	assert.Equal(t, "https://example.freshdesk.com/api/v2", cfg.BaseURL())
}

func TestEmailRecipients(t *testing.T) {
	cfg := EmailConfig{To: "oncall@example.com", TeamsChannel: "channel@example.com"}
	assert.Equal(t, []string{"oncall@example.com", "channel@example.com"}, cfg.Recipients())

	cfg.TeamsChannel = ""
	assert.Equal(t, []string{"oncall@example.com"}, cfg.Recipients())
}
