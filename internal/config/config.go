package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Freshdesk  FreshdeskConfig  `mapstructure:"freshdesk"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Email      EmailConfig      `mapstructure:"email"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Storage    StorageConfig    `mapstructure:"storage"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// FreshdeskConfig holds helpdesk API configuration
type FreshdeskConfig struct {
	Domain   string        `mapstructure:"domain"`
	APIKey   string        `mapstructure:"api_key"`
	PageSize int           `mapstructure:"page_size"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ClassifierConfig holds the urgency classifier configuration
type ClassifierConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// EmailConfig holds SMTP alert delivery configuration
type EmailConfig struct {
	From         string `mapstructure:"from"`
	Password     string `mapstructure:"password"`
	To           string `mapstructure:"to"`
	TeamsChannel string `mapstructure:"teams_channel"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
}

// SchedulerConfig holds scheduler configuration
type SchedulerConfig struct {
	IntervalMinutes int           `mapstructure:"interval_minutes"`
	RecencyWindow   time.Duration `mapstructure:"recency_window"`
}

// StorageConfig holds flat-file storage configuration
type StorageConfig struct {
	ProcessedFile string `mapstructure:"processed_file"`
	LogFile       string `mapstructure:"log_file"`
}

// LoadConfig loads configuration from environment variables and config file
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set defaults
	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Environment variables override config file
	viper.AutomaticEnv()

	// Bind environment variables
	bindEnvVars()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")

	viper.SetDefault("freshdesk.page_size", 100)
	viper.SetDefault("freshdesk.timeout", "30s")

	viper.SetDefault("classifier.model", "gpt-4.1-nano")
	viper.SetDefault("classifier.max_tokens", 5)

	viper.SetDefault("email.smtp_host", "smtp.office365.com")
	viper.SetDefault("email.smtp_port", 587)

	viper.SetDefault("scheduler.interval_minutes", 1)
	viper.SetDefault("scheduler.recency_window", "1m")

	viper.SetDefault("storage.processed_file", "processed_tickets.txt")
	viper.SetDefault("storage.log_file", "ticket_log.txt")
}

// bindEnvVars binds environment variables to configuration keys
func bindEnvVars() {
	// Server
	viper.BindEnv("server.port", "SERVER_PORT", "PORT")
	viper.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	viper.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")

	// Freshdesk
	viper.BindEnv("freshdesk.domain", "FRESHDESK_DOMAIN")
	viper.BindEnv("freshdesk.api_key", "FRESHDESK_API_KEY")
	viper.BindEnv("freshdesk.page_size", "FRESHDESK_PAGE_SIZE")

	// Classifier
	viper.BindEnv("classifier.api_key", "OPENAI_API_KEY")
	viper.BindEnv("classifier.model", "OPENAI_MODEL")

	// Email
	viper.BindEnv("email.from", "EMAIL_FROM")
	viper.BindEnv("email.password", "EMAIL_PASS")
	viper.BindEnv("email.to", "EMAIL_TO")
	viper.BindEnv("email.teams_channel", "TEAMS_CHANNEL_EMAIL")
	viper.BindEnv("email.smtp_host", "SMTP_HOST")
	viper.BindEnv("email.smtp_port", "SMTP_PORT")

	// Scheduler
	viper.BindEnv("scheduler.interval_minutes", "SCHEDULER_INTERVAL_MINUTES")
	viper.BindEnv("scheduler.recency_window", "SCHEDULER_RECENCY_WINDOW")

	// Storage
	viper.BindEnv("storage.processed_file", "PROCESSED_TICKETS_FILE")
	viper.BindEnv("storage.log_file", "TICKET_LOG_FILE")
}

// BaseURL returns the helpdesk API base URL
func (c *FreshdeskConfig) BaseURL() string {
	return fmt.Sprintf("https://%s/api/v2", c.Domain)
}

// Recipients returns the alert recipient list
func (c *EmailConfig) Recipients() []string {
	recipients := []string{c.To}
	if c.TeamsChannel != "" {
		recipients = append(recipients, c.TeamsChannel)
	}
	return recipients
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Freshdesk.Domain == "" || c.Freshdesk.APIKey == "" {
		return fmt.Errorf("freshdesk domain and api key are required")
	}

	if c.Classifier.APIKey == "" {
		return fmt.Errorf("classifier api key is required")
	}

	if c.Email.From == "" || c.Email.Password == "" || c.Email.To == "" {
		return fmt.Errorf("email from, password, and to are required")
	}

	if c.Scheduler.IntervalMinutes <= 0 {
		return fmt.Errorf("scheduler interval must be greater than 0")
	}

	if c.Scheduler.RecencyWindow <= 0 {
		return fmt.Errorf("scheduler recency window must be greater than 0")
	}

	if c.Storage.ProcessedFile == "" {
		return fmt.Errorf("processed tickets file path is required")
	}

	return nil
}
