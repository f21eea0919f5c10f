// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-alert/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the arXiv query stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Categories lists the arXiv categories to monitor (default ["cs.AI"]).
	Categories []string `json:"categories" yaml:"categories" mapstructure:"categories"`

	// Keywords optionally narrows the query; terms are OR-joined across
	// all fields. An empty list means category-only search.
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`

	// DaysBack is the publication cutoff window in days (default 1).
	DaysBack int `json:"days_back" yaml:"days_back" mapstructure:"days_back"`

	// MaxResults is the maximum number of results to request (default 100).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// FilterConfig holds optional keyword rules applied after deduplication.
// An empty keyword list imposes no constraint.
type FilterConfig struct {
	// TitleKeywords keeps only papers whose title contains at least one
	// keyword (case-insensitive substring match).
	TitleKeywords []string `json:"title_keywords" yaml:"title_keywords" mapstructure:"title_keywords"`

	// AbstractKeywords keeps only papers whose abstract contains at least
	// one keyword (case-insensitive substring match).
	AbstractKeywords []string `json:"abstract_keywords" yaml:"abstract_keywords" mapstructure:"abstract_keywords"`
}

// EmailConfig holds SMTP settings for the email channel.
type EmailConfig struct {
	Enabled     bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	SMTPServer  string `json:"smtp_server" yaml:"smtp_server" mapstructure:"smtp_server"`
	SMTPPort    int    `json:"smtp_port" yaml:"smtp_port" mapstructure:"smtp_port"`
	Username    string `json:"username" yaml:"username" mapstructure:"username"`
	Password    string `json:"password,omitempty" yaml:"password,omitempty" mapstructure:"password"`
	FromAddress string `json:"from_address" yaml:"from_address" mapstructure:"from_address"`
	ToAddress   string `json:"to_address" yaml:"to_address" mapstructure:"to_address"`
}

// SlackConfig holds settings for the Slack incoming-webhook channel.
type SlackConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	WebhookURL string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty" mapstructure:"webhook_url"`
}

// WebhookConfig holds settings for the generic JSON webhook channel.
type WebhookConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	URL     string `json:"url,omitempty" yaml:"url,omitempty" mapstructure:"url"`

	// Headers are static headers added to every webhook request
	// (e.g. an Authorization token).
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty" mapstructure:"headers"`
}

// RetryConfig bounds per-channel delivery attempts.
type RetryConfig struct {
	// MaxAttempts is the number of delivery attempts per channel before
	// the channel is marked exhausted (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts" mapstructure:"max_attempts"`
}

// NotificationsConfig groups the channel configurations.
type NotificationsConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	Email   EmailConfig   `json:"email" yaml:"email" mapstructure:"email"`
	Slack   SlackConfig   `json:"slack" yaml:"slack" mapstructure:"slack"`
	Webhook WebhookConfig `json:"webhook" yaml:"webhook" mapstructure:"webhook"`
	Retry   RetryConfig   `json:"retry" yaml:"retry" mapstructure:"retry"`
}

// LedgerConfig holds settings for the sent-papers store.
type LedgerConfig struct {
	// Path is the SQLite database file (default "arxiv-alert.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config groups all stage configurations for one run.
type Config struct {
	Search        SearchConfig        `json:"search" yaml:"search" mapstructure:"search"`
	Filter        FilterConfig        `json:"filter" yaml:"filter" mapstructure:"filter"`
	Notifications NotificationsConfig `json:"notifications" yaml:"notifications" mapstructure:"notifications"`
	Ledger        LedgerConfig        `json:"ledger" yaml:"ledger" mapstructure:"ledger"`
}

// Default returns a Config with the documented defaults filled in.
func Default() Config {
	return Config{
		Search: SearchConfig{
			HTTPConfig: HTTPConfig{Timeout: 30 * time.Second, UserAgent: "arxiv-alert/0.1"},
			Categories: []string{"cs.AI"},
			DaysBack:   1,
			MaxResults: 100,
		},
		Notifications: NotificationsConfig{
			HTTPConfig: HTTPConfig{Timeout: 10 * time.Second, UserAgent: "arxiv-alert/0.1"},
			Retry:      RetryConfig{MaxAttempts: 3},
		},
		Ledger: LedgerConfig{Path: "arxiv-alert.db"},
	}
}

// ApplyDefaults fills zero-valued fields of cfg from Default.
func (c *Config) ApplyDefaults() {
	d := Default()
	if c.Search.Timeout <= 0 {
		c.Search.Timeout = d.Search.Timeout
	}
	if c.Search.UserAgent == "" {
		c.Search.UserAgent = d.Search.UserAgent
	}
	if len(c.Search.Categories) == 0 {
		c.Search.Categories = d.Search.Categories
	}
	if c.Search.DaysBack == 0 {
		c.Search.DaysBack = d.Search.DaysBack
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = d.Search.MaxResults
	}
	if c.Notifications.Timeout <= 0 {
		c.Notifications.Timeout = d.Notifications.Timeout
	}
	if c.Notifications.UserAgent == "" {
		c.Notifications.UserAgent = d.Notifications.UserAgent
	}
	if c.Notifications.Retry.MaxAttempts <= 0 {
		c.Notifications.Retry.MaxAttempts = d.Notifications.Retry.MaxAttempts
	}
	if c.Ledger.Path == "" {
		c.Ledger.Path = d.Ledger.Path
	}
}
