// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notify delivers filtered papers through configured channels,
// each with independent bounded retry.
package notify

import (
	"context"
	"net/http"

	"github.com/pdiddy/arxiv-alert/pkg/types"
)

// Channel delivers a batch of papers to one destination. Each variant
// (email, Slack, generic webhook) carries its own configuration; new
// destinations implement this interface rather than adding a type switch.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, papers []types.Paper) error
}

// DefaultMaxAttempts bounds per-channel delivery attempts when the
// configuration does not say otherwise.
const DefaultMaxAttempts = 3

// Retry invokes fn up to maxAttempts times, stopping at the first nil
// error. It returns the number of attempts made and the last error
// (nil on success). When maxAttempts is not positive the default is used.
func Retry(maxAttempts int, fn func() error) (attempts int, err error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	for attempts = 1; ; attempts++ {
		err = fn()
		if err == nil || attempts >= maxAttempts {
			return attempts, err
		}
	}
}

// FromConfig builds the enabled channels in dispatch order: email,
// Slack, webhook. Disabled channels are omitted entirely.
func FromConfig(cfg types.NotificationsConfig) []Channel {
	client := &http.Client{Timeout: cfg.Timeout}

	var channels []Channel
	if cfg.Email.Enabled {
		channels = append(channels, &EmailChannel{Config: cfg.Email, Timeout: cfg.Timeout})
	}
	if cfg.Slack.Enabled {
		channels = append(channels, &SlackChannel{Config: cfg.Slack, Client: client})
	}
	if cfg.Webhook.Enabled {
		channels = append(channels, &WebhookChannel{Config: cfg.Webhook, Client: client})
	}
	return channels
}
