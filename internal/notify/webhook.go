// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pdiddy/arxiv-alert/pkg/types"
)

// WebhookChannel posts the full filtered set as JSON to a configured
// endpoint, with optional static headers.
type WebhookChannel struct {
	Config types.WebhookConfig
	Client *http.Client

	// now is the payload timestamp clock. Tests override it.
	now func() time.Time
}

// Name returns the channel identifier.
func (c *WebhookChannel) Name() string { return "webhook" }

type webhookPayload struct {
	Timestamp string        `json:"timestamp"`
	Count     int           `json:"count"`
	Papers    []types.Paper `json:"papers"`
}

// Deliver posts {timestamp, count, papers} to the configured URL.
func (c *WebhookChannel) Deliver(ctx context.Context, papers []types.Paper) error {
	now := c.now
	if now == nil {
		now = time.Now
	}

	body, err := json.Marshal(webhookPayload{
		Timestamp: now().UTC().Format(time.RFC3339),
		Count:     len(papers),
		Papers:    papers,
	})
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Config.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.Config.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}
