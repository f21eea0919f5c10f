// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/arxiv-alert/pkg/types"
)

// slackMaxPapers bounds how many papers one Slack message carries.
// Truncation here is presentation only; the commit step still records
// the full filtered set.
const slackMaxPapers = 10

// SlackChannel posts a Block Kit message to a Slack incoming webhook.
type SlackChannel struct {
	Config types.SlackConfig
	Client *http.Client
}

// Name returns the channel identifier.
func (s *SlackChannel) Name() string { return "slack" }

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackBlock struct {
	Type string     `json:"type"`
	Text *slackText `json:"text,omitempty"`
}

// Deliver posts the first slackMaxPapers papers as Block Kit sections.
func (s *SlackChannel) Deliver(ctx context.Context, papers []types.Paper) error {
	blocks := []slackBlock{{
		Type: "header",
		Text: &slackText{Type: "plain_text", Text: fmt.Sprintf("📚 %d New arXiv Papers", len(papers))},
	}}

	shown := papers
	if len(shown) > slackMaxPapers {
		shown = shown[:slackMaxPapers]
	}
	for _, p := range shown {
		blocks = append(blocks,
			slackBlock{
				Type: "section",
				Text: &slackText{
					Type: "mrkdwn",
					Text: fmt.Sprintf("*%s*\n%s\n<%s|View Paper>", p.Title, authorLine(p.Authors, 2), p.URL),
				},
			},
			slackBlock{Type: "divider"},
		)
	}

	body, err := json.Marshal(map[string]any{"blocks": blocks})
	if err != nil {
		return fmt.Errorf("encoding Slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Config.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("Slack webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("Slack webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}
