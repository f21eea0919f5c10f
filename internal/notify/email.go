// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-alert/pkg/types"
)

// EmailChannel sends the full digest as a plain-text email over SMTP
// with STARTTLS.
type EmailChannel struct {
	Config  types.EmailConfig
	Timeout time.Duration
}

// Name returns the channel identifier.
func (e *EmailChannel) Name() string { return "email" }

// Deliver connects to the configured SMTP server and sends one message
// containing every paper. The dial honors ctx and the configured timeout
// so a hung server cannot stall the remaining channels past its budget.
func (e *EmailChannel) Deliver(ctx context.Context, papers []types.Paper) error {
	cfg := e.Config
	port := cfg.SMTPPort
	if port == 0 {
		port = 587
	}
	addr := net.JoinHostPort(cfg.SMTPServer, fmt.Sprintf("%d", port))

	dialer := &net.Dialer{Timeout: e.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connecting to SMTP server: %w", err)
	}
	if e.Timeout > 0 {
		conn.SetDeadline(time.Now().Add(e.Timeout))
	}

	client, err := smtp.NewClient(conn, cfg.SMTPServer)
	if err != nil {
		conn.Close()
		return fmt.Errorf("SMTP handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: cfg.SMTPServer}); err != nil {
			return fmt.Errorf("STARTTLS: %w", err)
		}
	}

	if cfg.Username != "" {
		auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.SMTPServer)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP auth: %w", err)
		}
	}

	if err := client.Mail(cfg.FromAddress); err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}
	if err := client.Rcpt(cfg.ToAddress); err != nil {
		return fmt.Errorf("RCPT TO: %w", err)
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := wc.Write([]byte(e.message(papers))); err != nil {
		wc.Close()
		return fmt.Errorf("writing message: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("closing message: %w", err)
	}

	return client.Quit()
}

func (e *EmailChannel) message(papers []types.Paper) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", e.Config.FromAddress)
	fmt.Fprintf(&b, "To: %s\r\n", e.Config.ToAddress)
	fmt.Fprintf(&b, "Subject: arXiv Alert: %d New Papers\r\n", len(papers))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(FormatDigest(papers), "\n", "\r\n"))
	return b.String()
}
