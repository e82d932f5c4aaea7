package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kuldeep27396/prime-backend/internal/config"
)

// EmailSender delivers transactional mail through the external provider.
type EmailSender interface {
	Send(ctx context.Context, to, toName, subject, html string) error
	IsConfigured() bool
}

// EmailClient is the HTTP implementation of EmailSender.
type EmailClient struct {
	cfg    config.EmailConfig
	client *http.Client
}

func NewEmailClient(cfg config.EmailConfig) *EmailClient {
	return &EmailClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type sendEmailPayload struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Send posts one message to the provider. Bounded by the configured
// timeout; callers treat failure as a retryable follow-up, never a reason
// to roll back committed state.
func (c *EmailClient) Send(ctx context.Context, to, toName, subject, html string) error {
	recipient := to
	if toName != "" {
		recipient = fmt.Sprintf("%s <%s>", toName, to)
	}

	body, err := json.Marshal(sendEmailPayload{
		To:      recipient,
		From:    fmt.Sprintf("%s <%s>", c.cfg.FromName, c.cfg.FromEmail),
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("email provider returned %d", resp.StatusCode)
	}
	return nil
}

// IsConfigured reports whether an API key is present. Without one, sends
// are skipped rather than failed.
func (c *EmailClient) IsConfigured() bool {
	return c.cfg.APIKey != ""
}
