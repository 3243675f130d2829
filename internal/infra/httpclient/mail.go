package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/company-sys/backend/internal/config"
	"go.uber.org/zap"
)

// MailClient posts e-mails to a mail relay API. With no endpoint configured
// it only logs the message it would have sent.
type MailClient struct {
	Endpoint   string
	APIKey     string
	From       string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewMailClient(cfg *config.Config, log *zap.Logger) *MailClient {
	timeout := cfg.Mail.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MailClient{
		Endpoint: cfg.Mail.Endpoint,
		APIKey:   cfg.Mail.APIKey,
		From:     cfg.Mail.FromEmail,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		Logger: log,
	}
}

// Mail is the relay request body.
type Mail struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// Stubbed reports whether Send only logs.
func (c *MailClient) Stubbed() bool { return c.Endpoint == "" }

func (c *MailClient) Send(ctx context.Context, to, subject, text string) error {
	m := Mail{From: c.From, To: []string{to}, Subject: subject, Text: text}
	if c.Stubbed() {
		c.Logger.Info("mail (stub)",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.String("text", text))
		return nil
	}

	body, err := sonic.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal mail: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.Logger.Error("mail request failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
		return fmt.Errorf("mail relay returned status %d", resp.StatusCode)
	}
	return nil
}
