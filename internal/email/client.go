package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/transferdesk/advising-backend/internal/logger"
	"github.com/transferdesk/advising-backend/internal/utils"
)

// Client is the outbound-mail collaborator. The backend only ever sends one
// shape of message: a short note with an exported packet attached.
type Client interface {
	Send(ctx context.Context, req SendRequest) error
}

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type SendRequest struct {
	ToEmail     string
	ToName      string
	Subject     string
	PlainText   string
	Attachments []Attachment
}

type Config struct {
	APIKey    string
	BaseURL   string
	FromEmail string
	FromName  string
	Timeout   time.Duration
	MaxRetries int
}

func ConfigFromEnv(log *logger.Logger) Config {
	timeoutSec := utils.GetEnvAsInt("SENDGRID_TIMEOUT_SECONDS", 30, log)
	return Config{
		APIKey:     strings.TrimSpace(os.Getenv("SENDGRID_API_KEY")),
		BaseURL:    strings.TrimSpace(os.Getenv("SENDGRID_BASE_URL")),
		FromEmail:  utils.GetEnv("SENDGRID_FROM_EMAIL", "advising@example.edu", log),
		FromName:   utils.GetEnv("SENDGRID_FROM_NAME", "Transfer Advising", log),
		Timeout:    time.Duration(timeoutSec) * time.Second,
		MaxRetries: utils.GetEnvAsInt("SENDGRID_MAX_RETRIES", 3, log),
	}
}

type sendgridClient struct {
	log  *logger.Logger
	cfg  Config
	http *http.Client
}

func New(baseLog *logger.Logger, cfg Config) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing SENDGRID_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.sendgrid.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &sendgridClient{
		log:  baseLog.With("service", "EmailClient"),
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgPayload struct {
	Personalizations []struct {
		To []sgAddress `json:"to"`
	} `json:"personalizations"`
	From    sgAddress `json:"from"`
	Subject string    `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
	Attachments []sgAttachment `json:"attachments,omitempty"`
}

type sgAttachment struct {
	Content     string `json:"content"`
	Type        string `json:"type,omitempty"`
	Filename    string `json:"filename"`
	Disposition string `json:"disposition"`
}

func (c *sendgridClient) Send(ctx context.Context, req SendRequest) error {
	if strings.TrimSpace(req.ToEmail) == "" {
		return fmt.Errorf("recipient email required")
	}
	payload := sgPayload{
		From:    sgAddress{Email: c.cfg.FromEmail, Name: c.cfg.FromName},
		Subject: req.Subject,
	}
	payload.Personalizations = append(payload.Personalizations, struct {
		To []sgAddress `json:"to"`
	}{To: []sgAddress{{Email: req.ToEmail, Name: req.ToName}}})
	payload.Content = append(payload.Content, struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{Type: "text/plain", Value: req.PlainText})
	for _, a := range req.Attachments {
		payload.Attachments = append(payload.Attachments, sgAttachment{
			Content:     base64.StdEncoding.EncodeToString(a.Data),
			Type:        a.ContentType,
			Filename:    a.Filename,
			Disposition: "attachment",
		})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal mail payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
		lastErr = c.post(ctx, body)
		if lastErr == nil {
			return nil
		}
		c.log.Warn("Mail send attempt failed", "attempt", attempt, "error", lastErr)
	}
	return fmt.Errorf("send mail: %w", lastErr)
}

func (c *sendgridClient) post(ctx context.Context, body []byte) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
}
