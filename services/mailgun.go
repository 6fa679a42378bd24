package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// MailError wraps a mail gateway failure. Mail is best effort: callers log
// these and move on.
type MailError struct {
	Message string
}

func (e *MailError) Error() string {
	return "mailgun: " + e.Message
}

// Mailer delivers transactional mail.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) (messageID string, err error)
}

// MailgunService sends mail through the Mailgun messages API.
type MailgunService struct {
	domain  string
	key     string
	baseURL string
	client  *http.Client
}

func NewMailgun(domain, key, baseURL string) *MailgunService {
	if baseURL == "" {
		baseURL = "https://api.mailgun.net"
	}
	return &MailgunService{
		domain:  domain,
		key:     key,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Send delivers a plain-text message. Gateway rejections come back as
// *MailError.
func (m *MailgunService) Send(ctx context.Context, to, subject, body string) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"from":    fmt.Sprintf("Big Bear's Pizza <bigbear@%s>", m.domain),
		"to":      to,
		"subject": subject,
		"text":    body,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return "", fmt.Errorf("mailgun: build form: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("mailgun: build form: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v3/%s/messages", m.baseURL, m.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth("api", m.key)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := m.client.Do(req)
	if err != nil {
		return "", &MailError{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &MailError{Message: err.Error()}
	}

	if resp.StatusCode >= 400 {
		var failure struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(respBody, &failure); err != nil || failure.Message == "" {
			return "", &MailError{Message: fmt.Sprintf("send failed with status %d", resp.StatusCode)}
		}
		return "", &MailError{Message: failure.Message}
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", &MailError{Message: err.Error()}
	}
	return out.ID, nil
}
