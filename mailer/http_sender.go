package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// HTTPSender posts messages to a mail service exposing POST /send.
type HTTPSender struct {
	baseURL string
	client  *http.Client
}

func NewHTTPSender(baseURL string, client *http.Client) *HTTPSender {
	return &HTTPSender{baseURL: baseURL, client: client}
}

func (s *HTTPSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/send", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail service unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mail service returned status %d", resp.StatusCode)
	}
	return nil
}
