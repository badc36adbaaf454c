package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const resendBaseURL = "https://api.resend.com"

// ResendProvider sends through the Resend transactional API.
type ResendProvider struct {
	apiKey  string
	from    string
	baseURL string
	client  *http.Client
}

func NewResendProvider(apiKey, from string) *ResendProvider {
	return &ResendProvider{
		apiKey:  apiKey,
		from:    from,
		baseURL: resendBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

type resendEmailResponse struct {
	ID string `json:"id"`
}

func (p *ResendProvider) Send(msg Message) (*Response, error) {
	from := msg.From
	if from == "" {
		from = p.from
	}

	payload := resendEmailRequest{
		From:    from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
	}
	// Resend rejects a body-less email; fall back to the subject line.
	if payload.HTML == "" && payload.Text == "" {
		payload.Text = msg.Subject
	}

	var parsed resendEmailResponse
	if err := p.do(http.MethodPost, "/emails", payload, &parsed); err != nil {
		return nil, err
	}

	return &Response{
		Accepted:  []string{msg.To},
		Rejected:  []string{},
		MessageID: parsed.ID,
	}, nil
}

// VerifyConnection lists domains as a cheap authenticated round trip.
func (p *ResendProvider) VerifyConnection() error {
	req, err := http.NewRequest(http.MethodGet, p.baseURL+"/domains", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend connection check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("resend connection check: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (p *ResendProvider) do(method, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(method, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("resend API error: status %d: %s", resp.StatusCode, respBody)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

var _ Provider = (*ResendProvider)(nil)
