package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PushSender sends messages to a push-gateway HTTP endpoint as JSON.
type PushSender struct {
	url        string
	token      string
	target     string
	httpClient *http.Client
}

// NewPushSender creates a push sender. URL and target are required; token
// is optional (sent as a bearer header when set).
func NewPushSender(url, token, target string) (*PushSender, error) {
	if url == "" || target == "" {
		return nil, fmt.Errorf("push sender requires a url and a target")
	}
	return &PushSender{
		url:    url,
		token:  token,
		target: target,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type pushRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

type pushResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Send posts the message and surfaces transport, HTTP and API-level
// failures as errors. The caller decides whether a failure is fatal; for
// reminder batches it never is.
func (p *PushSender) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(pushRequest{To: p.target, Message: text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}

	var parsed pushResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return fmt.Errorf("push gateway returned malformed response: %w", err)
	}
	if !parsed.OK {
		return fmt.Errorf("push gateway error: %s", parsed.Error)
	}
	return nil
}
