package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// payload is the wire body posted to the configured webhook.
type payload struct {
	Event      string   `json:"event"`
	Message    string   `json:"message"`
	Timestamp  string   `json:"timestamp"`
	Severity   Severity `json:"severity"`
	Amount     string   `json:"amount"`
	Recipients []string `json:"recipients"`
}

// Notifier posts alert notifications over HTTP.
type Notifier struct {
	client     *http.Client
	recipients []string
}

func NewNotifier(recipients []string) *Notifier {
	return &Notifier{
		client:     &http.Client{Timeout: 10 * time.Second},
		recipients: recipients,
	}
}

// Send posts one alert to the endpoint. A non-2xx response is a delivery
// failure.
func (n *Notifier) Send(ctx context.Context, endpoint string, a Alert) error {
	body := payload{
		Event:      "Critical Alert: " + a.Type,
		Message:    a.Message,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Severity:   a.Severity,
		Amount:     a.Amount,
		Recipients: n.recipients,
	}
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("alert: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("alert: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("alert: deliver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("alert: endpoint returned %d", resp.StatusCode)
	}
	return nil
}
