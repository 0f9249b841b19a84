package outbound

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DealPayload is the normalized shape forwarded to external automation webhooks.
type DealPayload struct {
	DealID                 string  `json:"deal_id"`
	BusinessName           string  `json:"business_name"`
	ContactName            string  `json:"contact_name,omitempty"`
	ContactEmail           string  `json:"contact_email"`
	Industry               string  `json:"industry,omitempty"`
	FundingAmountRequested float64 `json:"funding_amount_requested,omitempty"`
	Stage                  string  `json:"stage"`
	Source                 string  `json:"source"`
}

// Client POSTs deal payloads to caller-supplied webhook URLs, signing each
// request with the shared secret header.
type Client struct {
	secret     string
	httpClient *http.Client
}

func NewClient(secret string) *Client {
	return &Client{
		secret:     secret,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Forward delivers the payload. A non-2xx response from the remote side is a
// hard failure.
func (c *Client) Forward(ctx context.Context, url string, payload DealPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.secret != "" {
		req.Header.Set("X-Webhook-Secret", c.secret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook returned %d - %s", resp.StatusCode, string(respBody))
	}

	return nil
}
