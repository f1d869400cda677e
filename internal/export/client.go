package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the Zoho Books invoice-creation endpoint. It carries no
// retry or backoff logic; transient-failure policy belongs to the caller.
type Client struct {
	baseURL    string
	oauthToken string
	orgID      string
	httpClient *http.Client
}

// NewClient constructs a Zoho Books client. baseURL is injectable so tests
// can point it at a local server.
func NewClient(baseURL, oauthToken, orgID string) *Client {
	return &Client{
		baseURL:    baseURL,
		oauthToken: oauthToken,
		orgID:      orgID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// zohoResponse is the envelope Zoho wraps every response in. Code 0 means
// success; anything else carries a human-readable message.
type zohoResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Invoice struct {
		InvoiceID string `json:"invoice_id"`
	} `json:"invoice"`
}

// CreateInvoice submits the payload and returns the remote invoice ID.
func (c *Client) CreateInvoice(ctx context.Context, payload InvoicePayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal invoice payload: %w", err)
	}

	url := fmt.Sprintf("%s/invoices?organization_id=%s", c.baseURL, c.orgID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Zoho-oauthtoken "+c.oauthToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("zoho request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read zoho response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("zoho returned HTTP %d: %s", resp.StatusCode, string(raw))
	}

	var zr zohoResponse
	if err := json.Unmarshal(raw, &zr); err != nil {
		return "", fmt.Errorf("failed to decode zoho response: %w", err)
	}
	if zr.Code != 0 {
		return "", fmt.Errorf("zoho rejected invoice: code %d: %s", zr.Code, zr.Message)
	}

	return zr.Invoice.InvoiceID, nil
}
