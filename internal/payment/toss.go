package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ApprovalRequest is the payload of one payment-approval attempt. OrderID
// must be a fresh token per attempt; use NewOrderID.
type ApprovalRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
}

// Client abstracts the payment gateway so services can be tested without
// touching a real money movement. Approve must be called at most once per
// logical payment attempt; the client never retries.
type Client interface {
	Approve(ctx context.Context, req ApprovalRequest) error
}

// DeclinedError is returned when the gateway answered but refused the
// payment. Code and Message come from the gateway's error body.
type DeclinedError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DeclinedError) Error() string {
	return fmt.Sprintf("payment declined [%s]: %s", e.Code, e.Message)
}

// NewOrderID generates the caller-side order identifier the gateway requires:
// a sufficiently random 16-character hex token, never reused across attempts.
func NewOrderID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// TossClient talks to the Toss payments approval endpoint.
type TossClient struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

// NewTossClient builds a client for the given base URL and secret key.
// Toss uses basic auth with the secret key as username and empty password.
func NewTossClient(baseURL, secretKey string) *TossClient {
	return &TossClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(secretKey+":")),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Approve sends the approval request. A 2xx answer means the payment settled.
// Any other answer is a *DeclinedError; transport failures are returned as-is.
func (c *TossClient) Approve(ctx context.Context, req ApprovalRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payments/confirm", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", c.authHeader)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("payment gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	declined := &DeclinedError{}
	if err := json.NewDecoder(resp.Body).Decode(declined); err != nil || declined.Code == "" {
		declined.Code = fmt.Sprintf("HTTP_%d", resp.StatusCode)
		declined.Message = "payment gateway returned an unexpected response"
	}
	return declined
}
