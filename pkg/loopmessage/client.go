package loopmessage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.loopmessage.com"

// MessageResponse is the provider's reply for a sent or queried message.
// Delivery status beyond this immediate response is not tracked.
type MessageResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type sendRequest struct {
	Recipients []string `json:"recipients"`
	Content    string   `json:"content"`
	MediaURL   string   `json:"media_url,omitempty"`
}

type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("loopmessage: upstream returned %d: %s", e.StatusCode, e.message())
}

func (e *APIError) ResponseBody() string {
	return e.Body
}

// message pulls a human-readable message out of the error body. The provider
// sometimes answers with HTML instead of JSON, so fall back to the raw text.
func (e *APIError) message() string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(e.Body), &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	if strings.Contains(e.Body, "<!DOCTYPE") {
		return "server returned HTML instead of JSON, check API credentials and URL"
	}
	if e.Body == "" {
		return "empty error body"
	}
	return e.Body
}

// Client forwards outbound messages to the messaging provider with the
// service credentials attached. No retry, no idempotency key: a duplicate
// submission produces a duplicate outbound message.
type Client struct {
	http *resty.Client
}

func NewClient(authKey, secretKey string) *Client {
	client := resty.New()
	client.SetBaseURL(defaultBaseURL)
	client.SetTimeout(30 * time.Second)
	client.SetAuthToken(authKey)
	client.SetHeader("X-API-Secret", secretKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{http: client}
}

// NewClientWithBaseURL targets an explicit base URL. Used by tests.
func NewClientWithBaseURL(authKey, secretKey, baseURL string) *Client {
	c := NewClient(authKey, secretKey)
	c.http.SetBaseURL(baseURL)
	return c
}

func (c *Client) check(resp *resty.Response, err error, what string) error {
	if err != nil {
		return fmt.Errorf("loopmessage: %s failed: %w", what, err)
	}
	if resp.IsError() {
		return &APIError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	return nil
}

// Send submits one outbound message to every recipient.
func (c *Client) Send(ctx context.Context, recipients []string, message, mediaURL string) (*MessageResponse, error) {
	var out MessageResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(sendRequest{
			Recipients: recipients,
			Content:    message,
			MediaURL:   mediaURL,
		}).
		SetResult(&out).
		Post("/v1/messages")
	if err := c.check(resp, err, "send message"); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStatus reads the provider's current status for a previously sent message.
func (c *Client) GetStatus(ctx context.Context, messageID string) (*MessageResponse, error) {
	var out MessageResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/v1/messages/" + messageID)
	if err := c.check(resp, err, "get message status"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping checks that the configured credentials are accepted by the provider.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/v1/status")
	return c.check(resp, err, "ping")
}
