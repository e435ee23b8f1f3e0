package toolhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	openai "github.com/sashabaranov/go-openai"
)

const defaultBaseURL = "https://api.toolhouse.ai"

// Terminal agent-run statuses. Anything else means the run is still going.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// AgentRun is the orchestration provider's job entity. Results are kept as
// raw JSON and passed through to the browser untouched.
type AgentRun struct {
	ID      string            `json:"id"`
	ChatID  string            `json:"chat_id"`
	Status  string            `json:"status"`
	Results []json.RawMessage `json:"results"`
}

type agentRunEnvelope struct {
	Data AgentRun `json:"data"`
}

type createRunRequest struct {
	ChatID string `json:"chat_id"`
}

type continueRunRequest struct {
	Message string `json:"message"`
}

type getToolsRequest struct {
	Provider string `json:"provider"`
}

type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("toolhouse: upstream returned %d", e.StatusCode)
}

func (e *APIError) ResponseBody() string {
	return e.Body
}

// Client talks to the agent-orchestration API: create a run, push a message
// into it, and read its status until the job terminates.
type Client struct {
	http *resty.Client
}

func NewClient(apiKey string) *Client {
	client := resty.New()
	client.SetBaseURL(defaultBaseURL)
	client.SetTimeout(30 * time.Second)
	client.SetAuthToken(apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{http: client}
}

// NewClientWithBaseURL targets an explicit base URL. Used by tests.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.http.SetBaseURL(baseURL)
	return c
}

func (c *Client) check(resp *resty.Response, err error, what string) error {
	if err != nil {
		return fmt.Errorf("toolhouse: %s failed: %w", what, err)
	}
	if resp.IsError() {
		return &APIError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	return nil
}

// CreateRun starts a new agent run bound to an existing chat/template.
func (c *Client) CreateRun(ctx context.Context, chatID string) (*AgentRun, error) {
	var out agentRunEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(createRunRequest{ChatID: chatID}).
		SetResult(&out).
		Post("/v1/agent-runs")
	if err := c.check(resp, err, "create run"); err != nil {
		return nil, err
	}
	if out.Data.ID == "" {
		return nil, fmt.Errorf("toolhouse: create run returned no run id")
	}
	return &out.Data, nil
}

// ContinueRun pushes a message into an in-progress run.
func (c *Client) ContinueRun(ctx context.Context, runID, message string) (*AgentRun, error) {
	var out agentRunEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(continueRunRequest{Message: message}).
		SetResult(&out).
		Put("/v1/agent-runs/" + runID)
	if err := c.check(resp, err, "continue run"); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// GetRun reads run status and results. Safe to call repeatedly; each call is
// an idempotent read.
func (c *Client) GetRun(ctx context.Context, runID string) (*AgentRun, error) {
	var out agentRunEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/v1/agent-runs/" + runID)
	if err := c.check(resp, err, "get run"); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// GetTools fetches the provider's tool definitions in OpenAI function-call
// format, ready to hand to a chat completion request.
func (c *Client) GetTools(ctx context.Context, provider string) ([]openai.Tool, error) {
	var out []openai.Tool
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(getToolsRequest{Provider: provider}).
		SetResult(&out).
		Post("/v1/get_tools")
	if err := c.check(resp, err, "get tools"); err != nil {
		return nil, err
	}
	return out, nil
}
