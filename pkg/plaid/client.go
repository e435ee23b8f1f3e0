package plaid

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client is a thin typed wrapper over the aggregation provider's REST API.
// Every call is one synchronous request with the server credentials attached;
// nothing is retried and non-2xx responses surface as *APIError.
type Client struct {
	http     *resty.Client
	clientID string
	secret   string
}

var environments = map[string]string{
	"sandbox":     "https://sandbox.plaid.com",
	"development": "https://development.plaid.com",
	"production":  "https://production.plaid.com",
}

// APIError carries the upstream error body verbatim so handlers can echo it
// in the response "details" field.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("plaid: upstream returned %d", e.StatusCode)
}

func (e *APIError) ResponseBody() string {
	return e.Body
}

func NewClient(clientID, secret, environment string) *Client {
	baseURL, ok := environments[environment]
	if !ok {
		baseURL = environments["sandbox"]
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(30 * time.Second)
	client.SetHeader("Plaid-Version", "2020-09-14")
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		http:     client,
		clientID: clientID,
		secret:   secret,
	}
}

// NewClientWithBaseURL targets an explicit base URL instead of a named
// provider environment. Used by tests against stub servers.
func NewClientWithBaseURL(clientID, secret, baseURL string) *Client {
	c := NewClient(clientID, secret, "sandbox")
	c.http.SetBaseURL(baseURL)
	return c
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(out).
		Post(path)
	if err != nil {
		return fmt.Errorf("plaid: request to %s failed: %w", path, err)
	}
	if resp.IsError() {
		return &APIError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	return nil
}

// CreateLinkToken requests a short-lived token that authorizes one hosted
// linking-widget session. redirectURI must exactly match a URI registered
// with the provider; an empty value silently disables OAuth institutions in
// the widget. phoneNumber, when set, must already be E.164.
func (c *Client) CreateLinkToken(ctx context.Context, clientUserID, redirectURI, phoneNumber string) (*LinkTokenResponse, error) {
	req := LinkTokenCreateRequest{
		ClientID: c.clientID,
		Secret:   c.secret,
		User: LinkTokenUser{
			ClientUserID: clientUserID,
			PhoneNumber:  phoneNumber,
		},
		ClientName:   "Portfolio App",
		Language:     "en",
		Products:     []string{"auth", "transactions"},
		CountryCodes: []string{"US"},
		RedirectURI:  redirectURI,
	}

	var out LinkTokenResponse
	if err := c.post(ctx, "/link/token/create", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExchangePublicToken trades the widget's single-use public token for a
// durable access token. The public token expires after a short upstream
// window, so this is one-shot per linking attempt.
func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (*ExchangeTokenResponse, error) {
	req := publicTokenExchangeRequest{
		ClientID:    c.clientID,
		Secret:      c.secret,
		PublicToken: publicToken,
	}

	var out ExchangeTokenResponse
	if err := c.post(ctx, "/item/public_token/exchange", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAccounts(ctx context.Context, accessToken string) (*AccountsResponse, error) {
	var out AccountsResponse
	if err := c.post(ctx, "/accounts/get", c.tokenReq(accessToken), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBalances is the balances variant of GetAccounts: same shape, but the
// provider refreshes balance data before responding.
func (c *Client) GetBalances(ctx context.Context, accessToken string) (*AccountsResponse, error) {
	var out AccountsResponse
	if err := c.post(ctx, "/accounts/balance/get", c.tokenReq(accessToken), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetHoldings(ctx context.Context, accessToken string) (*HoldingsResponse, error) {
	var out HoldingsResponse
	if err := c.post(ctx, "/investments/holdings/get", c.tokenReq(accessToken), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInvestmentTransactions fetches transactions inside [startDate, endDate],
// both formatted YYYY-MM-DD.
func (c *Client) GetInvestmentTransactions(ctx context.Context, accessToken, startDate, endDate string) (*InvestmentTransactionsResponse, error) {
	req := investmentTransactionsRequest{
		ClientID:    c.clientID,
		Secret:      c.secret,
		AccessToken: accessToken,
		StartDate:   startDate,
		EndDate:     endDate,
	}

	var out InvestmentTransactionsResponse
	if err := c.post(ctx, "/investments/transactions/get", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) tokenReq(accessToken string) accessTokenRequest {
	return accessTokenRequest{
		ClientID:    c.clientID,
		Secret:      c.secret,
		AccessToken: accessToken,
	}
}
