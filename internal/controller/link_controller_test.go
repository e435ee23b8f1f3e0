package controller

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio-bridge/internal/service"
	"portfolio-bridge/internal/session"
	"portfolio-bridge/pkg/plaid"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func newLinkApp(svc service.ILinkService) *fiber.App {
	app := fiber.New()
	sessions := session.NewStore("portfolioapp_session", false)
	NewLinkController(svc, sessions).RegisterRoutes(app.Group("/api"))
	return app
}

func TestCreateLinkTokenWithoutBody(t *testing.T) {
	svc := &mockLinkService{
		createLinkTokenFn: func(ctx context.Context, phoneNumber, requestHost string) (*plaid.LinkTokenResponse, error) {
			assert.Empty(t, phoneNumber)
			return &plaid.LinkTokenResponse{LinkToken: "link-sandbox-abc"}, nil
		},
	}
	app := newLinkApp(svc)

	req := httptest.NewRequest("POST", "/api/create-link-token", nil)
	res, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	body := decodeBody(res)
	assert.Equal(t, "link-sandbox-abc", body["link_token"])
}

func TestCreateLinkTokenForwardsPhoneNumber(t *testing.T) {
	svc := &mockLinkService{
		createLinkTokenFn: func(ctx context.Context, phoneNumber, requestHost string) (*plaid.LinkTokenResponse, error) {
			assert.Equal(t, "4155551234", phoneNumber)
			return &plaid.LinkTokenResponse{LinkToken: "link-sandbox-abc"}, nil
		},
	}
	app := newLinkApp(svc)

	req := httptest.NewRequest("POST", "/api/create-link-token", strings.NewReader(`{"phone_number":"4155551234"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestCreateLinkTokenInvalidPhoneIs400(t *testing.T) {
	svc := &mockLinkService{
		createLinkTokenFn: func(ctx context.Context, phoneNumber, requestHost string) (*plaid.LinkTokenResponse, error) {
			return nil, service.ErrInvalidPhoneNumber
		},
	}
	app := newLinkApp(svc)

	req := httptest.NewRequest("POST", "/api/create-link-token", strings.NewReader(`{"phone_number":"123"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
}

func TestCreateLinkTokenUpstreamFailureIs500(t *testing.T) {
	svc := &mockLinkService{
		createLinkTokenFn: func(ctx context.Context, phoneNumber, requestHost string) (*plaid.LinkTokenResponse, error) {
			return nil, &plaid.APIError{StatusCode: 400, Body: `{"error_code":"INVALID_API_KEYS"}`}
		},
	}
	app := newLinkApp(svc)

	req := httptest.NewRequest("POST", "/api/create-link-token", nil)
	res, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)

	body := decodeBody(res)
	assert.Equal(t, "Failed to create link token", body["error"])
	assert.Contains(t, body["details"], "INVALID_API_KEYS")
}

func TestExchangePublicTokenMissingTokenIs400(t *testing.T) {
	called := false
	svc := &mockLinkService{
		exchangePublicTokenFn: func(ctx context.Context, publicToken string) (*plaid.ExchangeTokenResponse, error) {
			called = true
			return nil, nil
		},
	}
	app := newLinkApp(svc)

	req := httptest.NewRequest("POST", "/api/exchange-public-token", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.False(t, called, "missing public_token must be rejected before any upstream call")

	body := decodeBody(res)
	assert.Equal(t, "Missing public_token in request body", body["error"])
}

func TestExchangePublicTokenSavesSession(t *testing.T) {
	svc := &mockLinkService{
		exchangePublicTokenFn: func(ctx context.Context, publicToken string) (*plaid.ExchangeTokenResponse, error) {
			assert.Equal(t, "public-sandbox-xyz", publicToken)
			return &plaid.ExchangeTokenResponse{AccessToken: "access-1", ItemID: "item-1"}, nil
		},
	}
	app := newLinkApp(svc)

	req := httptest.NewRequest("POST", "/api/exchange-public-token", strings.NewReader(`{"public_token":"public-sandbox-xyz"}`))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	body := decodeBody(res)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "item-1", body["item_id"])
	// The access token lives in the cookie, never in the response body.
	assert.NotContains(t, body, "access_token")

	// Parse the raw header: net/http's cookie parser drops the plaintext
	// JSON value (in production the encryption middleware base64-encodes it
	// before it reaches the wire).
	var cookieValue string
	for _, raw := range res.Header.Values("Set-Cookie") {
		if !strings.HasPrefix(raw, "portfolioapp_session=") {
			continue
		}
		cookieValue = strings.TrimPrefix(raw, "portfolioapp_session=")
		if i := strings.Index(cookieValue, ";"); i >= 0 {
			cookieValue = cookieValue[:i]
		}
	}
	assert.NotEmpty(t, cookieValue)

	var sess session.Session
	assert.NoError(t, json.Unmarshal([]byte(cookieValue), &sess))
	assert.Equal(t, "access-1", sess.AccessToken)
	assert.Equal(t, "item-1", sess.ItemID)
}
