package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"portfolio-bridge/internal/config"
	"portfolio-bridge/internal/pkg/logger"
	"portfolio-bridge/pkg/plaid"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrInvalidPhoneNumber marks a client input problem, mapped to 400 by the
// controller; everything else out of this service is an upstream failure.
var ErrInvalidPhoneNumber = errors.New("phone number must be E.164 or a 10-digit US number")

type ILinkService interface {
	CreateLinkToken(ctx context.Context, phoneNumber, requestHost string) (*plaid.LinkTokenResponse, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (*plaid.ExchangeTokenResponse, error)
}

type linkService struct {
	client   *plaid.Client
	cfg      *config.Config
	log      logger.ILogger
	validate *validator.Validate
}

func NewLinkService(client *plaid.Client, cfg *config.Config, log logger.ILogger) ILinkService {
	return &linkService{
		client:   client,
		cfg:      cfg,
		log:      log,
		validate: validator.New(),
	}
}

func (s *linkService) CreateLinkToken(ctx context.Context, phoneNumber, requestHost string) (*plaid.LinkTokenResponse, error) {
	phone, err := s.normalizePhoneNumber(phoneNumber)
	if err != nil {
		return nil, err
	}

	redirectURI := DeriveRedirectURI(s.cfg, requestHost)
	if redirectURI == "" && s.cfg.App.Environment == "production" {
		// OAuth institutions will silently fail in the widget without one.
		s.log.Warn("link", "No redirect URI could be derived; OAuth institutions disabled", nil)
	}

	clientUserID := "user-" + uuid.NewString()

	s.log.Info("link", "Creating link token", map[string]interface{}{
		"client_user_id": clientUserID,
		"redirect_uri":   redirectURI,
		"has_phone":      phone != "",
	})

	res, err := s.client.CreateLinkToken(ctx, clientUserID, redirectURI, phone)
	if err != nil {
		s.log.Error("link", "Failed to create link token", map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	return res, nil
}

func (s *linkService) ExchangePublicToken(ctx context.Context, publicToken string) (*plaid.ExchangeTokenResponse, error) {
	res, err := s.client.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		s.log.Error("link", "Failed to exchange public token", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	s.log.Info("link", "Public token exchanged", map[string]interface{}{"item_id": res.ItemID})
	return res, nil
}

// normalizePhoneNumber brings a raw phone input to E.164: values already
// carrying a leading "+" pass through unchanged (the provider is the
// authority on their validity and rejects bad ones itself), a bare 10-digit
// US number gets the "+1" country code. Empty input means the caller did not
// supply a phone at all, which is fine.
func (s *linkService) normalizePhoneNumber(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}

	if strings.HasPrefix(trimmed, "+") {
		if err := s.validate.Var(trimmed, "e164"); err != nil {
			s.log.Warn("link", "Phone number is not E.164, forwarding as-is", map[string]interface{}{
				"phone_number": trimmed,
			})
		}
		return trimmed, nil
	}

	if len(trimmed) == 10 && allDigits(trimmed) {
		return "+1" + trimmed, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidPhoneNumber, trimmed)
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// DeriveRedirectURI computes the OAuth redirect URI for the current
// deployment. Platform deployments use the platform-assigned hostname, any
// other non-localhost request host is used next, and the configured sandbox
// URI (or the localhost default) is the development fallback. Getting this
// wrong is the most common failure mode of the whole linking flow: the
// provider only accepts pre-registered URIs.
func DeriveRedirectURI(cfg *config.Config, requestHost string) string {
	switch cfg.Deploy.PlatformEnv {
	case "production", "preview":
		if cfg.Deploy.PlatformURL != "" {
			return "https://" + cfg.Deploy.PlatformURL + "/oauth-callback"
		}
	}

	if requestHost != "" && !strings.Contains(requestHost, "localhost") {
		return "https://" + requestHost + "/oauth-callback"
	}

	if cfg.Plaid.RedirectURI != "" {
		return cfg.Plaid.RedirectURI
	}
	return "http://localhost:3000/oauth-callback"
}
