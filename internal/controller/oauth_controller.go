package controller

import (
	"portfolio-bridge/internal/pkg/logger"
	"portfolio-bridge/internal/service"
	"portfolio-bridge/internal/session"

	"github.com/gofiber/fiber/v2"
)

// OAuth institutions bounce the browser through the provider's domain and
// back here with oauth_state_id and public_token in the query string. The
// callback finishes the same exchange the in-page flow performs, then sends
// the user to the dashboard.
type IOAuthController interface {
	RegisterRoutes(app *fiber.App)
	Callback(ctx *fiber.Ctx) error
}

type oauthController struct {
	service  service.ILinkService
	sessions *session.Store
	log      logger.ILogger
}

func NewOAuthController(service service.ILinkService, sessions *session.Store, log logger.ILogger) IOAuthController {
	return &oauthController{
		service:  service,
		sessions: sessions,
		log:      log,
	}
}

// Registered on the app root, not the /api group: this is a browser-facing
// landing page, not a JSON API.
func (c *oauthController) RegisterRoutes(app *fiber.App) {
	app.Get("/oauth-callback", c.Callback)
}

func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	oauthStateID := ctx.Query("oauth_state_id")
	publicToken := ctx.Query("public_token")

	if oauthStateID == "" || publicToken == "" {
		c.log.Warn("oauth", "Callback missing OAuth parameters, aborting back to entry page", nil)
		return ctx.Redirect("/", fiber.StatusFound)
	}

	res, err := c.service.ExchangePublicToken(ctx.Context(), publicToken)
	if err != nil {
		c.log.Error("oauth", "Callback token exchange failed", map[string]interface{}{
			"oauth_state_id": oauthStateID,
			"error":          err.Error(),
		})
		return ctx.Redirect("/", fiber.StatusFound)
	}

	c.sessions.Save(ctx, session.Session{
		AccessToken: res.AccessToken,
		ItemID:      res.ItemID,
	})

	return ctx.Redirect("/dashboard", fiber.StatusFound)
}
