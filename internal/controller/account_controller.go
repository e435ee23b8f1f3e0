package controller

import (
	"portfolio-bridge/internal/pkg/serverutils"
	"portfolio-bridge/internal/service"
	"portfolio-bridge/internal/session"

	"github.com/gofiber/fiber/v2"
)

type IAccountController interface {
	RegisterRoutes(r fiber.Router)
	GetAccounts(ctx *fiber.Ctx) error
	GetDashboard(ctx *fiber.Ctx) error
}

type accountController struct {
	service  service.IInvestmentService
	sessions *session.Store
}

func NewAccountController(service service.IInvestmentService, sessions *session.Store) IAccountController {
	return &accountController{
		service:  service,
		sessions: sessions,
	}
}

func (c *accountController) RegisterRoutes(r fiber.Router) {
	r.Get("/accounts", c.GetAccounts)
	r.Get("/dashboard/investments", c.GetDashboard)
}

func (c *accountController) GetAccounts(ctx *fiber.Ctx) error {
	sess := c.sessions.Load(ctx)
	if !sess.HasAccessToken() {
		return ctx.Status(fiber.StatusUnauthorized).
			JSON(serverutils.ErrorResponse("No access token found"))
	}

	res, err := c.service.GetBalances(ctx.Context(), sess.AccessToken)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.UpstreamErrorResponse("Failed to fetch accounts", err))
	}
	return ctx.JSON(res)
}

func (c *accountController) GetDashboard(ctx *fiber.Ctx) error {
	sess := c.sessions.Load(ctx)
	if !sess.HasAccessToken() {
		return ctx.Status(fiber.StatusUnauthorized).
			JSON(serverutils.ErrorResponse("No access token found"))
	}

	res, err := c.service.GetDashboard(ctx.Context(), sess.AccessToken)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.UpstreamErrorResponse("Failed to fetch investment data", err))
	}

	if !res.HasInvestments {
		return ctx.JSON(fiber.Map{
			"has_investments": false,
			"message":         "No investment accounts found",
		})
	}
	return ctx.JSON(res)
}
