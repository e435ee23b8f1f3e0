package controller

import (
	"errors"

	"portfolio-bridge/internal/dto"
	"portfolio-bridge/internal/pkg/serverutils"
	"portfolio-bridge/internal/service"
	"portfolio-bridge/internal/session"

	"github.com/gofiber/fiber/v2"
)

type ILinkController interface {
	RegisterRoutes(r fiber.Router)
	CreateLinkToken(ctx *fiber.Ctx) error
	ExchangePublicToken(ctx *fiber.Ctx) error
}

type linkController struct {
	service  service.ILinkService
	sessions *session.Store
}

func NewLinkController(service service.ILinkService, sessions *session.Store) ILinkController {
	return &linkController{
		service:  service,
		sessions: sessions,
	}
}

func (c *linkController) RegisterRoutes(r fiber.Router) {
	r.Post("/create-link-token", c.CreateLinkToken)
	r.Post("/exchange-public-token", c.ExchangePublicToken)
}

func (c *linkController) CreateLinkToken(ctx *fiber.Ctx) error {
	var req dto.CreateLinkTokenRequest
	// The body is optional: the widget sends {} when no phone is entered.
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
		}
	}

	res, err := c.service.CreateLinkToken(ctx.Context(), req.PhoneNumber, ctx.Hostname())
	if err != nil {
		if errors.Is(err, service.ErrInvalidPhoneNumber) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.UpstreamErrorResponse("Failed to create link token", err))
	}
	return ctx.JSON(res)
}

func (c *linkController) ExchangePublicToken(ctx *fiber.Ctx) error {
	var req dto.ExchangeTokenRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}

	if req.PublicToken == "" {
		return ctx.Status(fiber.StatusBadRequest).
			JSON(serverutils.ErrorResponse("Missing public_token in request body"))
	}

	res, err := c.service.ExchangePublicToken(ctx.Context(), req.PublicToken)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.UpstreamErrorResponse("Failed to exchange public token", err))
	}

	// The one session mutation in the whole system.
	c.sessions.Save(ctx, session.Session{
		AccessToken: res.AccessToken,
		ItemID:      res.ItemID,
	})

	return ctx.JSON(dto.ExchangeTokenResponse{
		Success: true,
		ItemID:  res.ItemID,
	})
}
