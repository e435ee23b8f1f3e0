package controller

import (
	"portfolio-bridge/internal/dto"
	"portfolio-bridge/internal/pkg/serverutils"
	"portfolio-bridge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// These two routes take the access token in the request body rather than the
// session; they serve the raw investment views.
type IInvestmentController interface {
	RegisterRoutes(r fiber.Router)
	GetHoldings(ctx *fiber.Ctx) error
	GetTransactions(ctx *fiber.Ctx) error
}

type investmentController struct {
	service service.IInvestmentService
}

func NewInvestmentController(service service.IInvestmentService) IInvestmentController {
	return &investmentController{service: service}
}

func (c *investmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/investments")
	h.Post("/holdings", c.GetHoldings)
	h.Post("/transactions", c.GetTransactions)
}

func (c *investmentController) GetHoldings(ctx *fiber.Ctx) error {
	var req dto.HoldingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	if req.AccessToken == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Missing access_token"))
	}

	res, err := c.service.GetHoldings(ctx.Context(), req.AccessToken)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.UpstreamErrorResponse("Failed to fetch investment holdings", err))
	}
	return ctx.JSON(res)
}

func (c *investmentController) GetTransactions(ctx *fiber.Ctx) error {
	var req dto.TransactionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	if req.AccessToken == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Missing access_token"))
	}

	res, err := c.service.GetTransactions(ctx.Context(), req.AccessToken, req.StartDate, req.EndDate)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.UpstreamErrorResponse("Failed to fetch investment transactions", err))
	}
	return ctx.JSON(res)
}
