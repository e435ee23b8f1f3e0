package controller

import (
	"errors"

	"portfolio-bridge/internal/dto"
	"portfolio-bridge/internal/pkg/serverutils"
	"portfolio-bridge/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMessageController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	GetStatus(ctx *fiber.Ctx) error
	Test(ctx *fiber.Ctx) error
}

type messageController struct {
	service service.IMessageService
}

func NewMessageController(service service.IMessageService) IMessageController {
	return &messageController{service: service}
}

func (c *messageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/message")
	h.Post("/send", c.Send)
	h.Get("/status/:id", c.GetStatus)
	h.Get("/test", c.Test)
}

func (c *messageController) Send(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}

	if len(req.To) == 0 || req.Message == "" {
		return ctx.Status(fiber.StatusBadRequest).
			JSON(serverutils.ErrorResponse("Recipients (to) and message are required"))
	}

	res, err := c.service.Send(ctx.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRecipients):
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
		case errors.Is(err, service.ErrMessagingNotConfigured):
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
				"details": "Missing API keys in environment variables",
			})
		default:
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(serverutils.UpstreamErrorResponse("Failed to send message", err))
		}
	}
	return ctx.JSON(res)
}

func (c *messageController) GetStatus(ctx *fiber.Ctx) error {
	messageID := ctx.Params("id")

	res, err := c.service.GetStatus(ctx.Context(), messageID)
	if err != nil {
		if errors.Is(err, service.ErrMessagingNotConfigured) {
			return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.UpstreamErrorResponse("Failed to get message status", err))
	}
	return ctx.JSON(res)
}

func (c *messageController) Test(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.TestConnection(ctx.Context()))
}
