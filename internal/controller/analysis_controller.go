package controller

import (
	"errors"

	"portfolio-bridge/internal/dto"
	"portfolio-bridge/internal/pkg/serverutils"
	"portfolio-bridge/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnalysisController interface {
	RegisterRoutes(r fiber.Router)
	StartAnalysis(ctx *fiber.Ctx) error
	CheckStatus(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
}

type analysisController struct {
	service service.IAnalysisService
}

func NewAnalysisController(service service.IAnalysisService) IAnalysisController {
	return &analysisController{service: service}
}

func (c *analysisController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analysis")
	h.Post("/start", c.StartAnalysis)
	h.Get("/status", c.CheckStatus)
	h.Post("/chat", c.Chat)
}

func (c *analysisController) StartAnalysis(ctx *fiber.Ctx) error {
	var req dto.StartAnalysisRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}

	// Input checks come before any upstream call.
	if len(req.Holdings) == 0 {
		return ctx.Status(fiber.StatusBadRequest).
			JSON(serverutils.ErrorResponse("Invalid or missing holdings data"))
	}
	if req.ChatID == "" {
		return ctx.Status(fiber.StatusBadRequest).
			JSON(serverutils.ErrorResponse("Missing Toolhouse chat ID"))
	}

	res, err := c.service.StartAnalysis(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrAgentProviderNotConfigured) {
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(serverutils.ErrorResponse(err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.UpstreamErrorResponse("Failed to analyze investment data", err))
	}
	return ctx.JSON(res)
}

func (c *analysisController) CheckStatus(ctx *fiber.Ctx) error {
	runID := ctx.Query("runId")
	if runID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Missing agent run ID"))
	}

	// wait=true holds the request open until the run terminates (or the wait
	// budget runs out), saving the caller the polling loop.
	var (
		res *dto.AnalysisStatusResponse
		err error
	)
	if ctx.QueryBool("wait") {
		res, err = c.service.AwaitCompletion(ctx.Context(), runID)
	} else {
		res, err = c.service.CheckStatus(ctx.Context(), runID)
	}
	if err != nil {
		if errors.Is(err, service.ErrAgentProviderNotConfigured) {
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(serverutils.ErrorResponse(err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.UpstreamErrorResponse("Failed to check agent run status", err))
	}
	return ctx.JSON(res)
}

func (c *analysisController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Invalid request body"))
	}
	if req.Query == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Query is required"))
	}

	res, err := c.service.Chat(ctx.Context(), req.Query)
	if err != nil {
		if errors.Is(err, service.ErrLLMNotConfigured) {
			return ctx.Status(fiber.StatusInternalServerError).
				JSON(serverutils.ErrorResponse(err.Error()))
		}
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.UpstreamErrorResponse("An error occurred while processing your request", err))
	}
	return ctx.JSON(fiber.Map{"response": res})
}
