package bootstrap

import (
	"portfolio-bridge/internal/config"
	"portfolio-bridge/internal/controller"
	"portfolio-bridge/internal/pkg/logger"
	"portfolio-bridge/internal/service"
	"portfolio-bridge/internal/session"
	"portfolio-bridge/pkg/loopmessage"
	"portfolio-bridge/pkg/plaid"
	"portfolio-bridge/pkg/toolhouse"

	openai "github.com/sashabaranov/go-openai"
)

type Container struct {
	// Controllers
	LinkController       controller.ILinkController
	OAuthController      controller.IOAuthController
	AccountController    controller.IAccountController
	InvestmentController controller.IInvestmentController
	AnalysisController   controller.IAnalysisController
	MessageController    controller.IMessageController

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	sessions := session.NewStore(cfg.App.SessionCookieName, cfg.App.Environment == "production")

	// 2. Upstream clients
	plaidClient := plaid.NewClient(cfg.Plaid.ClientID, cfg.Plaid.Secret, cfg.Plaid.Environment)
	agentClient := toolhouse.NewClient(cfg.Toolhouse.APIKey)
	messageClient := loopmessage.NewClient(cfg.LoopMessage.AuthKey, cfg.LoopMessage.SecretKey)
	llmClient := openai.NewClient(cfg.OpenAI.APIKey)

	// 3. Services
	linkService := service.NewLinkService(plaidClient, cfg, sysLogger)
	investmentService := service.NewInvestmentService(plaidClient, sysLogger)
	analysisService := service.NewAnalysisService(
		agentClient,
		cfg.Toolhouse.APIKey,
		llmClient,
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		sysLogger,
	)
	messagingConfigured := cfg.LoopMessage.AuthKey != "" && cfg.LoopMessage.SecretKey != ""
	messageService := service.NewMessageService(messageClient, messagingConfigured, sysLogger)

	// 4. Controllers
	return &Container{
		LinkController:       controller.NewLinkController(linkService, sessions),
		OAuthController:      controller.NewOAuthController(linkService, sessions, sysLogger),
		AccountController:    controller.NewAccountController(investmentService, sessions),
		InvestmentController: controller.NewInvestmentController(investmentService),
		AnalysisController:   controller.NewAnalysisController(analysisService),
		MessageController:    controller.NewMessageController(messageService),
		Logger:               sysLogger,
	}
}
