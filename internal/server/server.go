package server

import (
	"log"

	"portfolio-bridge/internal/bootstrap"
	"portfolio-bridge/internal/config"
	"portfolio-bridge/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Initialize Fiber App
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	// The session cookie is opaque to the browser: encrypted here, decrypted
	// transparently before handlers see it. Without a configured key the
	// sessions do not survive a restart.
	key := cfg.App.CookieEncryptKey
	if key == "" {
		key = encryptcookie.GenerateKey()
		log.Println("Warning: COOKIE_ENCRYPT_KEY not set, generated an ephemeral key (sessions reset on restart)")
	}
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: key,
	}))

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.LinkController.RegisterRoutes(api)
	c.AccountController.RegisterRoutes(api)
	c.InvestmentController.RegisterRoutes(api)
	c.AnalysisController.RegisterRoutes(api)
	c.MessageController.RegisterRoutes(api)

	// Browser-facing, lives outside /api
	c.OAuthController.RegisterRoutes(app)
}
