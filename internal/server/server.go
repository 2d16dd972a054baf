package server

import (
	"context"
	"log"
	"time"

	"farmmarket-be/internal/bootstrap"
	"farmmarket-be/internal/config"
	"farmmarket-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// requestTimeout bounds every handler's context so a stalled downstream call
// (database, ollama, midtrans) cannot hold a request open indefinitely.
const requestTimeout = 30 * time.Second

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	app.Use(func(ctx *fiber.Ctx) error {
		// Websocket upgrades stay open past any request deadline.
		if ctx.Get("Upgrade") == "websocket" {
			return ctx.Next()
		}
		reqCtx, cancel := context.WithTimeout(ctx.UserContext(), requestTimeout)
		defer cancel()
		ctx.SetUserContext(reqCtx)
		return ctx.Next()
	})

	// Static
	app.Static("/uploads", "./uploads")

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

	c.AuthController.RegisterRoutes(api)
	c.OAuthController.RegisterRoutes(api)
	c.ProfileController.RegisterRoutes(api)

	c.ProductController.RegisterRoutes(api)
	c.OrderController.RegisterRoutes(api)
	c.MessageController.RegisterRoutes(api)
	c.PaymentController.RegisterRoutes(api)

	c.AssistantController.RegisterRoutes(api)
	c.NotificationController.RegisterRoutes(api)
}
