// Package app builds the application object the server hands every request to.
// Building it registers middleware and routes only; nothing listens until the
// server package binds it.
package app

import (
	"fmt"
	"os"
	"strings"

	"backend-service/api"
	"backend-service/config"
	"backend-service/domain"
	"backend-service/utils"

	_ "backend-service/docs" // registers the swagger spec

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// @title Backend Service API
// @version 1.0
// @description Process bootstrapper and operational endpoints for the backend service
// @BasePath /
// @schemes http

// New creates and configures the Fiber application
func New(cfg *config.Config, checks []domain.DependencyCheck, ready domain.ReadinessReporter) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		IdleTimeout:           cfg.IdleTimeout,
		BodyLimit:             cfg.BodyLimit,
		// Honor X-Forwarded-For only from private proxy ranges
		EnableTrustedProxyCheck: cfg.TrustProxyHeaders,
		ProxyHeader:             proxyHeader(cfg),
		TrustedProxies: []string{
			"10.0.0.0/8",
			"172.16.0.0/12",
			"192.168.0.0/16",
			"fd00::/8",
			"::1",
			"127.0.0.1",
		},
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			utils.LogRequestError(c, "PANIC RECOVERED", fmt.Errorf("%v", e),
				"user_agent", c.Get(fiber.HeaderUserAgent),
			)
		},
	}))

	app.Use(utils.RequestID())

	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return !utils.Enabled(utils.LevelInfo)
		},
		Output: utils.InfoLogger.Writer(),
		Format: "[${time}] ${locals:" + utils.RequestIDKey + "} ${status} - ${method} ${path} - ${ip} - ${latency}\n",
	}))

	app.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	if dir := cfg.StaticDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			app.Static("/", dir)
		}
	}

	// redirect to swagger docs
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/swagger/", fiber.StatusMovedPermanently)
	})

	health := api.NewHealthHandler(checks, ready)
	app.Get("/health", health.Health)
	app.Get("/health/live", health.Live)
	app.Get("/health/ready", health.Ready)

	app.Get("/swagger/*", swagger.HandlerDefault)

	return app
}

func proxyHeader(cfg *config.Config) string {
	if cfg.TrustProxyHeaders {
		return fiber.HeaderXForwardedFor
	}
	return ""
}

// corsConfig allows credentials only for explicit origins; browsers reject
// credentialed responses to a wildcard origin.
func corsConfig(origins []string) cors.Config {
	allowOrigins := strings.Join(origins, ",")
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	return cors.Config{
		AllowOrigins:     allowOrigins,
		AllowCredentials: allowOrigins != "*",
		ExposeHeaders:    utils.RequestIDHeader,
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	} else {
		// Log server errors but don't expose details
		utils.LogRequestError(c, "HTTP_ERROR", err)
	}

	return c.Status(code).JSON(domain.ErrorResponse{Error: message})
}
