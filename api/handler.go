package api

import (
	"github.com/gofiber/fiber/v2"
)

type HealthHandler interface {
	Health(ctx *fiber.Ctx) error
	Live(ctx *fiber.Ctx) error
	Ready(ctx *fiber.Ctx) error
}
