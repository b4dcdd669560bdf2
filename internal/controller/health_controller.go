package controller

import (
	"robotics-tutor-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	Ready(ctx *fiber.Ctx) error
}

type healthController struct {
	// ready reports whether the container finished wiring the pipeline.
	ready func() bool
}

func NewHealthController(ready func() bool) IHealthController {
	return &healthController{
		ready: ready,
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
	r.Get("/ready", c.Ready)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	agentStatus := "initialized"
	if !c.ready() {
		agentStatus = "not_initialized"
	}
	return ctx.JSON(dto.HealthResponse{
		Status:  "healthy",
		Message: "RAG Agent API is running - Agent status: " + agentStatus,
	})
}

func (c *healthController) Ready(ctx *fiber.Ctx) error {
	if !c.ready() {
		return ctx.JSON(dto.HealthResponse{
			Status:  "not_ready",
			Message: "RAG Agent is not initialized",
		})
	}
	return ctx.JSON(dto.HealthResponse{
		Status:  "ready",
		Message: "RAG Agent API is ready to handle requests",
	})
}
