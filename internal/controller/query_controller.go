package controller

import (
	"strings"

	"robotics-tutor-be/internal/dto"
	"robotics-tutor-be/internal/pkg/serverutils"
	"robotics-tutor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const maxQueryLength = 2000

type IQueryController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	AddSessionMessage(ctx *fiber.Ctx) error
	GetSessionHistory(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
}

type queryController struct {
	queryService service.IQueryService
}

func NewQueryController(queryService service.IQueryService) IQueryController {
	return &queryController{
		queryService: queryService,
	}
}

func (c *queryController) RegisterRoutes(r fiber.Router) {
	r.Post("/ask", c.Ask)
	r.Post("/chat", c.Chat)
	r.Post("/sessions/:id/messages", c.AddSessionMessage)
	r.Get("/sessions/:id/history", c.GetSessionHistory)
	r.Delete("/sessions/:id", c.ClearSession)
}

// validateQuery rejects blank and oversized input before the pipeline runs.
// The noun differs between the /ask and /chat surfaces. Query constraints
// produce the documented messages; the remaining struct tags go through the
// shared validator.
func validateQuery(req *dto.QueryRequest, noun string) error {
	if strings.TrimSpace(req.Query) == "" {
		return fiber.NewError(fiber.StatusBadRequest, noun+" cannot be empty")
	}
	if len(req.Query) > maxQueryLength {
		return fiber.NewError(fiber.StatusBadRequest, noun+" too long, maximum 2000 characters")
	}
	return serverutils.ValidateRequest(req)
}

func (c *queryController) Ask(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := validateQuery(&req, "Query"); err != nil {
		return err
	}

	res := c.queryService.ProcessQuery(ctx.Context(), &req)
	return ctx.JSON(res)
}

func (c *queryController) Chat(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := validateQuery(&req, "Message"); err != nil {
		return err
	}

	res := c.queryService.ProcessQuery(ctx.Context(), &req)
	return ctx.JSON(res)
}

func (c *queryController) AddSessionMessage(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("id")

	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := validateQuery(&req, "Message"); err != nil {
		return err
	}

	res := c.queryService.ProcessSessionMessage(ctx.Context(), sessionID, &req)
	return ctx.JSON(res)
}

func (c *queryController) GetSessionHistory(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("id")
	return ctx.JSON(c.queryService.GetSessionHistory(sessionID))
}

func (c *queryController) ClearSession(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("id")
	return ctx.JSON(c.queryService.ClearSession(ctx.Context(), sessionID))
}
