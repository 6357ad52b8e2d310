package controller

import (
	"ai-sales-be/internal/dto"
	"ai-sales-be/internal/pkg/serverutils"
	"ai-sales-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISalesController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	WidgetChat(ctx *fiber.Ctx) error
}

type salesController struct {
	salesAgentService service.ISalesAgentService
}

func NewSalesController(salesAgentService service.ISalesAgentService) ISalesController {
	return &salesController{
		salesAgentService: salesAgentService,
	}
}

func (c *salesController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sales/v1")
	// widget-chat is the anonymous website entry point
	h.Post("widget-chat", c.WidgetChat)
	h.Use(serverutils.JwtMiddleware)
	h.Post("chat", c.Chat)
}

func (c *salesController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.salesAgentService.Chat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *salesController) WidgetChat(ctx *fiber.Ctx) error {
	var req dto.WidgetChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.salesAgentService.WidgetChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}
