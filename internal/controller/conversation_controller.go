package controller

import (
	"ai-sales-be/internal/dto"
	"ai-sales-be/internal/pkg/serverutils"
	"ai-sales-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	ToggleAi(ctx *fiber.Ctx) error
	Reply(ctx *fiber.Ctx) error
	Close(ctx *fiber.Ctx) error
}

type conversationController struct {
	conversationService service.IConversationService
}

func NewConversationController(conversationService service.IConversationService) IConversationController {
	return &conversationController{
		conversationService: conversationService,
	}
}

func (c *conversationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/conversation/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)
	h.Put(":id/ai", c.ToggleAi)
	h.Post(":id/reply", c.Reply)
	h.Put(":id/close", c.Close)
}

func (c *conversationController) GetAll(ctx *fiber.Ctx) error {
	projectId, err := serverutils.ParseUUID(ctx.Query("project_id"), "project_id")
	if err != nil {
		return err
	}

	res, err := c.conversationService.GetAll(ctx.Context(), projectId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *conversationController) Show(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUID(ctx.Params("id"), "id")
	if err != nil {
		return err
	}

	res, err := c.conversationService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *conversationController) ToggleAi(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUID(ctx.Params("id"), "id")
	if err != nil {
		return err
	}

	var req dto.AiToggleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := c.conversationService.ToggleAi(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success toggle ai", nil))
}

func (c *conversationController) Reply(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUID(ctx.Params("id"), "id")
	if err != nil {
		return err
	}

	var req dto.OperatorReplyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.conversationService.Reply(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success send reply", nil))
}

func (c *conversationController) Close(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUID(ctx.Params("id"), "id")
	if err != nil {
		return err
	}

	if err := c.conversationService.Close(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success close conversation", nil))
}
