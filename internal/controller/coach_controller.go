package controller

import (
	"ai-sales-be/internal/dto"
	"ai-sales-be/internal/pkg/serverutils"
	"ai-sales-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICoachController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type coachController struct {
	coachService service.ICoachService
}

func NewCoachController(coachService service.ICoachService) ICoachController {
	return &coachController{
		coachService: coachService,
	}
}

func (c *coachController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/coach/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("chat", c.Chat)
}

func (c *coachController) Chat(ctx *fiber.Ctx) error {
	var req dto.CoachChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.coachService.Chat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}
