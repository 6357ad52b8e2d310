package controller

import (
	"ai-sales-be/internal/dto"
	"ai-sales-be/internal/pkg/serverutils"
	"ai-sales-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IResearchController interface {
	RegisterRoutes(r fiber.Router)
	Run(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type researchController struct {
	researchService service.IResearchService
}

func NewResearchController(researchService service.IResearchService) IResearchController {
	return &researchController{
		researchService: researchService,
	}
}

func (c *researchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/research/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("run", c.Run)
	h.Get("status/:project_id", c.Status)
}

func (c *researchController) Run(ctx *fiber.Ctx) error {
	var req dto.RunResearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.researchService.Run(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success run research", res))
}

func (c *researchController) Status(ctx *fiber.Ctx) error {
	projectId, err := serverutils.ParseUUID(ctx.Params("project_id"), "project_id")
	if err != nil {
		return err
	}

	res, err := c.researchService.Status(ctx.Context(), projectId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}
