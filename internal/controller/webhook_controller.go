package controller

import (
	"ai-sales-be/internal/dto"
	"ai-sales-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	Verify(ctx *fiber.Ctx) error
	Receive(ctx *fiber.Ctx) error
}

type webhookController struct {
	webhookService service.IWebhookService
}

func NewWebhookController(webhookService service.IWebhookService) IWebhookController {
	return &webhookController{
		webhookService: webhookService,
	}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/webhook/v1")
	h.Get("meta", c.Verify)
	h.Post("meta", c.Receive)
}

func (c *webhookController) Verify(ctx *fiber.Ctx) error {
	mode := ctx.Query("hub.mode")
	token := ctx.Query("hub.verify_token")
	challenge := ctx.Query("hub.challenge")

	res, err := c.webhookService.Verify(mode, token, challenge)
	if err != nil {
		return err
	}

	// Meta expects the raw challenge back, not a JSON envelope.
	return ctx.SendString(res)
}

func (c *webhookController) Receive(ctx *fiber.Ctx) error {
	var payload dto.MetaWebhookPayload
	if err := ctx.BodyParser(&payload); err != nil {
		// Acknowledge anyway so Meta does not retry an unparseable delivery.
		return ctx.SendString("EVENT_RECEIVED")
	}

	c.webhookService.HandleEvent(ctx.Context(), &payload)

	return ctx.SendString("EVENT_RECEIVED")
}
