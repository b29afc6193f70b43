package controller

import (
	"paraphrase-be/internal/dto"
	"paraphrase-be/internal/pkg/serverutils"
	"paraphrase-be/internal/service"
	"paraphrase-be/pkg/persona"

	"github.com/gofiber/fiber/v2"
)

type IPersonaController interface {
	RegisterRoutes(r fiber.Router)
	GenerateBatch(ctx *fiber.Ctx) error
	GenerateConstrained(ctx *fiber.Ctx) error
}

type personaController struct {
	service service.IPersonaService
}

func NewPersonaController(service service.IPersonaService) IPersonaController {
	return &personaController{service: service}
}

func (c *personaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/personas")
	h.Get("", c.GenerateBatch)
	h.Post("/constrained", c.GenerateConstrained)
}

func (c *personaController) GenerateBatch(ctx *fiber.Ctx) error {
	req := dto.GeneratePersonasRequest{Count: ctx.QueryInt("count", persona.DefaultBatchSize)}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.service.GenerateBatch(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	return ctx.JSON(serverutils.SuccessResponse("Success generate personas", res))
}

func (c *personaController) GenerateConstrained(ctx *fiber.Ctx) error {
	var req dto.ConstrainedPersonaRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.service.GenerateConstrained(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	return ctx.JSON(serverutils.SuccessResponse("Success generate persona", res))
}
