package controller

import (
	"paraphrase-be/internal/dto"
	"paraphrase-be/internal/pkg/serverutils"
	"paraphrase-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWizardController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	UpdateForm(ctx *fiber.Ctx) error
	ApplyPersona(ctx *fiber.Ctx) error
	SubmitContext(ctx *fiber.Ctx) error
	SubmitSystem(ctx *fiber.Ctx) error
	SubmitMustHave(ctx *fiber.Ctx) error
	SubmitContent(ctx *fiber.Ctx) error
	SetCollapsed(ctx *fiber.Ctx) error
	GoToStep(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
}

type wizardController struct {
	service service.IWizardService
}

func NewWizardController(service service.IWizardService) IWizardController {
	return &wizardController{service: service}
}

func (c *wizardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/wizard")
	h.Get("", c.Show)
	h.Patch("/form", c.UpdateForm)
	h.Post("/persona", c.ApplyPersona)
	h.Post("/context", c.SubmitContext)
	h.Post("/system", c.SubmitSystem)
	h.Post("/must-have", c.SubmitMustHave)
	h.Post("/content", c.SubmitContent)
	h.Put("/sections/:section/collapsed", c.SetCollapsed)
	h.Put("/step", c.GoToStep)
	h.Post("/reset", c.Reset)
}

func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return nil
}

func (c *wizardController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Snapshot(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get wizard", res))
}

func (c *wizardController) UpdateForm(ctx *fiber.Ctx) error {
	var req dto.UpdateFormRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpdateForm(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update form", res))
}

func (c *wizardController) ApplyPersona(ctx *fiber.Ctx) error {
	var req dto.ApplyPersonaRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ApplyPersona(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success apply persona", res))
}

// sectionResponse answers 200 either way; a rejected section carries its
// field errors in the snapshot.
func sectionResponse(ctx *fiber.Ctx, res *dto.SubmitSectionResponse) error {
	msg := "Success submit section"
	if !res.Accepted {
		msg = "Section has validation errors"
	}
	return ctx.JSON(serverutils.SuccessResponse(msg, res))
}

func (c *wizardController) SubmitContext(ctx *fiber.Ctx) error {
	var req dto.SubmitContextRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.SubmitContext(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	if err != nil {
		return err
	}
	return sectionResponse(ctx, res)
}

func (c *wizardController) SubmitSystem(ctx *fiber.Ctx) error {
	var req dto.SubmitSystemRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.SubmitSystem(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	if err != nil {
		return err
	}
	return sectionResponse(ctx, res)
}

func (c *wizardController) SubmitMustHave(ctx *fiber.Ctx) error {
	var req dto.SubmitMustHaveRequest
	if len(ctx.Body()) > 0 {
		if err := parseBody(ctx, &req); err != nil {
			return err
		}
	}
	res, err := c.service.SubmitMustHave(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	if err != nil {
		return err
	}
	return sectionResponse(ctx, res)
}

func (c *wizardController) SubmitContent(ctx *fiber.Ctx) error {
	var req dto.SubmitContentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	res, err := c.service.SubmitContent(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	if err != nil {
		return err
	}
	return sectionResponse(ctx, res)
}

func (c *wizardController) SetCollapsed(ctx *fiber.Ctx) error {
	var req dto.SetCollapsedRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SetCollapsed(ctx.UserContext(), serverutils.SessionID(ctx), ctx.Params("section"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success toggle section", res))
}

func (c *wizardController) GoToStep(ctx *fiber.Ctx) error {
	var req dto.GoToStepRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GoToStep(ctx.UserContext(), serverutils.SessionID(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success go to step", res))
}

func (c *wizardController) Reset(ctx *fiber.Ctx) error {
	res, err := c.service.Reset(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success reset wizard", res))
}
