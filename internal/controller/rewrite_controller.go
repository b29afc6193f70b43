package controller

import (
	"paraphrase-be/internal/dto"
	"paraphrase-be/internal/pkg/serverutils"
	"paraphrase-be/internal/service"
	"paraphrase-be/pkg/rewrite"

	"github.com/gofiber/fiber/v2"
)

type IRewriteController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	Result(ctx *fiber.Ctx) error
	Paraphrase(ctx *fiber.Ctx) error
	DeviceInfo(ctx *fiber.Ctx) error
}

type rewriteController struct {
	service service.IRewriteService
}

func NewRewriteController(service service.IRewriteService) IRewriteController {
	return &rewriteController{service: service}
}

func (c *rewriteController) RegisterRoutes(r fiber.Router) {
	r.Post("/rewrite", c.Submit)
	r.Get("/rewrite", c.Result)
	r.Post("/paraphrase", c.Paraphrase)
	r.Post("/device-info", c.DeviceInfo)
}

func (c *rewriteController) Submit(ctx *fiber.Ctx) error {
	res, err := c.service.Submit(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		status, ok := serverutils.RewriteStatus(err)
		if !ok || res == nil {
			return err
		}
		return ctx.Status(status).JSON(serverutils.ErrorResponseWithData(status, rewrite.UserMessage(err), res))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success rewrite content", res))
}

func (c *rewriteController) Result(ctx *fiber.Ctx) error {
	res, err := c.service.Result(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get rewrite result", res))
}

func (c *rewriteController) Paraphrase(ctx *fiber.Ctx) error {
	var req dto.ParaphraseRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Paraphrase(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success paraphrase content", res))
}

func (c *rewriteController) DeviceInfo(ctx *fiber.Ctx) error {
	var req dto.DeviceInfoRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.DescribeDevice(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate device information", res))
}
