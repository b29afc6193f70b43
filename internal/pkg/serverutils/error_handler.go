package serverutils

import (
	"errors"

	"paraphrase-be/pkg/rewrite"
	"paraphrase-be/pkg/wizard"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into BaseResponse
// bodies with a matching status code.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code, message := classify(err)
		res := ErrorResponse(code, message)

		var verr *ValidationError
		if errors.As(err, &verr) {
			res.Errors = verr.Fields
		}
		return ctx.Status(code).JSON(res)
	}
}

func classify(err error) (int, string) {
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		return ferr.Code, ferr.Message
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return fiber.StatusBadRequest, "Invalid request"
	}

	switch {
	case errors.Is(err, wizard.ErrUnknownSection):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, wizard.ErrSectionHidden), errors.Is(err, wizard.ErrStepLocked):
		return fiber.StatusConflict, err.Error()
	}

	if status, ok := RewriteStatus(err); ok {
		return status, rewrite.UserMessage(err)
	}
	return fiber.StatusInternalServerError, "Internal server error"
}

// RewriteStatus maps rewrite failures to HTTP status codes.
func RewriteStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, rewrite.ErrBusy):
		return fiber.StatusConflict, true
	case errors.Is(err, rewrite.ErrIncompleteForm):
		return fiber.StatusUnprocessableEntity, true
	case errors.Is(err, rewrite.ErrContentMissing), errors.Is(err, rewrite.ErrSettingsMissing):
		return fiber.StatusBadRequest, true
	case errors.Is(err, rewrite.ErrNotConfigured):
		return fiber.StatusServiceUnavailable, true
	case errors.Is(err, rewrite.ErrUpstream), errors.Is(err, rewrite.ErrEmptyResponse),
		errors.Is(err, rewrite.ErrDeviceUpstream), errors.Is(err, rewrite.ErrDeviceEmpty):
		return fiber.StatusBadGateway, true
	}
	return 0, false
}
