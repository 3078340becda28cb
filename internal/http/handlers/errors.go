package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "vitrina/internal/log"
	"vitrina/internal/services"
)

// statusFor maps service errors onto HTTP status codes and the message
// shown to the client. Unknown errors become a generic 500.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound, "not found"
	case errors.Is(err, services.ErrUnknownVariant):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrPlanLimit), errors.Is(err, services.ErrFeatureDisabled):
		return fiber.StatusForbidden, err.Error()
	case errors.Is(err, services.ErrInvalidOptions), errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrVariantRequired):
		return fiber.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, services.ErrUnavailable), errors.Is(err, services.ErrEmptyCart):
		return fiber.StatusConflict, err.Error()
	}
	return fiber.StatusInternalServerError, "something went wrong, please try again"
}

// apiError answers a JSON request that failed. Server-side failures are
// logged with the real error; clients only see the mapped message.
func apiError(c *fiber.Ctx, action string, err error) error {
	code, msg := statusFor(err)
	if code == fiber.StatusInternalServerError {
		applog.Error(c, action, err, nil)
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

func badRequest(c *fiber.Ctx, field string) error {
	applog.Security(c, "validation.fail", map[string]any{"field": field})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid " + field})
}

// ErrorHandler renders a friendly page for anything a handler returned,
// keeping the details in the log.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code = fe.Code
		msg = fe.Message
	} else if c2, m := statusFor(err); c2 != fiber.StatusInternalServerError {
		code, msg = c2, m
	}
	if code >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
