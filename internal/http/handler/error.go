package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/http/middleware"
	"storefront/internal/service"
)

// errorPayload is the body of every error response:
// {"request_id": "...", "error": {"code": "NOT_FOUND", "message": "product not found"}}.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func requestID(c *fiber.Ctx) string {
	rid, _ := c.Locals(middleware.RequestIDLocalKey).(string)
	return rid
}

func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestID(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

// writeInternal hides cause from the client and leaves it for the request log.
func writeInternal(c *fiber.Ctx, status int, cause error) error {
	c.Locals(middleware.ErrorLocalKey, cause.Error())
	return writeError(c, status, "INTERNAL_ERROR", "internal server error")
}

type serviceErrorMapping struct {
	target error
	status int
	code   string
}

// Order matters: the first sentinel err wraps wins.
var serviceErrors = []serviceErrorMapping{
	{service.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{service.ErrInvalidInput, fiber.StatusBadRequest, "INVALID_INPUT"},
	{service.ErrEmptyCart, fiber.StatusBadRequest, "EMPTY_CART"},
	{service.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{service.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{service.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
}

// writeServiceError answers with the status of the service sentinel err
// wraps, carrying the service message. Unknown errors become a 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			return writeError(c, m.status, m.code, err.Error())
		}
	}
	return writeInternal(c, fiber.StatusInternalServerError, err)
}

// fiberErrors are the framework errors answered with a fixed message.
var fiberErrors = map[int]struct{ code, message string }{
	fiber.StatusBadRequest:            {"BAD_REQUEST", "bad request"},
	fiber.StatusNotFound:              {"NOT_FOUND", "resource not found"},
	fiber.StatusMethodNotAllowed:      {"METHOD_NOT_ALLOWED", "method not allowed"},
	fiber.StatusRequestEntityTooLarge: {"PAYLOAD_TOO_LARGE", "request body too large"},
}

// ErrorHandler renders errors that escape handlers, including fiber's own
// routing and body limit errors, in the standard envelope.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if !errors.As(err, &fe) {
			return writeInternal(c, fiber.StatusInternalServerError, err)
		}
		switch fe.Code {
		case fiber.StatusUnauthorized:
			return writeError(c, fe.Code, "UNAUTHORIZED", fe.Message)
		case fiber.StatusForbidden:
			return writeError(c, fe.Code, "FORBIDDEN", fe.Message)
		}
		if known, ok := fiberErrors[fe.Code]; ok {
			return writeError(c, fe.Code, known.code, known.message)
		}
		return writeInternal(c, fe.Code, err)
	}
}
