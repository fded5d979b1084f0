package presenter

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Response is the envelope of every JSON reply.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func OK(c *fiber.Ctx, status int, message string, data any) error {
	return JSON(c, status, Response{Success: true, Message: message, Data: data})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, Response{Success: false, Message: message})
}

// ErrorHandler renders errors that escape handlers (including recovered panics)
// in the response envelope. Internal details are logged, never returned.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return Error(c, fe.Code, fe.Message)
		}
		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		return Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
}
