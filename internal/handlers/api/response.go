package api

import (
	"github.com/gofiber/fiber/v3"

	"keywatch/internal/models"
)

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status: "error",
		Error:  message,
	})
}

// ErrorHandler renders errors that escape handlers (unknown routes, recovered
// panics) in the same envelope as jsonError.
func ErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return jsonError(c, code, message)
}
