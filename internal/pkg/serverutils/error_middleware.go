package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts unhandled errors into a uniform JSON
// apology. Downstream consumers key off the response body, so the status
// stays 200 even on failure.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"Error": "Something went wrong. Please try again after sometime.",
		})
	}
}
