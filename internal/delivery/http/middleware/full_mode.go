package middleware

import (
	"github.com/Knnivedh/job-rec/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const simpleModeMessage = "This feature requires database authentication"

// RequireFullMode rejects persistence-backed routes while the service runs
// without a database.
func RequireFullMode(enabled bool, alternative string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if enabled {
			return c.Next()
		}
		fields := response.Fields{}
		if alternative != "" {
			fields["message"] = "Not available in simple mode. Use " + alternative + " instead."
		}
		return NewAppError(fiber.StatusServiceUnavailable, simpleModeMessage, fields, nil)
	}
}
