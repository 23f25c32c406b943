// Package response writes the API's JSON bodies. Errors are rendered as
// {"error": message} merged with optional extra fields.
package response

import "github.com/gofiber/fiber/v3"

const (
	MessageBadRequest          = "Bad request"
	MessageUnauthorized        = "Unauthorized"
	MessageForbidden           = "Forbidden"
	MessageNotFound            = "Not found"
	MessageConflict            = "Conflict"
	MessageRequestTooLarge     = "Request entity too large"
	MessageUnprocessableEntity = "Unprocessable entity"
	MessageServiceUnavailable  = "Service unavailable"
	MessageInternalServerError = "Internal server error"
	MessageError               = "Error"
)

// Fields are extra members of an error body, e.g. "details" or "hint".
type Fields map[string]any

func JSON(c fiber.Ctx, status int, body any) error {
	return c.Status(normalizeStatus(status)).JSON(body)
}

func Error(c fiber.Ctx, status int, message string, extra Fields) error {
	st := normalizeStatus(status)
	body := fiber.Map{"error": normalizeMessage(message, st)}
	for k, v := range extra {
		if k == "error" {
			continue
		}
		body[k] = v
	}
	return c.Status(st).JSON(body)
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func normalizeMessage(message string, status int) string {
	if message != "" {
		return message
	}
	return DefaultMessageForStatus(status)
}

func DefaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusConflict:
		return MessageConflict
	case fiber.StatusRequestEntityTooLarge:
		return MessageRequestTooLarge
	case fiber.StatusUnprocessableEntity:
		return MessageUnprocessableEntity
	case fiber.StatusServiceUnavailable:
		return MessageServiceUnavailable
	default:
		if status >= 500 {
			return MessageInternalServerError
		}
		return MessageError
	}
}
