package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const localsRequestID = "request_id"

// RequestID propagates X-Request-ID, generating one when the client sent none.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(localsRequestID, id)
		c.Set(fiber.HeaderXRequestID, id)
		return c.Next()
	}
}

func RequestIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(localsRequestID).(string)
	return id
}
