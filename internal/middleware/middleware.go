package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// RequestIDLocal is the fiber Locals key holding the request id.
const RequestIDLocal = "requestid"

// RequestID tags each request with the caller's X-Request-ID or a new UUID and
// echoes it back in the response header.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		ContextKey: RequestIDLocal,
		Generator: func() string {
			return uuid.New().String()
		},
	})
}

// AccessLog is the request logger; it must be registered after RequestID.
func AccessLog() fiber.Handler {
	return logger.New(logger.Config{
		Format: "${time} ${locals:" + RequestIDLocal + "} ${status} - ${latency} ${method} ${path}\n",
	})
}
