package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"productsapi/internal/apperrors"
	"productsapi/internal/dto"
	"productsapi/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is installed as fiber's Config.ErrorHandler and is the only
// place where failures are turned into HTTP responses.
func ErrorHandler(c *fiber.Ctx, err error) error {
	resp := dto.ErrorResponse{Timestamp: time.Now()}

	var notFound *apperrors.NotFoundError
	var invalid *apperrors.ValidationError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &notFound):
		resp.Status = fiber.StatusNotFound
		resp.Message = notFound.Error()
	case errors.As(err, &invalid):
		resp.Status = fiber.StatusBadRequest
		resp.Message = invalid.Error()
		resp.Details = invalid.Details
	case errors.As(err, &fiberErr):
		resp.Status = fiberErr.Code
		resp.Message = fiberErr.Message
	default:
		log.Printf("Unhandled error on %s %s (request %s): %v", c.Method(), c.Path(), requestID(c), err)
		resp.Status = fiber.StatusInternalServerError
		resp.Message = fmt.Sprintf("An unexpected error occurred: %v", err)
	}

	return c.Status(resp.Status).JSON(resp)
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(middleware.RequestIDLocal).(string); ok {
		return id
	}
	return "-"
}
