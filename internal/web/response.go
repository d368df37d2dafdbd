// Package web carries the uniform response envelope. Every mutating endpoint
// answers {"success": bool, "data": ..., "error": "..."} so that clients have
// a single failure signal instead of sniffing status codes.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"ricemill-backend/internal/apperr"
)

type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(c *fiber.Ctx, data any) error {
	return c.JSON(Envelope{Success: true, Data: data})
}

func Created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Data: data})
}

// Fail maps a domain error onto the envelope with the matching HTTP status.
// Non-domain errors bubble up to the Fiber error handler as 500s.
func Fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = fiber.StatusBadRequest
	case apperr.KindConflict:
		status = fiber.StatusConflict
	case apperr.KindNotFound:
		status = fiber.StatusNotFound
	default:
		logrus.WithError(err).Error("unexpected error")
		return c.Status(status).JSON(Envelope{Success: false, Error: "internal server error"})
	}
	return c.Status(status).JSON(Envelope{Success: false, Error: err.Error()})
}
