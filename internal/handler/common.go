package handler

import (
	"errors"

	"go-itops-portal/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// actor returns the username set by the auth middleware, for audit columns.
func actor(c *fiber.Ctx) string {
	username := c.Locals("username")
	if username == nil {
		return "system"
	}
	return username.(string)
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// fail maps service errors onto HTTP statuses.
func fail(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(400).JSON(fiber.Map{"error": verr.Message})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Record not found"})
	case errors.Is(err, service.ErrUsernameTaken):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrProtectedAccount):
		return c.Status(403).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		// Unique violations inside a workflow keep the database message so
		// the caller can see which value collided.
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	default:
		zap.L().Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}

// bulkResponse renders an import result: 200 with a count on success, 400
// with the full per-row error list when the file was rejected.
func bulkResponse(c *fiber.Ctx, result *service.BulkResult) error {
	if len(result.RowErrors) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Import rejected", "errors": result.RowErrors})
	}
	return c.JSON(fiber.Map{"message": "Import complete", "data": result})
}
