package audit

import (
	"github.com/gofiber/fiber/v2"

	"ricemill-backend/internal/database"
	"ricemill-backend/internal/models"
)

// GET /api/audit-logs?entity_type=stock&limit=50
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 100)
		if limit < 1 || limit > 500 {
			limit = 100
		}

		q := database.DB.Model(&models.AuditLog{}).Order("created_at DESC").Limit(limit)

		if et := c.Query("entity_type"); et != "" {
			q = q.Where("entity_type = ?", et)
		}

		var logs []models.AuditLog
		if err := q.Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list audit logs")
		}

		return c.JSON(logs)
	}
}
