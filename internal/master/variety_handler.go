package master

import (
	"github.com/gofiber/fiber/v2"

	"ricemill-backend/internal/apperr"
	"ricemill-backend/internal/database"
	"ricemill-backend/internal/models"
	"ricemill-backend/internal/web"
)

type VarietyRequest struct {
	Name string `json:"name"`
}

// GET /api/varieties
func ListVarietiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var varieties []models.Variety
		if err := database.DB.Order("name").Find(&varieties).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list varieties")
		}
		return web.OK(c, varieties)
	}
}

// POST /api/varieties
func CreateVarietyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body VarietyRequest
		if err := c.BodyParser(&body); err != nil {
			return web.Fail(c, apperr.Validation("invalid request body"))
		}
		if body.Name == "" {
			return web.Fail(c, apperr.Validation("name is required"))
		}

		variety := models.Variety{Name: body.Name}
		if err := database.DB.Create(&variety).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create variety")
		}
		return web.Created(c, variety)
	}
}

// DELETE /api/varieties/:id
func DeleteVarietyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return web.Fail(c, apperr.Validation("invalid variety id"))
		}

		var count int64
		database.DB.Model(&models.Stock{}).Where("variety_id = ?", id).Count(&count)
		if count > 0 {
			return web.Fail(c, apperr.Conflict("variety %d still has %d stock records", id, count))
		}

		res := database.DB.Delete(&models.Variety{}, id)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete variety")
		}
		if res.RowsAffected == 0 {
			return web.Fail(c, apperr.NotFound("variety %d does not exist", id))
		}
		return web.OK(c, fiber.Map{"id": id})
	}
}
