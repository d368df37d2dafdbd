package master

import (
	"github.com/gofiber/fiber/v2"

	"ricemill-backend/internal/apperr"
	"ricemill-backend/internal/database"
	"ricemill-backend/internal/models"
	"ricemill-backend/internal/web"
)

type FarmerRequest struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	ProducerGroupID uint   `json:"producer_group_id"`
}

// GET /api/farmers
func ListFarmersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var farmers []models.Farmer
		if err := database.DB.Preload("ProducerGroup").Order("name").Find(&farmers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list farmers")
		}
		return web.OK(c, farmers)
	}
}

// POST /api/farmers
func CreateFarmerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body FarmerRequest
		if err := c.BodyParser(&body); err != nil {
			return web.Fail(c, apperr.Validation("invalid request body"))
		}
		if body.Name == "" || body.ProducerGroupID == 0 {
			return web.Fail(c, apperr.Validation("name and producer_group_id are required"))
		}

		var group models.ProducerGroup
		if err := database.DB.First(&group, body.ProducerGroupID).Error; err != nil {
			return web.Fail(c, apperr.Validation("producer group %d does not exist", body.ProducerGroupID))
		}

		farmer := models.Farmer{
			Name:            body.Name,
			Phone:           body.Phone,
			Address:         body.Address,
			ProducerGroupID: body.ProducerGroupID,
		}
		if err := database.DB.Create(&farmer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create farmer")
		}
		farmer.ProducerGroup = group
		return web.Created(c, farmer)
	}
}

// PUT /api/farmers/:id
func UpdateFarmerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return web.Fail(c, apperr.Validation("invalid farmer id"))
		}

		var farmer models.Farmer
		if err := database.DB.First(&farmer, id).Error; err != nil {
			return web.Fail(c, apperr.NotFound("farmer %d does not exist", id))
		}

		var body FarmerRequest
		if err := c.BodyParser(&body); err != nil {
			return web.Fail(c, apperr.Validation("invalid request body"))
		}
		if body.Name != "" {
			farmer.Name = body.Name
		}
		if body.Phone != "" {
			farmer.Phone = body.Phone
		}
		if body.Address != "" {
			farmer.Address = body.Address
		}
		if body.ProducerGroupID != 0 {
			var group models.ProducerGroup
			if err := database.DB.First(&group, body.ProducerGroupID).Error; err != nil {
				return web.Fail(c, apperr.Validation("producer group %d does not exist", body.ProducerGroupID))
			}
			farmer.ProducerGroupID = body.ProducerGroupID
		}

		if err := database.DB.Save(&farmer).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update farmer")
		}
		return web.OK(c, farmer)
	}
}

// DELETE /api/farmers/:id
func DeleteFarmerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return web.Fail(c, apperr.Validation("invalid farmer id"))
		}

		var count int64
		database.DB.Model(&models.Stock{}).Where("farmer_id = ?", id).Count(&count)
		if count > 0 {
			return web.Fail(c, apperr.Conflict("farmer %d still has %d stock records", id, count))
		}

		res := database.DB.Delete(&models.Farmer{}, id)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete farmer")
		}
		if res.RowsAffected == 0 {
			return web.Fail(c, apperr.NotFound("farmer %d does not exist", id))
		}
		return web.OK(c, fiber.Map{"id": id})
	}
}
