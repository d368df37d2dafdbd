// Package master manages the reference data the stock ledger reads:
// producer groups (certification tier), farmers and rice varieties.
package master

import (
	"github.com/gofiber/fiber/v2"

	"ricemill-backend/internal/apperr"
	"ricemill-backend/internal/database"
	"ricemill-backend/internal/models"
	"ricemill-backend/internal/web"
)

type ProducerGroupRequest struct {
	Name     string `json:"name"`
	CertType string `json:"cert_type"`
}

func validCertType(t string) bool {
	switch t {
	case models.CertTypeGeneral, models.CertTypePesticideFree, models.CertTypeOrganic:
		return true
	}
	return false
}

// GET /api/producer-groups
func ListProducerGroupsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var groups []models.ProducerGroup
		if err := database.DB.Order("name").Find(&groups).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not list producer groups")
		}
		return web.OK(c, groups)
	}
}

// POST /api/producer-groups
func CreateProducerGroupHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProducerGroupRequest
		if err := c.BodyParser(&body); err != nil {
			return web.Fail(c, apperr.Validation("invalid request body"))
		}
		if body.Name == "" {
			return web.Fail(c, apperr.Validation("name is required"))
		}
		if body.CertType == "" {
			body.CertType = models.CertTypeGeneral
		}
		if !validCertType(body.CertType) {
			return web.Fail(c, apperr.Validation("cert_type must be one of 일반, 무농약, 유기농"))
		}

		group := models.ProducerGroup{Name: body.Name, CertType: body.CertType}
		if err := database.DB.Create(&group).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not create producer group")
		}
		return web.Created(c, group)
	}
}

// PUT /api/producer-groups/:id
func UpdateProducerGroupHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return web.Fail(c, apperr.Validation("invalid producer group id"))
		}

		var group models.ProducerGroup
		if err := database.DB.First(&group, id).Error; err != nil {
			return web.Fail(c, apperr.NotFound("producer group %d does not exist", id))
		}

		var body ProducerGroupRequest
		if err := c.BodyParser(&body); err != nil {
			return web.Fail(c, apperr.Validation("invalid request body"))
		}
		if body.Name != "" {
			group.Name = body.Name
		}
		if body.CertType != "" {
			if !validCertType(body.CertType) {
				return web.Fail(c, apperr.Validation("cert_type must be one of 일반, 무농약, 유기농"))
			}
			group.CertType = body.CertType
		}

		if err := database.DB.Save(&group).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update producer group")
		}
		return web.OK(c, group)
	}
}

// DELETE /api/producer-groups/:id
func DeleteProducerGroupHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return web.Fail(c, apperr.Validation("invalid producer group id"))
		}

		var count int64
		database.DB.Model(&models.Farmer{}).Where("producer_group_id = ?", id).Count(&count)
		if count > 0 {
			return web.Fail(c, apperr.Conflict("producer group %d still has %d farmers", id, count))
		}

		res := database.DB.Delete(&models.ProducerGroup{}, id)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not delete producer group")
		}
		if res.RowsAffected == 0 {
			return web.Fail(c, apperr.NotFound("producer group %d does not exist", id))
		}
		return web.OK(c, fiber.Map{"id": id})
	}
}
