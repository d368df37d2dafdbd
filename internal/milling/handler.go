package milling

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"ricemill-backend/internal/apperr"
	"ricemill-backend/internal/audit"
	"ricemill-backend/internal/auth"
	"ricemill-backend/internal/models"
	"ricemill-backend/internal/web"
)

var validate = validator.New()

type CreateBatchRequest struct {
	Date        string `json:"date" validate:"required"` // "2024-05-01"
	MillingType string `json:"milling_type" validate:"required"`
	StockIDs    []uint `json:"stock_ids" validate:"required"`
	Note        string `json:"note"`
}

type AddOutputRequest struct {
	Grade         string          `json:"grade" validate:"required"`
	PackageSpec   string          `json:"package_spec"`
	TotalWeightKg decimal.Decimal `json:"total_weight_kg"`
}

type OutputResponse struct {
	ID            uint            `json:"id"`
	Grade         string          `json:"grade"`
	PackageSpec   string          `json:"package_spec"`
	TotalWeightKg decimal.Decimal `json:"total_weight_kg"`
}

type BatchResponse struct {
	ID           uint             `json:"id"`
	Date         string           `json:"date"`
	MillingType  string           `json:"milling_type"`
	TotalInputKg decimal.Decimal  `json:"total_input_kg"`
	IsClosed     bool             `json:"is_closed"`
	Note         string           `json:"note,omitempty"`
	StockIDs     []uint           `json:"stock_ids,omitempty"`
	Outputs      []OutputResponse `json:"outputs"`
}

func toBatchResponse(b models.MillingBatch) BatchResponse {
	resp := BatchResponse{
		ID:           b.ID,
		Date:         b.Date.Format("2006-01-02"),
		MillingType:  string(b.MillingType),
		TotalInputKg: b.TotalInputKg,
		IsClosed:     b.IsClosed,
		Note:         b.Note,
		Outputs:      make([]OutputResponse, 0, len(b.Outputs)),
	}
	for _, s := range b.Stocks {
		resp.StockIDs = append(resp.StockIDs, s.ID)
	}
	for _, o := range b.Outputs {
		resp.Outputs = append(resp.Outputs, OutputResponse{
			ID:            o.ID,
			Grade:         o.Grade,
			PackageSpec:   o.PackageSpec,
			TotalWeightKg: o.TotalWeightKg,
		})
	}
	return resp
}

func writeBatchAudit(c *fiber.Ctx, action models.AuditAction, id uint, desc string, before, after any) {
	if p, err := auth.PrincipalFromCtx(c); err == nil {
		_ = audit.WriteLog(audit.LogOptions{
			UserID:      p.UserID,
			UserName:    p.Name,
			EntityType:  "milling_batch",
			EntityID:    id,
			Action:      action,
			Description: desc,
			Before:      before,
			After:       after,
		})
	}
}

// GET /api/milling-batches
func ListBatchesHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		batches, err := svc.ListBatches()
		if err != nil {
			return web.Fail(c, err)
		}
		resp := make([]BatchResponse, 0, len(batches))
		for _, b := range batches {
			resp = append(resp, toBatchResponse(b))
		}
		return web.OK(c, resp)
	}
}

// GET /api/milling-batches/:id
func GetBatchHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return web.Fail(c, apperr.Validation("invalid batch id"))
		}
		batch, err := svc.GetBatch(uint(id))
		if err != nil {
			return web.Fail(c, err)
		}
		return web.OK(c, toBatchResponse(*batch))
	}
}

// POST /api/milling-batches
func CreateBatchHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBatchRequest
		if err := c.BodyParser(&body); err != nil {
			return web.Fail(c, apperr.Validation("invalid request body"))
		}
		if err := validate.Struct(body); err != nil {
			return web.Fail(c, apperr.Validation("invalid request: %v", err))
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return web.Fail(c, apperr.Validation("date must be 'YYYY-MM-DD'"))
		}

		batch, err := svc.CreateBatch(CreateBatchInput{
			Date:        d,
			MillingType: models.MillingType(body.MillingType),
			StockIDs:    body.StockIDs,
			Note:        body.Note,
		})
		if err != nil {
			return web.Fail(c, err)
		}

		writeBatchAudit(c, models.AuditActionCreate, batch.ID,
			fmt.Sprintf("Milling batch created: %s, %d stocks, %skg in",
				batch.MillingType, len(batch.Stocks), batch.TotalInputKg.String()),
			nil, batch)

		return web.Created(c, toBatchResponse(*batch))
	}
}

// POST /api/milling-batches/:id/close
func CloseBatchHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return web.Fail(c, apperr.Validation("invalid batch id"))
		}

		batch, err := svc.CloseBatch(uint(id))
		if err != nil {
			return web.Fail(c, err)
		}

		writeBatchAudit(c, models.AuditActionUpdate, batch.ID,
			fmt.Sprintf("Milling batch %d closed", batch.ID), nil, batch)

		return web.OK(c, toBatchResponse(*batch))
	}
}

// DELETE /api/milling-batches/:id
func DeleteBatchHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return web.Fail(c, apperr.Validation("invalid batch id"))
		}

		before, err := svc.GetBatch(uint(id))
		if err != nil {
			return web.Fail(c, err)
		}

		if err := svc.DeleteBatch(uint(id)); err != nil {
			return web.Fail(c, err)
		}

		writeBatchAudit(c, models.AuditActionDelete, uint(id),
			fmt.Sprintf("Milling batch %d deleted, %d stocks released", id, len(before.Stocks)),
			before, nil)

		return web.OK(c, fiber.Map{"id": id})
	}
}

// POST /api/milling-batches/:id/outputs
func AddOutputHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return web.Fail(c, apperr.Validation("invalid batch id"))
		}

		var body AddOutputRequest
		if err := c.BodyParser(&body); err != nil {
			return web.Fail(c, apperr.Validation("invalid request body"))
		}
		if err := validate.Struct(body); err != nil {
			return web.Fail(c, apperr.Validation("invalid request: %v", err))
		}

		pkg, err := svc.AddOutputPackage(uint(id), AddOutputInput{
			Grade:         body.Grade,
			PackageSpec:   body.PackageSpec,
			TotalWeightKg: body.TotalWeightKg,
		})
		if err != nil {
			return web.Fail(c, err)
		}

		if p, perr := auth.PrincipalFromCtx(c); perr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      p.UserID,
				UserName:    p.Name,
				EntityType:  "milling_output",
				EntityID:    pkg.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Output recorded: batch %d, %s %skg", id, pkg.Grade, pkg.TotalWeightKg.String()),
				After:       pkg,
			})
		}

		return web.Created(c, OutputResponse{
			ID:            pkg.ID,
			Grade:         pkg.Grade,
			PackageSpec:   pkg.PackageSpec,
			TotalWeightKg: pkg.TotalWeightKg,
		})
	}
}

// DELETE /api/milling-outputs/:id
func RemoveOutputHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return web.Fail(c, apperr.Validation("invalid output id"))
		}

		if err := svc.RemoveOutputPackage(uint(id)); err != nil {
			return web.Fail(c, err)
		}

		if p, perr := auth.PrincipalFromCtx(c); perr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      p.UserID,
				UserName:    p.Name,
				EntityType:  "milling_output",
				EntityID:    uint(id),
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Output %d removed", id),
			})
		}

		return web.OK(c, fiber.Map{"id": id})
	}
}
