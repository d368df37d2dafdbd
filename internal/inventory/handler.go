package inventory

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

type CreateStockRequest struct {
	FarmerID       uint            `json:"farmer_id" validate:"required"`
	VarietyID      uint            `json:"variety_id" validate:"required"`
	ProductionYear int             `json:"production_year" validate:"required,min=2000"`
	WeightKg       decimal.Decimal `json:"weight_kg"`
	IncomingDate   string          `json:"incoming_date" validate:"required"` // "2024-05-01"
	BagNo          int             `json:"bag_no"`
}

type StockResponse struct {
	ID             uint            `json:"id"`
	FarmerID       uint            `json:"farmer_id"`
	FarmerName     string          `json:"farmer_name"`
	GroupCertType  string          `json:"group_cert_type"`
	VarietyID      uint            `json:"variety_id"`
	VarietyName    string          `json:"variety_name"`
	ProductionYear int             `json:"production_year"`
	WeightKg       decimal.Decimal `json:"weight_kg"`
	LotNo          *string         `json:"lot_no"`
	Status         string          `json:"status"`
	IncomingDate   string          `json:"incoming_date"`
	BagNo          int             `json:"bag_no"`
}

func toStockResponse(s models.Stock) StockResponse {
	return StockResponse{
		ID:             s.ID,
		FarmerID:       s.FarmerID,
		FarmerName:     s.Farmer.Name,
		GroupCertType:  s.Farmer.ProducerGroup.CertType,
		VarietyID:      s.VarietyID,
		VarietyName:    s.Variety.Name,
		ProductionYear: s.ProductionYear,
		WeightKg:       s.WeightKg,
		LotNo:          s.LotNo,
		Status:         string(s.Status),
		IncomingDate:   s.IncomingDate.Format("2006-01-02"),
		BagNo:          s.BagNo,
	}
}

// GET /api/stocks?farmer_id=&variety_id=&from=&to=
func ListStocksHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var filter StockFilter

		if v := c.QueryInt("farmer_id", 0); v > 0 {
			id := uint(v)
			filter.FarmerID = &id
		}
		if v := c.QueryInt("variety_id", 0); v > 0 {
			id := uint(v)
			filter.VarietyID = &id
		}
		if v := c.Query("from"); v != "" {
			d, err := time.Parse("2006-01-02", v)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from must be 'YYYY-MM-DD'")
			}
			filter.From = &d
		}
		if v := c.Query("to"); v != "" {
			d, err := time.Parse("2006-01-02", v)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to must be 'YYYY-MM-DD'")
			}
			filter.To = &d
		}

		stocks, err := svc.ListAvailableStock(filter)
		if err != nil {
			return web.Fail(c, err)
		}

		resp := make([]StockResponse, 0, len(stocks))
		for _, s := range stocks {
			resp = append(resp, toStockResponse(s))
		}
		return web.OK(c, resp)
	}
}

// POST /api/stocks
func CreateStockHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStockRequest
		if err := c.BodyParser(&body); err != nil {
			return web.Fail(c, apperr.Validation("invalid request body"))
		}
		if err := validate.Struct(body); err != nil {
			return web.Fail(c, apperr.Validation("invalid request: %v", err))
		}

		d, err := time.Parse("2006-01-02", body.IncomingDate)
		if err != nil {
			return web.Fail(c, apperr.Validation("incoming_date must be 'YYYY-MM-DD'"))
		}

		stock, err := svc.CreateStock(CreateStockInput{
			FarmerID:       body.FarmerID,
			VarietyID:      body.VarietyID,
			ProductionYear: body.ProductionYear,
			WeightKg:       body.WeightKg,
			IncomingDate:   d,
			BagNo:          body.BagNo,
		})
		if err != nil {
			return web.Fail(c, err)
		}

		if p, perr := auth.PrincipalFromCtx(c); perr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      p.UserID,
				UserName:    p.Name,
				EntityType:  "stock",
				EntityID:    stock.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Stock in: %s %s %skg", stock.Farmer.Name, stock.Variety.Name, stock.WeightKg.String()),
				After:       stock,
			})
		}

		return web.Created(c, toStockResponse(*stock))
	}
}

// DELETE /api/stocks/:id
func DeleteStockHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return web.Fail(c, apperr.Validation("invalid stock id"))
		}

		if err := svc.DeleteStock(uint(id)); err != nil {
			return web.Fail(c, err)
		}

		if p, perr := auth.PrincipalFromCtx(c); perr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      p.UserID,
				UserName:    p.Name,
				EntityType:  "stock",
				EntityID:    uint(id),
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Stock %d deleted", id),
			})
		}

		return web.OK(c, fiber.Map{"id": id})
	}
}
