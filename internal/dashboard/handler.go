package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"ricemill-backend/internal/web"
)

type RecentBatch struct {
	ID            uint            `json:"id"`
	Date          string          `json:"date"`
	MillingType   string          `json:"milling_type"`
	TotalInputKg  decimal.Decimal `json:"total_input_kg"`
	IsClosed      bool            `json:"is_closed"`
	OutputCount   int             `json:"output_count"`
	TotalOutputKg decimal.Decimal `json:"total_output_kg"`
}

type StatsResponse struct {
	AvailableStockKg decimal.Decimal `json:"available_stock_kg"`
	TotalBatches     int64           `json:"total_batches"`
	TotalOutputKg    decimal.Decimal `json:"total_output_kg"`
	RecentBatches    []RecentBatch   `json:"recent_batches"`
}

// GET /api/dashboard/stats
func StatsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.DashboardStats()
		if err != nil {
			return web.Fail(c, err)
		}

		resp := StatsResponse{
			AvailableStockKg: stats.AvailableStockKg,
			TotalBatches:     stats.TotalBatches,
			TotalOutputKg:    stats.TotalOutputKg,
			RecentBatches:    make([]RecentBatch, 0, len(stats.RecentBatches)),
		}
		for _, b := range stats.RecentBatches {
			outKg := decimal.Zero
			for _, o := range b.Outputs {
				outKg = outKg.Add(o.TotalWeightKg)
			}
			resp.RecentBatches = append(resp.RecentBatches, RecentBatch{
				ID:            b.ID,
				Date:          b.Date.Format("2006-01-02"),
				MillingType:   string(b.MillingType),
				TotalInputKg:  b.TotalInputKg,
				IsClosed:      b.IsClosed,
				OutputCount:   len(b.Outputs),
				TotalOutputKg: outKg,
			})
		}

		return web.OK(c, resp)
	}
}
