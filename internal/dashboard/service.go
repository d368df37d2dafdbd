// Package dashboard is the read-only reconciliation view over the stock
// ledger and milling batches. It never mutates anything and a point-in-time
// snapshot is good enough; it is not required to be transactionally
// consistent with concurrent writes.
package dashboard

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ricemill-backend/internal/models"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type Stats struct {
	AvailableStockKg decimal.Decimal       `json:"available_stock_kg"`
	TotalBatches     int64                 `json:"total_batches"`
	TotalOutputKg    decimal.Decimal       `json:"total_output_kg"`
	RecentBatches    []models.MillingBatch `json:"recent_batches"`
}

// DashboardStats computes the summary as of call time. Empty data yields
// zeros and an empty slice, never an error.
func (s *Service) DashboardStats() (*Stats, error) {
	stats := &Stats{
		AvailableStockKg: decimal.Zero,
		TotalOutputKg:    decimal.Zero,
		RecentBatches:    make([]models.MillingBatch, 0),
	}

	var availableKg decimal.NullDecimal
	row := s.db.Model(&models.Stock{}).
		Where("status = ?", models.StockAvailable).
		Select("SUM(weight_kg)").
		Row()
	if err := row.Scan(&availableKg); err != nil {
		return nil, err
	}
	if availableKg.Valid {
		stats.AvailableStockKg = availableKg.Decimal
	}

	if err := s.db.Model(&models.MillingBatch{}).Count(&stats.TotalBatches).Error; err != nil {
		return nil, err
	}

	var outputKg decimal.NullDecimal
	row = s.db.Model(&models.MillingOutputPackage{}).
		Select("SUM(total_weight_kg)").
		Row()
	if err := row.Scan(&outputKg); err != nil {
		return nil, err
	}
	if outputKg.Valid {
		stats.TotalOutputKg = outputKg.Decimal
	}

	if err := s.db.
		Preload("Outputs").
		Order("date DESC, id DESC").
		Limit(5).
		Find(&stats.RecentBatches).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
