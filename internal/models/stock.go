package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type StockStatus string

const (
	StockAvailable StockStatus = "AVAILABLE"
	StockConsumed  StockStatus = "CONSUMED"
)

// Stock: one incoming bag/lot of raw grain from a farmer. A stock stays
// AVAILABLE until it is pulled into exactly one milling batch, at which point
// it becomes CONSUMED and its weight/ownership must not change anymore
// (batch input totals depend on it).
type Stock struct {
	ID        uint `gorm:"primaryKey"`
	FarmerID  uint `gorm:"index;not null"`
	Farmer    Farmer
	VarietyID uint `gorm:"index;not null"`
	Variety   Variety
	// Harvest year of the grain.
	ProductionYear int             `gorm:"not null"`
	WeightKg       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Traceability lot number. Only assigned for certified producer groups;
	// NULL for the "일반" (general) tier.
	LotNo        *string     `gorm:"size:50"`
	Status       StockStatus `gorm:"size:20;not null;index;default:'AVAILABLE'"`
	IncomingDate time.Time   `gorm:"index;not null"`
	BagNo        int         `gorm:"not null;default:1"`
	// Set exactly when the stock is consumed; a stock belongs to at most one
	// batch for its lifetime.
	MillingBatchID *uint `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
