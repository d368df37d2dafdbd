package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MillingOutputPackage: processed product recorded against a batch.
// No yield bound is enforced against the batch input weight; processing loss
// and byproducts make strict equality wrong, so the relation is reported on
// the dashboard instead.
type MillingOutputPackage struct {
	ID             uint `gorm:"primaryKey"`
	MillingBatchID uint `gorm:"index;not null"`
	// Product grade, e.g. "PREMIUM", "STANDARD".
	Grade string `gorm:"size:50;not null"`
	// Package unit description, e.g. "10kg", "20kg".
	PackageSpec   string          `gorm:"size:30"`
	TotalWeightKg decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
