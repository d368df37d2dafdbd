package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MillingType string

const (
	MillingWhite MillingType = "WHITE" // 백미
	MillingBrown MillingType = "BROWN" // 현미
)

// MillingBatch: one processing run. Consumes a set of stocks as input and
// records output packages. Once closed it is an audit boundary: no structural
// mutation of inputs or outputs is allowed and there is no reopen.
type MillingBatch struct {
	ID          uint        `gorm:"primaryKey"`
	Date        time.Time   `gorm:"index;not null"`
	MillingType MillingType `gorm:"size:20;not null"`
	// Sum of the input stock weights, fixed at creation time.
	TotalInputKg decimal.Decimal        `gorm:"type:decimal(12,2);not null"`
	IsClosed     bool                   `gorm:"not null;default:false"`
	Note         string                 `gorm:"size:255"`
	Stocks       []Stock                `gorm:"foreignKey:MillingBatchID"`
	Outputs      []MillingOutputPackage `gorm:"foreignKey:MillingBatchID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
