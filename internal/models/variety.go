package models

import "time"

// Variety: rice cultivar master data (ex: 신동진, 삼광).
type Variety struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:50;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
