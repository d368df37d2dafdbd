package models

import "time"

type Farmer struct {
	ID              uint `gorm:"primaryKey"`
	ProducerGroupID uint `gorm:"index;not null"`
	ProducerGroup   ProducerGroup
	Name            string `gorm:"size:100;not null"`
	Phone           string `gorm:"size:30"`
	Address         string `gorm:"size:255"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
