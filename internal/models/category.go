package models

import "time"

type Category struct {
	BaseModel

	Name            string `gorm:"uniqueIndex;not null"`
	Color           string `gorm:"default:#cccccc"`
	Icon            string // emoji or icon name
	IconURL         string
	AllocatedAmount float64 `gorm:"not null;default:0"`
	CreatedBy       string  `gorm:"default:system"`
	CreatedDate     time.Time
}
