package models

import (
	"time"

	"gorm.io/datatypes"
)

type CalendarEntry struct {
	BaseModel

	Title        string    `gorm:"not null"`
	Description  string
	Date         time.Time `gorm:"not null;index"`
	CategoryID   *uint
	CategoryName string
	Price        float64 `gorm:"not null;default:0"`
	CreatedBy    string  `gorm:"default:system"`
	AddedDate    time.Time
	Comments     datatypes.JSON `gorm:"type:jsonb"`
}
