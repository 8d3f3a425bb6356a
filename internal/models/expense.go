package models

import (
	"time"

	"gorm.io/datatypes"
)

type Expense struct {
	BaseModel

	Amount      float64   `gorm:"not null"`
	Description string
	Date        time.Time `gorm:"not null;index"`
	CategoryID  uint      `gorm:"not null;index"`
	// Snapshot of the category name at creation/last edit. Renaming a
	// category does not rewrite past expenses.
	CategoryName string
	MemberID     *uint
	AddedDate    time.Time
	AddedBy      string
	// Set when this expense was derived from a calendar entry. At most one
	// expense carries a given entry id.
	CalendarEntryID *uint          `gorm:"index"`
	Comments        datatypes.JSON `gorm:"type:jsonb"`
}
