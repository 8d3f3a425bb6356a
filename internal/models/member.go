package models

import "time"

// Member lifecycle states. Deactivated members stay queryable by id but are
// excluded from listings; purging removes the row entirely.
const (
	MemberStatusActive      = "active"
	MemberStatusDeactivated = "deactivated"
)

type Member struct {
	BaseModel

	Name         string `gorm:"not null"`
	Phone        string `gorm:"uniqueIndex;not null"`
	PasswordHash string // empty means login is rejected
	IsAdmin      bool   `gorm:"not null;default:false"`
	Status       string `gorm:"not null;default:active"`
	AddedDate    time.Time
}

func (m *Member) IsActive() bool {
	return m.Status == MemberStatusActive
}
