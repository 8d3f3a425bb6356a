package models

import "gorm.io/datatypes"

type Setting struct {
	BaseModel

	Key   string         `gorm:"uniqueIndex;not null"`
	Value datatypes.JSON `gorm:"type:jsonb"`
}

const SettingKeyFullAmount = "fullAmount"
