package model

import "time"

// A generated bulk download living in storage until ExpiresAt
type TemporaryArchive struct {
	BaseModel
	ChecklistID string    `gorm:"type:text;not null;index" json:"checklistId"`
	ObjectKey   string    `gorm:"type:text;not null;uniqueIndex" json:"objectKey"`
	ExpiresAt   time.Time `gorm:"not null;index" json:"expiresAt"`
}

func (ta TemporaryArchive) TableName() string {
	return "temporary_archives"
}
