package models

import "time"

// Reminder is the per-community reminder text sent on demand.
type Reminder struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	CommunityID int64  `gorm:"uniqueIndex"`
	Text        string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
