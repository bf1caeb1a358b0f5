package models

import "time"

// Community holds per-community settings. Rows are created lazily when
// a community changes a setting away from the process defaults.
type Community struct {
	ID          uint   `gorm:"primaryKey"`
	CommunityID int64  `gorm:"uniqueIndex;not null"`
	Language    string `gorm:"type:varchar(8)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
