package models

import "time"

// BridgeProfile holds one user's turf report relay settings: the intro
// line, the active message format and the outgoing webhook URL.
type BridgeProfile struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	UserID     int64  `gorm:"uniqueIndex;not null"`
	Intro      string `gorm:"type:text"`
	Format     string `gorm:"type:text"`
	WebhookURL string `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BridgePreset is a named, reusable message format saved by a user.
type BridgePreset struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"uniqueIndex:idx_preset_name;not null"`
	Name      string `gorm:"uniqueIndex:idx_preset_name;type:varchar(64);not null"`
	Format    string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
