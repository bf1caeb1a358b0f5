package models

import "time"

// Ban lifecycle states.
const (
	BanStatusActive       = "active"
	BanStatusPendingRoles = "unbanned_pending_roles"
)

// BanRecord stores one temporary ban per (community, subject) pair,
// including the countdown notification reference and the role snapshot
// restored after the ban expires.
type BanRecord struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	CommunityID    int64  `gorm:"uniqueIndex:idx_ban_key;not null"`
	SubjectID      int64  `gorm:"uniqueIndex:idx_ban_key;not null"`
	UnbanTimestamp int64  `gorm:"not null"`
	Reason         string `gorm:"type:text"`
	IssuedBy       int64
	// DM countdown notification; zero values mean no notification exists.
	DMChatID    int64
	DMMessageID int
	// Role ids snapshotted at ban time, comma-joined (see EncodeIDList).
	RolesToRestore string `gorm:"type:text"`
	Status         string `gorm:"type:varchar(32);default:'active'"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Key returns the composite ledger key for this record.
func (r *BanRecord) Key() BanKey {
	return BanKey{CommunityID: r.CommunityID, SubjectID: r.SubjectID}
}

// Remaining returns the time left until the scheduled unban; negative
// once the ban has expired.
func (r *BanRecord) Remaining(now time.Time) time.Duration {
	return time.Unix(r.UnbanTimestamp, 0).Sub(now)
}

// HasNotification reports whether a countdown DM was delivered.
func (r *BanRecord) HasNotification() bool {
	return r.DMMessageID != 0
}

// RestoreRoleIDs decodes the role snapshot.
func (r *BanRecord) RestoreRoleIDs() []int64 {
	ids, _ := DecodeIDList(r.RolesToRestore)
	return ids
}
