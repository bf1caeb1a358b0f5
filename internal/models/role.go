package models

import "time"

// Role is a bot-managed role artifact. Telegram has no native role
// system, so role definitions and memberships live in the database and
// act as visible membership markers and permission targets. Rank orders
// roles for permission resolution (higher outranks lower). There is no
// implicit everyone-role.
type Role struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	CommunityID int64  `gorm:"uniqueIndex:idx_role_name;not null"`
	Name        string `gorm:"uniqueIndex:idx_role_name;type:varchar(64);not null"`
	Rank        int    `gorm:"default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoleMember records one user's membership in a role artifact.
type RoleMember struct {
	ID          uint  `gorm:"primaryKey;autoIncrement"`
	RoleID      int64 `gorm:"uniqueIndex:idx_role_member;not null"`
	UserID      int64 `gorm:"uniqueIndex:idx_role_member;not null"`
	CommunityID int64 `gorm:"index;not null"`
	CreatedAt   time.Time
}
