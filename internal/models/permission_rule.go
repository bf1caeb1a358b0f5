package models

import "time"

// TargetKind discriminates role and user permission targets.
type TargetKind string

const (
	TargetRole TargetKind = "role"
	TargetUser TargetKind = "user"
)

// Rule effects.
const (
	EffectAllow = "allow"
	EffectDeny  = "deny"
)

// PermissionRule is an explicit per-community allow/deny rule for one
// command against one role or user target. Absence of a rule means
// "undecided" and resolution cascades to the next precedence level.
type PermissionRule struct {
	ID          uint       `gorm:"primaryKey;autoIncrement"`
	CommunityID int64      `gorm:"uniqueIndex:idx_perm_rule;not null"`
	TargetKind  TargetKind `gorm:"uniqueIndex:idx_perm_rule;type:varchar(8);not null"`
	TargetID    int64      `gorm:"uniqueIndex:idx_perm_rule;not null"`
	Command     string     `gorm:"uniqueIndex:idx_perm_rule;type:varchar(64);not null"`
	Effect      string     `gorm:"type:varchar(8);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
