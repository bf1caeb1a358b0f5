package storage

import (
	"tg-turfbot/internal/models"

	"gorm.io/gorm"
)

// PermissionRepository handles database operations for PermissionRule
type PermissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository creates a new PermissionRepository
func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

// MigrateTable ensures the PermissionRule table exists
func (r *PermissionRepository) MigrateTable() error {
	return r.db.AutoMigrate(&models.PermissionRule{})
}

// Upsert stores or overwrites the rule for one (community, target, command) key
func (r *PermissionRepository) Upsert(rule *models.PermissionRule) error {
	var existing models.PermissionRule
	result := r.db.Where(
		"community_id = ? AND target_kind = ? AND target_id = ? AND command = ?",
		rule.CommunityID, rule.TargetKind, rule.TargetID, rule.Command,
	).First(&existing)
	if result.Error == nil {
		existing.Effect = rule.Effect
		return r.db.Save(&existing).Error
	}
	return r.db.Create(rule).Error
}

// Delete removes the rule for one (community, target, command) key
func (r *PermissionRepository) Delete(communityID int64, kind models.TargetKind, targetID int64, command string) error {
	return r.db.Where(
		"community_id = ? AND target_kind = ? AND target_id = ? AND command = ?",
		communityID, kind, targetID, command,
	).Delete(&models.PermissionRule{}).Error
}

// GetAll returns every persisted permission rule
func (r *PermissionRepository) GetAll() ([]*models.PermissionRule, error) {
	var rules []*models.PermissionRule
	result := r.db.Find(&rules)
	return rules, result.Error
}
