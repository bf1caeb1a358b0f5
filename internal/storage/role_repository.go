package storage

import (
	"errors"

	"tg-turfbot/internal/models"

	"gorm.io/gorm"
)

// RoleRepository handles database operations for the role artifact registry
type RoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// MigrateTable ensures the Role and RoleMember tables exist
func (r *RoleRepository) MigrateTable() error {
	return r.db.AutoMigrate(&models.Role{}, &models.RoleMember{})
}

// GetByName returns the role with the given name, or nil if absent
func (r *RoleRepository) GetByName(communityID int64, name string) (*models.Role, error) {
	var role models.Role
	result := r.db.Where("community_id = ? AND name = ?", communityID, name).First(&role)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &role, nil
}

// Create inserts a new role definition
func (r *RoleRepository) Create(role *models.Role) error {
	return r.db.Create(role).Error
}

// DeleteRole removes a role definition and all its memberships
func (r *RoleRepository) DeleteRole(roleID int64) error {
	if err := r.db.Where("role_id = ?", roleID).Delete(&models.RoleMember{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Role{}, roleID).Error
}

// AddMember records a user's membership in a role, idempotently
func (r *RoleRepository) AddMember(roleID int64, communityID int64, userID int64) error {
	var existing models.RoleMember
	result := r.db.Where("role_id = ? AND user_id = ?", roleID, userID).First(&existing)
	if result.Error == nil {
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return r.db.Create(&models.RoleMember{RoleID: roleID, UserID: userID, CommunityID: communityID}).Error
}

// RemoveMember removes a user's membership in a role
func (r *RoleRepository) RemoveMember(roleID int64, userID int64) error {
	return r.db.Where("role_id = ? AND user_id = ?", roleID, userID).
		Delete(&models.RoleMember{}).Error
}

// MemberRoleIDs returns the ids of all roles a user holds in a community,
// ordered by rank descending
func (r *RoleRepository) MemberRoleIDs(communityID int64, userID int64) ([]int64, error) {
	var ids []int64
	result := r.db.Model(&models.RoleMember{}).
		Joins("JOIN roles ON roles.id = role_members.role_id").
		Where("role_members.community_id = ? AND role_members.user_id = ?", communityID, userID).
		Order("roles.rank DESC").
		Pluck("role_members.role_id", &ids)
	return ids, result.Error
}

// MemberIDs returns the ids of all users holding a role
func (r *RoleRepository) MemberIDs(roleID int64) ([]int64, error) {
	var ids []int64
	result := r.db.Model(&models.RoleMember{}).
		Where("role_id = ?", roleID).
		Pluck("user_id", &ids)
	return ids, result.Error
}

// RoleExists reports whether a role id still has a definition
func (r *RoleRepository) RoleExists(roleID int64) (bool, error) {
	var count int64
	result := r.db.Model(&models.Role{}).Where("id = ?", roleID).Count(&count)
	return count > 0, result.Error
}
