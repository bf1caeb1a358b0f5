package storage

import (
	"errors"

	"tg-turfbot/internal/models"

	"gorm.io/gorm"
)

// BridgeRepository handles database operations for bridge profiles and presets
type BridgeRepository struct {
	db *gorm.DB
}

// NewBridgeRepository creates a new BridgeRepository
func NewBridgeRepository(db *gorm.DB) *BridgeRepository {
	return &BridgeRepository{db: db}
}

// MigrateTable ensures the bridge tables exist
func (r *BridgeRepository) MigrateTable() error {
	return r.db.AutoMigrate(&models.BridgeProfile{}, &models.BridgePreset{})
}

// GetProfile returns a user's bridge profile, or nil if absent
func (r *BridgeRepository) GetProfile(userID int64) (*models.BridgeProfile, error) {
	var profile models.BridgeProfile
	result := r.db.Where("user_id = ?", userID).First(&profile)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &profile, nil
}

// SaveProfile stores or updates a user's bridge profile
func (r *BridgeRepository) SaveProfile(profile *models.BridgeProfile) error {
	existing, err := r.GetProfile(profile.UserID)
	if err != nil {
		return err
	}
	if existing != nil {
		profile.ID = existing.ID
	}
	return r.db.Save(profile).Error
}

// SavePreset stores or overwrites a named preset
func (r *BridgeRepository) SavePreset(preset *models.BridgePreset) error {
	var existing models.BridgePreset
	result := r.db.Where("user_id = ? AND name = ?", preset.UserID, preset.Name).First(&existing)
	if result.Error == nil {
		existing.Format = preset.Format
		return r.db.Save(&existing).Error
	}
	return r.db.Create(preset).Error
}

// GetPresets returns all presets saved by a user
func (r *BridgeRepository) GetPresets(userID int64) ([]*models.BridgePreset, error) {
	var presets []*models.BridgePreset
	result := r.db.Where("user_id = ?", userID).Find(&presets)
	return presets, result.Error
}
