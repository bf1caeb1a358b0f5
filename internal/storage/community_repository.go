package storage

import (
	"errors"

	"tg-turfbot/internal/logger"
	"tg-turfbot/internal/models"

	"gorm.io/gorm"
)

// CommunityRepository handles database operations for Community settings
type CommunityRepository struct {
	db *gorm.DB
}

// NewCommunityRepository creates a new CommunityRepository
func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{db: db}
}

// MigrateTable ensures the Community table exists
func (r *CommunityRepository) MigrateTable() error {
	return r.db.AutoMigrate(&models.Community{})
}

// Get returns the community's settings row, or nil if none is stored
func (r *CommunityRepository) Get(communityID int64) (*models.Community, error) {
	var community models.Community
	result := r.db.Where("community_id = ?", communityID).First(&community)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &community, nil
}

// Language returns the community's configured language, or "" when the
// community never picked one
func (r *CommunityRepository) Language(communityID int64) string {
	community, err := r.Get(communityID)
	if err != nil {
		logger.Warningf("Error loading settings for community %d: %v", communityID, err)
		return ""
	}
	if community == nil {
		return ""
	}
	return community.Language
}

// SetLanguage stores the community's language choice
func (r *CommunityRepository) SetLanguage(communityID int64, lang string) error {
	community, err := r.Get(communityID)
	if err != nil {
		return err
	}
	if community == nil {
		community = &models.Community{CommunityID: communityID}
	}
	community.Language = lang
	return r.db.Save(community).Error
}
