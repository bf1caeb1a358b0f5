package storage

import (
	"errors"

	"tg-turfbot/internal/models"

	"gorm.io/gorm"
)

// WaitlistRepository handles database operations for Waitlist
type WaitlistRepository struct {
	db *gorm.DB
}

// NewWaitlistRepository creates a new WaitlistRepository
func NewWaitlistRepository(db *gorm.DB) *WaitlistRepository {
	return &WaitlistRepository{db: db}
}

// MigrateTable ensures the Waitlist table exists
func (r *WaitlistRepository) MigrateTable() error {
	return r.db.AutoMigrate(&models.Waitlist{})
}

// Get returns the waitlist for a community, or nil if none exists yet
func (r *WaitlistRepository) Get(communityID int64) (*models.Waitlist, error) {
	var list models.Waitlist
	result := r.db.Where("community_id = ?", communityID).First(&list)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &list, nil
}

// Save persists the full waitlist state
func (r *WaitlistRepository) Save(list *models.Waitlist) error {
	return r.db.Save(list).Error
}

// GetAll returns every persisted waitlist
func (r *WaitlistRepository) GetAll() ([]*models.Waitlist, error) {
	var lists []*models.Waitlist
	result := r.db.Find(&lists)
	return lists, result.Error
}
