package storage

import (
	"errors"

	"tg-turfbot/internal/models"

	"gorm.io/gorm"
)

// ReminderRepository handles database operations for Reminder
type ReminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new ReminderRepository
func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// MigrateTable ensures the Reminder table exists
func (r *ReminderRepository) MigrateTable() error {
	return r.db.AutoMigrate(&models.Reminder{})
}

// Get returns the community's reminder, or nil if none is stored
func (r *ReminderRepository) Get(communityID int64) (*models.Reminder, error) {
	var reminder models.Reminder
	result := r.db.Where("community_id = ?", communityID).First(&reminder)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &reminder, nil
}

// Set stores or replaces the community's reminder text
func (r *ReminderRepository) Set(communityID int64, text string) error {
	reminder, err := r.Get(communityID)
	if err != nil {
		return err
	}
	if reminder == nil {
		reminder = &models.Reminder{CommunityID: communityID}
	}
	reminder.Text = text
	return r.db.Save(reminder).Error
}
