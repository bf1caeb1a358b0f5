package storage

import (
	"tg-turfbot/internal/models"

	"gorm.io/gorm"
)

// BanRepository handles database operations for BanRecord
type BanRepository struct {
	db *gorm.DB
}

// NewBanRepository creates a new BanRepository
func NewBanRepository(db *gorm.DB) *BanRepository {
	return &BanRepository{db: db}
}

// MigrateTable ensures the BanRecord table exists
func (r *BanRepository) MigrateTable() error {
	return r.db.AutoMigrate(&models.BanRecord{})
}

// Create inserts a new BanRecord
func (r *BanRepository) Create(record *models.BanRecord) error {
	return r.db.Create(record).Error
}

// Save persists changes to an existing BanRecord
func (r *BanRepository) Save(record *models.BanRecord) error {
	return r.db.Save(record).Error
}

// Delete removes the record for a ban key
func (r *BanRepository) Delete(key models.BanKey) error {
	return r.db.Where("community_id = ? AND subject_id = ?", key.CommunityID, key.SubjectID).
		Delete(&models.BanRecord{}).Error
}

// GetAll returns every persisted ban record
func (r *BanRepository) GetAll() ([]*models.BanRecord, error) {
	var records []*models.BanRecord
	result := r.db.Find(&records)
	return records, result.Error
}
