package repositories

import (
	"gorm.io/gorm"

	"hrfirst/cv-parser/internal/apperrors"
	"hrfirst/cv-parser/internal/models"
)

type CVRepository interface {
	Create(record *models.CVRecord) error
}

type cvRepository struct {
	db *gorm.DB
}

func NewCVRepository(db *gorm.DB) CVRepository {
	return &cvRepository{db: db}
}

// Create implements CVRepository.
func (r *cvRepository) Create(record *models.CVRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return apperrors.New(apperrors.KindPersistence, "failed to create cv record: %w", err)
	}

	return nil
}
