package repositories

import (
	"gorm.io/gorm"

	"hrfirst/cv-parser/internal/apperrors"
	"hrfirst/cv-parser/internal/models"
)

type ErrorRepository interface {
	Create(record *models.ErrorRecord) error
}

type errorRepository struct {
	db *gorm.DB
}

func NewErrorRepository(db *gorm.DB) ErrorRepository {
	return &errorRepository{db: db}
}

// Create implements ErrorRepository.
func (r *errorRepository) Create(record *models.ErrorRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return apperrors.New(apperrors.KindPersistence, "failed to create error record: %w", err)
	}

	return nil
}
