package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hrfirst/cv-parser/internal/apperrors"
	"hrfirst/cv-parser/internal/models"
)

type JobRepository interface {
	Create(record *models.JobRecord) error
	// FindAndIncrementExport bumps the export counter and returns the
	// updated record in one statement. Concurrent exports of the same id
	// never lose an increment.
	FindAndIncrementExport(id uuid.UUID) (*models.JobRecord, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create implements JobRepository.
func (r *jobRepository) Create(record *models.JobRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return apperrors.New(apperrors.KindPersistence, "failed to create job record: %w", err)
	}

	return nil
}

// FindAndIncrementExport implements JobRepository. The UPDATE ... RETURNING
// round trip is the postgres equivalent of a find-one-and-update with $inc.
func (r *jobRepository) FindAndIncrementExport(id uuid.UUID) (*models.JobRecord, error) {
	var record models.JobRecord

	result := r.db.Model(&record).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		UpdateColumn("export_count", gorm.Expr("export_count + ?", 1))

	if result.Error != nil {
		return nil, apperrors.New(apperrors.KindPersistence, "failed to increment export counter: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, apperrors.New(apperrors.KindNotFound, "job description not found")
	}

	return &record, nil
}
