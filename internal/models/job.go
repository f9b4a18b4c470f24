package models

import (
	"time"

	"github.com/google/uuid"
)

// JobRecord stores one generated job description. ExportCount is the only
// field ever mutated after insert; it is incremented atomically on each PDF
// export.
type JobRecord struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobTitle            string    `gorm:"type:text" json:"job_title"`
	JobDescription      string    `gorm:"type:text" json:"job_description"`
	JobExperience       string    `gorm:"type:text" json:"job_experience"`
	JobEducation        string    `gorm:"type:text" json:"job_education"`
	JobSkills           string    `gorm:"type:text" json:"job_skills"`
	JobResponsibilities string    `gorm:"type:text" json:"job_responsibilities"`
	LinkedinURL         string    `gorm:"type:text" json:"linkedin_url"`
	UserID              string    `gorm:"type:text" json:"user_id"`
	UserEmail           string    `gorm:"type:text" json:"user_email"`
	UploadedAt          time.Time `gorm:"type:timestamp;default:now()" json:"uploaded_at"`
	ExportCount         int       `gorm:"not null;default:0" json:"is_exported"`
}

func (JobRecord) TableName() string {
	return "job_records"
}

// RenderFields maps the record onto the renderer's recognized keys.
func (j *JobRecord) RenderFields() map[string]any {
	return map[string]any{
		"job_title":            j.JobTitle,
		"job_description":      j.JobDescription,
		"job_experience":       j.JobExperience,
		"job_education":        j.JobEducation,
		"job_skills":           j.JobSkills,
		"job_responsibilities": j.JobResponsibilities,
	}
}

// JobFields is the structured output of job-description generation.
type JobFields struct {
	JobTitle            string `json:"job_title"`
	JobDescription      string `json:"job_description"`
	JobExperience       string `json:"job_experience"`
	JobEducation        string `json:"job_education"`
	JobSkills           string `json:"job_skills"`
	JobResponsibilities string `json:"job_responsibilities"`
	LinkedinURL         string `json:"linkedin_url"`
}
