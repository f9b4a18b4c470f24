package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SentinelNotFound marks a field the extractor could not locate in the
// document. Extracted field sets never omit keys; missing data carries this
// value instead.
const SentinelNotFound = "Not Found"

// CVRecord stores one processed upload. The extracted fields live both
// flattened at the top level (direct column queries) and as the nested
// ExtractedData payload (original extraction result, file_url included).
// This duplication is deliberate.
type CVRecord struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FileName      string         `gorm:"type:text" json:"file_name"`
	FileSize      int64          `json:"file_size"`
	FileType      string         `gorm:"type:text" json:"file_type"`
	FileURL       string         `gorm:"type:text" json:"file_url"`
	ExtractedText string         `gorm:"type:text" json:"extracted_text"`
	Name          string         `gorm:"type:text" json:"name"`
	Email         string         `gorm:"type:text" json:"email"`
	Phone         string         `gorm:"type:text" json:"phone"`
	Address       string         `gorm:"type:text" json:"address"`
	Education     string         `gorm:"type:text" json:"education"`
	Experience    string         `gorm:"type:text" json:"experience"`
	Skills        string         `gorm:"type:text" json:"skills"`
	LinkedinURL   string         `gorm:"type:text" json:"linkedin_url"`
	ExtractedData datatypes.JSON `gorm:"type:jsonb" json:"extracted_data"`
	UserID        string         `gorm:"type:text" json:"user_id"`
	UserEmail     string         `gorm:"type:text" json:"user_email"`
	UploadedAt    time.Time      `gorm:"type:timestamp;default:now()" json:"uploaded_at"`
}

func (CVRecord) TableName() string {
	return "cv_records"
}

// CVFields is the structured field set extracted from one CV. Every field is
// always populated; SentinelNotFound stands in for missing data.
type CVFields struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Education   string `json:"education"`
	Experience  string `json:"experience"`
	Skills      string `json:"skills"`
	LinkedinURL string `json:"linkedin_url"`
	FileURL     string `json:"file_url"`
}

// NotFoundCVFields is the degraded result used when extraction fails after a
// successful upload: every field is the sentinel except the storage URL,
// which is already known.
func NotFoundCVFields(fileURL string) CVFields {
	return CVFields{
		Name:        SentinelNotFound,
		Email:       SentinelNotFound,
		Phone:       SentinelNotFound,
		Address:     SentinelNotFound,
		Education:   SentinelNotFound,
		Experience:  SentinelNotFound,
		Skills:      SentinelNotFound,
		LinkedinURL: SentinelNotFound,
		FileURL:     fileURL,
	}
}
