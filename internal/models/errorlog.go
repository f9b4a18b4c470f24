package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ErrorRecord is an append-only diagnostic entry. The service writes these
// and never reads them back.
type ErrorRecord struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Message   string         `gorm:"type:text" json:"error"`
	Endpoint  string         `gorm:"type:text" json:"endpoint"`
	Timestamp time.Time      `gorm:"type:timestamp;default:now()" json:"timestamp"`
	Context   datatypes.JSON `gorm:"type:jsonb" json:"context"`
}

func (ErrorRecord) TableName() string {
	return "error_records"
}
