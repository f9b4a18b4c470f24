package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hrfirst/cv-parser/internal/models"
	"hrfirst/cv-parser/internal/repositories"
)

// ErrorSink records failures as ErrorRecords. It is a diagnostic sink only;
// nothing in the service reads the records back.
type ErrorSink interface {
	Log(endpoint, message string, context map[string]any)
}

type errorSink struct {
	repo   repositories.ErrorRepository
	logger *zap.Logger
}

func NewErrorSink(repo repositories.ErrorRepository, logger *zap.Logger) ErrorSink {
	return &errorSink{repo: repo, logger: logger}
}

// Log implements ErrorSink. A sink that cannot persist still leaves a trace
// in the process log.
func (s *errorSink) Log(endpoint, message string, context map[string]any) {
	s.logger.Error(message,
		zap.String("endpoint", endpoint),
		zap.Any("context", context),
	)

	contextJSON, err := json.Marshal(context)
	if err != nil {
		contextJSON = []byte("{}")
	}

	record := &models.ErrorRecord{
		ID:        uuid.New(),
		Message:   message,
		Endpoint:  endpoint,
		Timestamp: time.Now(),
		Context:   contextJSON,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Warn("error logging failed",
			zap.Error(err),
			zap.String("original_error", message),
		)
	}
}
