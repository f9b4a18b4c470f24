package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hrfirst/cv-parser/internal/models"
	"hrfirst/cv-parser/internal/repositories"
	"hrfirst/cv-parser/internal/services"
)

type JobHandler struct {
	extractor services.ExtractorService
	jobRepo   repositories.JobRepository
	errSink   services.ErrorSink
}

func NewJobHandler(
	extractor services.ExtractorService,
	jobRepo repositories.JobRepository,
	errSink services.ErrorSink,
) *JobHandler {
	return &JobHandler{
		extractor: extractor,
		jobRepo:   jobRepo,
		errSink:   errSink,
	}
}

// HandleCreateJobDescription handles POST /api/create-job-description/.
// When generation succeeds but the insert fails, the generated record is
// lost and the caller sees a generic error; the failure is logged with the
// generated title so the loss is traceable.
func (h *JobHandler) HandleCreateJobDescription(c *fiber.Ctx) error {
	information := c.FormValue("information")
	if information == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "information is required",
		})
	}

	userID, userEmail := identityFromSession(c.FormValue("session_cookie"))

	fields, err := h.extractor.GenerateJobDescription(c.Context(), information)
	if err != nil {
		h.errSink.Log("create-job-description", err.Error(), map[string]any{
			"user_id":    userID,
			"user_email": userEmail,
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error creating job description.",
		})
	}

	record := &models.JobRecord{
		ID:                  uuid.New(),
		JobTitle:            fields.JobTitle,
		JobDescription:      fields.JobDescription,
		JobExperience:       fields.JobExperience,
		JobEducation:        fields.JobEducation,
		JobSkills:           fields.JobSkills,
		JobResponsibilities: fields.JobResponsibilities,
		LinkedinURL:         fields.LinkedinURL,
		UserID:              userID,
		UserEmail:           userEmail,
		UploadedAt:          time.Now(),
		ExportCount:         0,
	}

	if err := h.jobRepo.Create(record); err != nil {
		h.errSink.Log("create-job-description", err.Error(), map[string]any{
			"user_id":    userID,
			"user_email": userEmail,
			"job_title":  fields.JobTitle,
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error creating job description.",
		})
	}

	return c.JSON(models.JobDescriptionResponse{
		Message:        "Job description created successfully",
		JobDescription: record,
	})
}
