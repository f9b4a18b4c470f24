package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hrfirst/cv-parser/internal/apperrors"
	"hrfirst/cv-parser/internal/repositories"
	"hrfirst/cv-parser/internal/services"
)

type ExportHandler struct {
	jobRepo  repositories.JobRepository
	renderer services.Renderer
	errSink  services.ErrorSink
}

func NewExportHandler(
	jobRepo repositories.JobRepository,
	renderer services.Renderer,
	errSink services.ErrorSink,
) *ExportHandler {
	return &ExportHandler{
		jobRepo:  jobRepo,
		renderer: renderer,
		errSink:  errSink,
	}
}

// HandleExportPDF handles GET /api/get-job-description-pdf/:id. The id is
// validated before any lookup; the counter increment and the read happen as
// one atomic operation.
func (h *ExportHandler) HandleExportPDF(c *fiber.Ctx) error {
	idParam := c.Params("id")

	jobID, err := uuid.Parse(idParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	record, err := h.jobRepo.FindAndIncrementExport(jobID)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Job description not found",
			})
		}

		h.errSink.Log("export-job-description-pdf", err.Error(), map[string]any{
			"job_id": idParam,
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error exporting PDF.",
		})
	}

	pdfBytes, err := h.renderer.Render(record.RenderFields())
	if err != nil {
		h.errSink.Log("export-job-description-pdf", err.Error(), map[string]any{
			"job_id": idParam,
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error exporting PDF.",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", exportFilename(record.JobTitle, time.Now())))

	return c.Send(pdfBytes)
}

func exportFilename(title string, now time.Time) string {
	safeTitle := strings.ToLower(strings.ReplaceAll(title, " ", "-"))
	if safeTitle == "" {
		safeTitle = "job-description"
	}
	return fmt.Sprintf("%s-%s.pdf", safeTitle, now.Format("2006-01-02"))
}
