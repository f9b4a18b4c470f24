package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"hrfirst/cv-parser/internal/models"
	"hrfirst/cv-parser/internal/services"
)

type UploadHandler struct {
	processor services.FileProcessor
	errSink   services.ErrorSink
	logger    *zap.Logger
}

func NewUploadHandler(
	processor services.FileProcessor,
	errSink services.ErrorSink,
	logger *zap.Logger,
) *UploadHandler {
	return &UploadHandler{
		processor: processor,
		errSink:   errSink,
		logger:    logger,
	}
}

// HandleUploadFiles handles POST /api/upload-files-process/. Files are
// processed strictly in order, one at a time; a failed file is counted and
// skipped, never aborting the rest. The summary is built only after every
// file has been attempted.
func (h *UploadHandler) HandleUploadFiles(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	userID, userEmail := identityFromSession(c.FormValue("session_cookie"))

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no files uploaded",
		})
	}

	fileCounter := 0
	correctFiles := 0
	details := make(map[string]models.CVFields)

	for _, file := range files {
		fileCounter++

		fields, err := h.processor.ProcessFile(c.Context(), file, userID, userEmail)
		if err != nil {
			// Already logged with file context by the pipeline.
			continue
		}

		correctFiles++
		details[file.Filename] = fields
	}

	incorrectFiles := fileCounter - correctFiles

	return c.JSON(models.UploadSummaryResponse{
		Message: fmt.Sprintf(
			"You have uploaded %d files, %d files are correct processed and %d files are not processed.",
			fileCounter, correctFiles, incorrectFiles,
		),
		Details: details,
	})
}
