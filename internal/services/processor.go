package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hrfirst/cv-parser/internal/apperrors"
	"hrfirst/cv-parser/internal/models"
	"hrfirst/cv-parser/internal/repositories"
)

const officeViewerURL = "https://view.officeapps.live.com/op/view.aspx?src=%s"

// FileProcessor runs the per-file ingestion pipeline: read bytes, upload to
// the object store, extract text from a temp copy, extract structured fields,
// persist the combined record. A failure in one file never touches another.
type FileProcessor interface {
	ProcessFile(ctx context.Context, file *multipart.FileHeader, userID, userEmail string) (models.CVFields, error)
}

type fileProcessor struct {
	blob      BlobService
	texts     TextExtractor
	extractor ExtractorService
	cvRepo    repositories.CVRepository
	errSink   ErrorSink
	logger    *zap.Logger
}

func NewFileProcessor(
	blob BlobService,
	texts TextExtractor,
	extractor ExtractorService,
	cvRepo repositories.CVRepository,
	errSink ErrorSink,
	logger *zap.Logger,
) FileProcessor {
	return &fileProcessor{
		blob:      blob,
		texts:     texts,
		extractor: extractor,
		cvRepo:    cvRepo,
		errSink:   errSink,
		logger:    logger,
	}
}

// ProcessFile implements FileProcessor. Every failure is logged here with
// file context; callers only count the error.
func (p *fileProcessor) ProcessFile(ctx context.Context, file *multipart.FileHeader, userID, userEmail string) (models.CVFields, error) {
	contentType := file.Header.Get("Content-Type")

	data, err := readAll(file)
	if err != nil {
		p.logFileError(userID, userEmail, fmt.Sprintf("error reading file %s: %v", file.Filename, err))
		return models.CVFields{}, apperrors.Wrap(apperrors.KindValidation, err)
	}

	// Upload first: the storage URL must be known even when extraction
	// fails later.
	blobKey := fmt.Sprintf("%s/%s", userID, file.Filename)
	rawURL, err := p.blob.Put(ctx, blobKey, data, contentType)
	if err != nil {
		p.logFileError(userID, userEmail, fmt.Sprintf("error uploading file %s: %v", file.Filename, err))
		return models.CVFields{}, err
	}

	accessURL := rawURL
	switch contentType {
	case ContentTypePDF:
	case ContentTypeDocx:
		// Word documents are served through the office viewer deep link.
		accessURL = fmt.Sprintf(officeViewerURL, url.QueryEscape(rawURL))
	default:
		p.logFileError(userID, userEmail, fmt.Sprintf("unsupported file type: %s", contentType))
		return models.CVFields{}, apperrors.New(apperrors.KindValidation, "unsupported file type: %s", contentType)
	}

	text, err := p.texts.Extract(contentType, file.Filename, data)
	if err != nil {
		p.logFileError(userID, userEmail, fmt.Sprintf("error extracting text from %s: %v", file.Filename, err))
		return models.CVFields{}, err
	}

	fields, err := p.extractor.ExtractCVData(ctx, text)
	if err != nil {
		// Degrade instead of failing the file: the upload already
		// happened, so keep the record with sentinel fields.
		p.logFileError(userID, userEmail, fmt.Sprintf("error extracting CV data for %s: %v", file.Filename, err))
		fields = models.NotFoundCVFields(accessURL)
	}
	fields.FileURL = accessURL

	if err := p.persistRecord(file, data, contentType, text, fields, userID, userEmail); err != nil {
		p.logFileError(userID, userEmail, fmt.Sprintf("error storing metadata for %s: %v", file.Filename, err))
		return models.CVFields{}, err
	}

	p.logger.Info("file processed",
		zap.String("file", file.Filename),
		zap.String("user_id", userID),
	)

	return fields, nil
}

func (p *fileProcessor) persistRecord(
	file *multipart.FileHeader,
	data []byte,
	contentType string,
	text string,
	fields models.CVFields,
	userID, userEmail string,
) error {
	// The extraction payload is stored nested next to the flattened
	// columns so callers can query single fields or fetch the original
	// result wholesale.
	nested, err := json.Marshal(fields)
	if err != nil {
		return apperrors.Wrap(apperrors.KindPersistence, err)
	}

	record := &models.CVRecord{
		ID:            uuid.New(),
		FileName:      file.Filename,
		FileSize:      int64(len(data)),
		FileType:      contentType,
		FileURL:       fields.FileURL,
		ExtractedText: text,
		Name:          fields.Name,
		Email:         fields.Email,
		Phone:         fields.Phone,
		Address:       fields.Address,
		Education:     fields.Education,
		Experience:    fields.Experience,
		Skills:        fields.Skills,
		LinkedinURL:   fields.LinkedinURL,
		ExtractedData: nested,
		UserID:        userID,
		UserEmail:     userEmail,
		UploadedAt:    time.Now(),
	}

	return p.cvRepo.Create(record)
}

func (p *fileProcessor) logFileError(userID, userEmail, message string) {
	p.errSink.Log("upload-files-process", message, map[string]any{
		"user_id":    userID,
		"user_email": userEmail,
	})
}

func readAll(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return data, nil
}
