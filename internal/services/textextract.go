package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"hrfirst/cv-parser/internal/apperrors"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// TextExtractor turns an uploaded document into plain text. Both parsers
// want a filesystem path, so the bytes go through a temporary local copy
// that is removed on every path.
type TextExtractor interface {
	Extract(contentType, filename string, data []byte) (string, error)
}

type textExtractor struct {
	tempDir string
}

func NewTextExtractor() TextExtractor {
	return &textExtractor{tempDir: os.TempDir()}
}

// Extract implements TextExtractor.
func (t *textExtractor) Extract(contentType, filename string, data []byte) (string, error) {
	switch contentType {
	case ContentTypePDF, ContentTypeDocx:
	default:
		return "", apperrors.New(apperrors.KindValidation, "unsupported file type: %s", contentType)
	}

	tempFile, err := os.CreateTemp(t.tempDir, "upload-*"+filepath.Ext(filename))
	if err != nil {
		return "", apperrors.New(apperrors.KindUpstream, "failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return "", apperrors.New(apperrors.KindUpstream, "failed to write temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return "", apperrors.New(apperrors.KindUpstream, "failed to close temp file: %w", err)
	}

	var text string
	if contentType == ContentTypePDF {
		text, err = extractPDFText(tempPath)
	} else {
		text, err = extractDocxText(tempPath)
	}
	if err != nil {
		return "", apperrors.Wrap(apperrors.KindUpstream, err)
	}

	return text, nil
}

func extractPDFText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}

func extractDocxText(filePath string) (string, error) {
	doc, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	text := doc.Editable().GetContent()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in document")
	}

	return text, nil
}
