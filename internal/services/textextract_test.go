package services

import (
	"os"
	"testing"

	"hrfirst/cv-parser/internal/apperrors"
)

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected temp dir to be empty, found %d entries", len(entries))
	}
}

func TestExtractUnsupportedType(t *testing.T) {
	dir := t.TempDir()
	extractor := &textExtractor{tempDir: dir}

	_, err := extractor.Extract("image/png", "photo.png", []byte("not a document"))
	if err == nil {
		t.Fatal("expected error for unsupported content type")
	}
	if !apperrors.Is(err, apperrors.KindValidation) {
		t.Fatalf("expected validation kind, got %v", apperrors.KindOf(err))
	}

	// Unsupported types are rejected before any temp file exists.
	assertDirEmpty(t, dir)
}

func TestExtractCorruptPDFCleansUpTempFile(t *testing.T) {
	dir := t.TempDir()
	extractor := &textExtractor{tempDir: dir}

	_, err := extractor.Extract(ContentTypePDF, "broken.pdf", []byte("definitely not a pdf"))
	if err == nil {
		t.Fatal("expected error for corrupt PDF")
	}
	if !apperrors.Is(err, apperrors.KindUpstream) {
		t.Fatalf("expected upstream kind, got %v", apperrors.KindOf(err))
	}

	assertDirEmpty(t, dir)
}

func TestExtractCorruptDocxCleansUpTempFile(t *testing.T) {
	dir := t.TempDir()
	extractor := &textExtractor{tempDir: dir}

	_, err := extractor.Extract(ContentTypeDocx, "broken.docx", []byte("definitely not a docx"))
	if err == nil {
		t.Fatal("expected error for corrupt docx")
	}

	assertDirEmpty(t, dir)
}
