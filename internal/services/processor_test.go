package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	"hrfirst/cv-parser/internal/apperrors"
	"hrfirst/cv-parser/internal/models"
)

type fakeBlob struct {
	url  string
	err  error
	keys []string
}

func (f *fakeBlob) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakeTexts struct {
	text  string
	err   error
	calls int
}

func (f *fakeTexts) Extract(contentType, filename string, data []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeFieldExtractor struct {
	fields models.CVFields
	err    error
}

func (f *fakeFieldExtractor) ExtractCVData(ctx context.Context, cvText string) (models.CVFields, error) {
	if f.err != nil {
		return models.CVFields{}, f.err
	}
	return f.fields, nil
}

func (f *fakeFieldExtractor) GenerateJobDescription(ctx context.Context, requirements string) (models.JobFields, error) {
	return models.JobFields{}, nil
}

type fakeCVRepo struct {
	records []*models.CVRecord
	err     error
}

func (f *fakeCVRepo) Create(record *models.CVRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

type fakeSink struct {
	messages []string
}

func (f *fakeSink) Log(endpoint, message string, context map[string]any) {
	f.messages = append(f.messages, message)
}

func makeFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(10 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["files"][0]
}

func newTestProcessor(blob *fakeBlob, texts *fakeTexts, extractor *fakeFieldExtractor, repo *fakeCVRepo, sink *fakeSink) FileProcessor {
	return NewFileProcessor(blob, texts, extractor, repo, sink, zap.NewNop())
}

func TestProcessFileSuccess(t *testing.T) {
	blob := &fakeBlob{url: "https://store.example/123/cv.pdf"}
	texts := &fakeTexts{text: "extracted cv text"}
	extractor := &fakeFieldExtractor{fields: models.CVFields{
		Name: "Jane Doe", Email: "jane@example.com", Phone: "555",
		Address: models.SentinelNotFound, Education: "BSc",
		Experience: "5y", Skills: "Go", LinkedinURL: models.SentinelNotFound,
	}}
	repo := &fakeCVRepo{}
	sink := &fakeSink{}

	file := makeFileHeader(t, "cv.pdf", ContentTypePDF, []byte("%PDF-1.4 fake"))
	processor := newTestProcessor(blob, texts, extractor, repo, sink)

	fields, err := processor.ProcessFile(context.Background(), file, "123", "test@test.com")
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if fields.FileURL != "https://store.example/123/cv.pdf" {
		t.Fatalf("unexpected file url: %q", fields.FileURL)
	}
	if len(blob.keys) != 1 || blob.keys[0] != "123/cv.pdf" {
		t.Fatalf("unexpected blob key: %v", blob.keys)
	}

	if len(repo.records) != 1 {
		t.Fatalf("expected exactly 1 persisted record, got %d", len(repo.records))
	}
	record := repo.records[0]
	if record.FileURL == "" {
		t.Fatal("persisted record has empty file_url")
	}
	if record.Name != "Jane Doe" || record.ExtractedText != "extracted cv text" {
		t.Fatalf("flattened fields wrong: %+v", record)
	}

	var nested models.CVFields
	if err := json.Unmarshal(record.ExtractedData, &nested); err != nil {
		t.Fatalf("nested payload not valid JSON: %v", err)
	}
	if nested != fields {
		t.Fatalf("nested payload diverges from returned fields:\n%+v\n%+v", nested, fields)
	}
}

func TestProcessFileUnsupportedType(t *testing.T) {
	blob := &fakeBlob{url: "https://store.example/123/notes.txt"}
	texts := &fakeTexts{}
	repo := &fakeCVRepo{}
	sink := &fakeSink{}

	file := makeFileHeader(t, "notes.txt", "text/plain", []byte("plain text"))
	processor := newTestProcessor(blob, texts, &fakeFieldExtractor{}, repo, sink)

	_, err := processor.ProcessFile(context.Background(), file, "123", "test@test.com")
	if err == nil {
		t.Fatal("expected error for unsupported type")
	}
	if !apperrors.Is(err, apperrors.KindValidation) {
		t.Fatalf("expected validation kind, got %v", apperrors.KindOf(err))
	}

	if len(repo.records) != 0 {
		t.Fatalf("no record must be persisted, got %d", len(repo.records))
	}
	if texts.calls != 0 {
		t.Fatal("text extraction must not run for unsupported types")
	}
	if len(sink.messages) == 0 || !strings.Contains(sink.messages[0], "unsupported file type") {
		t.Fatalf("unsupported type not logged: %v", sink.messages)
	}
}

func TestProcessFileExtractionFailureDegrades(t *testing.T) {
	blob := &fakeBlob{url: "https://store.example/123/cv.pdf"}
	texts := &fakeTexts{text: "cv text"}
	extractor := &fakeFieldExtractor{err: apperrors.New(apperrors.KindUpstream, "model down")}
	repo := &fakeCVRepo{}
	sink := &fakeSink{}

	file := makeFileHeader(t, "cv.pdf", ContentTypePDF, []byte("%PDF-1.4 fake"))
	processor := newTestProcessor(blob, texts, extractor, repo, sink)

	fields, err := processor.ProcessFile(context.Background(), file, "123", "test@test.com")
	if err != nil {
		t.Fatalf("extraction failure must degrade, not fail the file: %v", err)
	}

	if fields.Name != models.SentinelNotFound || fields.Skills != models.SentinelNotFound {
		t.Fatalf("expected sentinel fields, got %+v", fields)
	}
	if fields.FileURL != "https://store.example/123/cv.pdf" {
		t.Fatalf("storage url must survive the fallback, got %q", fields.FileURL)
	}
	if len(repo.records) != 1 {
		t.Fatalf("degraded record must still be persisted, got %d", len(repo.records))
	}
}

func TestProcessFileDocxViewerLink(t *testing.T) {
	rawURL := "https://store.example/123/cv.docx"
	blob := &fakeBlob{url: rawURL}
	texts := &fakeTexts{text: "docx text"}
	extractor := &fakeFieldExtractor{fields: models.CVFields{Name: "Jane"}}
	repo := &fakeCVRepo{}

	file := makeFileHeader(t, "cv.docx", ContentTypeDocx, []byte("fake docx"))
	processor := newTestProcessor(blob, texts, extractor, repo, &fakeSink{})

	fields, err := processor.ProcessFile(context.Background(), file, "123", "test@test.com")
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	want := "https://view.officeapps.live.com/op/view.aspx?src=" + url.QueryEscape(rawURL)
	if fields.FileURL != want {
		t.Fatalf("viewer link not applied:\ngot  %q\nwant %q", fields.FileURL, want)
	}
	if repo.records[0].FileURL != want {
		t.Fatalf("persisted url mismatch: %q", repo.records[0].FileURL)
	}
}

func TestProcessFileBlobFailure(t *testing.T) {
	blob := &fakeBlob{err: apperrors.New(apperrors.KindUpstream, "storage down")}
	repo := &fakeCVRepo{}
	sink := &fakeSink{}

	file := makeFileHeader(t, "cv.pdf", ContentTypePDF, []byte("%PDF-1.4 fake"))
	processor := newTestProcessor(blob, &fakeTexts{}, &fakeFieldExtractor{}, repo, sink)

	_, err := processor.ProcessFile(context.Background(), file, "123", "test@test.com")
	if err == nil {
		t.Fatal("expected error when upload fails")
	}
	if len(repo.records) != 0 {
		t.Fatal("nothing must be persisted when upload fails")
	}
	if len(sink.messages) != 1 {
		t.Fatalf("expected exactly one logged failure, got %d", len(sink.messages))
	}
}

func TestProcessFilePersistenceFailure(t *testing.T) {
	blob := &fakeBlob{url: "https://store.example/123/cv.pdf"}
	repo := &fakeCVRepo{err: apperrors.New(apperrors.KindPersistence, "insert failed")}
	sink := &fakeSink{}

	file := makeFileHeader(t, "cv.pdf", ContentTypePDF, []byte("%PDF-1.4 fake"))
	processor := newTestProcessor(blob, &fakeTexts{text: "text"}, &fakeFieldExtractor{}, repo, sink)

	_, err := processor.ProcessFile(context.Background(), file, "123", "test@test.com")
	if err == nil {
		t.Fatal("expected error when persistence fails")
	}
	if !apperrors.Is(err, apperrors.KindPersistence) {
		t.Fatalf("expected persistence kind, got %v", apperrors.KindOf(err))
	}
}
