package documents_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"pdfqa-backend/internal/bootstrap"
	"pdfqa-backend/internal/documents"
	"pdfqa-backend/internal/shared/config"
)

type stubExtractor struct {
	text      string
	pageCount int
}

func (s stubExtractor) Extract(ctx context.Context, path string) (string, int, error) {
	return s.text, s.pageCount, nil
}

func buildTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:3000"},
		UploadDir:       t.TempDir(),
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	app.DocumentsService.Extractor = stubExtractor{text: "hello from page 1", pageCount: 1}
	return app
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadAndFetchDocument(t *testing.T) {
	app := buildTestApp(t)
	payload := []byte("%PDF-1.4 test payload")

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, uploadRequest(t, "hello.pdf", payload))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		ID       string `json:"id"`
		Filename string `json:"filename"`
		Message  string `json:"message"`
		FileSize int64  `json:"file_size"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected id, got empty")
	}
	if created.Filename != "hello.pdf" {
		t.Fatalf("expected filename hello.pdf, got %s", created.Filename)
	}
	if created.FileSize != int64(len(payload)) {
		t.Fatalf("expected file_size %d, got %d", len(payload), created.FileSize)
	}

	// Raw bytes live under the upload dir, named by id.
	stored := filepath.Join(app.Files.BaseDir(), created.ID+".pdf")
	if _, err := os.Stat(stored); err != nil {
		t.Fatalf("expected stored file at %s: %v", stored, err)
	}

	// Fetch metadata.
	respGet := httptest.NewRecorder()
	app.Router.ServeHTTP(respGet, httptest.NewRequest(http.MethodGet, "/documents/"+created.ID, nil))
	if respGet.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", respGet.Code)
	}

	var info struct {
		ID        string `json:"id"`
		Filename  string `json:"filename"`
		FileSize  int64  `json:"file_size"`
		PageCount *int   `json:"page_count"`
	}
	if err := json.NewDecoder(respGet.Body).Decode(&info); err != nil {
		t.Fatalf("decode info response: %v", err)
	}
	if info.ID != created.ID || info.Filename != created.Filename || info.FileSize != created.FileSize {
		t.Fatalf("metadata mismatch: %+v vs %+v", info, created)
	}
	if info.PageCount == nil || *info.PageCount != 1 {
		t.Fatalf("unexpected page count %v", info.PageCount)
	}
}

func TestUploadRejectsNonPDF(t *testing.T) {
	app := buildTestApp(t)

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, uploadRequest(t, "notes.txt", []byte("plain text")))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	entries, err := os.ReadDir(app.Files.BaseDir())
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no stored files, found %d", len(entries))
	}
}

func TestUploadOverSizeLimitReportsLimit(t *testing.T) {
	app := buildTestApp(t)

	// Large enough that the request body guard fires before the form parses.
	payload := make([]byte, documents.MaxFileSize+128<<10)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, uploadRequest(t, "huge.pdf", payload))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if body.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %q", body.Error.Code)
	}
	if !strings.Contains(body.Error.Message, "file size exceeds maximum limit") {
		t.Fatalf("expected size limit message, got %q", body.Error.Message)
	}
}

func TestListDocuments(t *testing.T) {
	app := buildTestApp(t)

	for _, name := range []string{"a.pdf", "b.pdf"} {
		resp := httptest.NewRecorder()
		app.Router.ServeHTTP(resp, uploadRequest(t, name, []byte("%PDF")))
		if resp.Code != http.StatusOK {
			t.Fatalf("upload %s: status %d", name, resp.Code)
		}
	}

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/documents", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var list []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(list))
	}
	for _, item := range list {
		if _, exposed := item["text_content"]; exposed {
			t.Fatalf("list must not expose text content")
		}
	}
}

func TestGetUnknownDocumentReturns404(t *testing.T) {
	app := buildTestApp(t)

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/documents/nope", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}
