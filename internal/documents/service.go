package documents

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"pdfqa-backend/internal/shared/storage/files"
	"pdfqa-backend/internal/shared/telemetry"
	"pdfqa-backend/internal/shared/util"
)

// MaxFileSize caps uploads at 10 MiB, checked before extraction is attempted.
const MaxFileSize = 10 << 20

// sizeLimitMessage is the client-facing text for uploads over MaxFileSize.
func sizeLimitMessage() string {
	return fmt.Sprintf("file size exceeds maximum limit of %dMB", MaxFileSize/1024/1024)
}

// Extractor turns a stored PDF into plain text and a page count.
type Extractor interface {
	Extract(ctx context.Context, path string) (text string, pageCount int, err error)
}

// Service contains business logic for documents.
type Service struct {
	Repo      Repo
	Files     files.Store
	Extractor Extractor
}

// Upload validates the file, persists the raw bytes, extracts the text and
// registers the document. On any failure after the bytes were written, the
// written file is removed before the error is returned.
func (s *Service) Upload(ctx context.Context, filename string, data []byte) (Document, error) {
	sanitized, err := util.SanitizeFileName(filename)
	if err != nil {
		return Document{}, fmt.Errorf("%w: no filename provided", ErrInvalidInput)
	}
	if strings.ToLower(filepath.Ext(sanitized)) != ".pdf" {
		return Document{}, fmt.Errorf("%w: only .pdf files are allowed", ErrInvalidInput)
	}
	if int64(len(data)) > MaxFileSize {
		return Document{}, fmt.Errorf("%w: %s", ErrInvalidInput, sizeLimitMessage())
	}

	id := uuid.NewString()
	path, err := s.Files.Save(ctx, id, data)
	if err != nil {
		return Document{}, fmt.Errorf("store file: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		// Cleanup must run even if the request context is already gone.
		if rmErr := s.Files.Remove(context.WithoutCancel(ctx), id); rmErr != nil {
			telemetry.Error("upload.cleanup_failed", map[string]any{
				"document_id": id,
				"err":         rmErr.Error(),
			})
		}
	}()

	text, pageCount, err := s.Extractor.Extract(ctx, path)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	now := time.Now().UTC()
	doc := Document{
		ID:           id,
		Filename:     sanitized,
		UploadDate:   now,
		FilePath:     path,
		TextContent:  text,
		FileSize:     int64(len(data)),
		PageCount:    &pageCount,
		LastAccessed: now,
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	committed = true
	return doc, nil
}

// Get returns a document by id.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	if strings.TrimSpace(id) == "" {
		return Document{}, fmt.Errorf("%w: document id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns document metadata newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Document, error) {
	return s.Repo.List(ctx, limit, offset)
}
