package documents

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// SQLiteRepo implements Repo using SQLite.
type SQLiteRepo struct {
	DB *sqlx.DB
}

// Create inserts a new document row.
func (r *SQLiteRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    filename,
    upload_date,
    file_path,
    text_content,
    file_size,
    page_count,
    last_accessed
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.Filename,
		doc.UploadDate,
		doc.FilePath,
		doc.TextContent,
		doc.FileSize,
		doc.PageCount,
		doc.LastAccessed,
	)
	if err != nil {
		var sqlErr sqlite3.Error
		if errors.As(err, &sqlErr) && sqlErr.Code == sqlite3.ErrConstraint {
			return ErrDuplicateID
		}
		return err
	}
	return nil
}

// GetByID fetches a document by id, including its text content.
func (r *SQLiteRepo) GetByID(ctx context.Context, id string) (Document, error) {
	const query = `
SELECT id, filename, upload_date, file_path, text_content, file_size, page_count, last_accessed
FROM documents
WHERE id = ?`

	var doc Document
	if err := r.DB.GetContext(ctx, &doc, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// TouchAccessed updates last_accessed for a document.
func (r *SQLiteRepo) TouchAccessed(ctx context.Context, id string, ts time.Time) error {
	const query = `UPDATE documents SET last_accessed = ? WHERE id = ?`

	res, err := r.DB.ExecContext(ctx, query, ts, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns document metadata newest-first. Text content is not loaded.
func (r *SQLiteRepo) List(ctx context.Context, limit, offset int) ([]Document, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, filename, upload_date, file_path, file_size, page_count, last_accessed
FROM documents
ORDER BY upload_date DESC
LIMIT ? OFFSET ?`

	docs := []Document{}
	if err := r.DB.SelectContext(ctx, &docs, query, limit, offset); err != nil {
		return nil, err
	}
	return docs, nil
}

var _ Repo = (*SQLiteRepo)(nil)
