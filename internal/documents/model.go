package documents

import "time"

// Document represents an uploaded PDF's metadata plus its extracted text.
type Document struct {
	ID           string    `db:"id"`
	Filename     string    `db:"filename"`
	UploadDate   time.Time `db:"upload_date"`
	FilePath     string    `db:"file_path"`
	TextContent  string    `db:"text_content"`
	FileSize     int64     `db:"file_size"`
	PageCount    *int      `db:"page_count"`
	LastAccessed time.Time `db:"last_accessed"`
}
