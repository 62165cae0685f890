package documents

import "time"

// UploadResponse is the payload returned after a successful upload.
type UploadResponse struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	UploadDate time.Time `json:"upload_date"`
	Message    string    `json:"message"`
	FileSize   int64     `json:"file_size"`
}

// Info is the outward-facing metadata of a stored document. The extracted
// text is never exposed.
type Info struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	UploadDate   time.Time `json:"upload_date"`
	FileSize     int64     `json:"file_size"`
	PageCount    *int      `json:"page_count"`
	LastAccessed time.Time `json:"last_accessed"`
}

func toUploadResponse(doc Document) UploadResponse {
	return UploadResponse{
		ID:         doc.ID,
		Filename:   doc.Filename,
		UploadDate: doc.UploadDate,
		Message:    "File uploaded successfully",
		FileSize:   doc.FileSize,
	}
}

func toInfo(doc Document) Info {
	return Info{
		ID:           doc.ID,
		Filename:     doc.Filename,
		UploadDate:   doc.UploadDate,
		FileSize:     doc.FileSize,
		PageCount:    doc.PageCount,
		LastAccessed: doc.LastAccessed,
	}
}
