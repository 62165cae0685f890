package documents

import (
	"context"
	"time"
)

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, id string) (Document, error)
	TouchAccessed(ctx context.Context, id string, ts time.Time) error
	List(ctx context.Context, limit, offset int) ([]Document, error)
}
