package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/company-sys/backend/internal/infra/blob"
	"github.com/google/uuid"
)

// Enqueuer hands dispatch jobs to the worker pool. Calls happen after the
// primary write has committed; failures are logged, never returned to callers.
type Enqueuer interface {
	EnqueueNotification(ctx context.Context, userID uuid.UUID, message string) error
	EnqueueReminder(ctx context.Context, userID uuid.UUID, taskTitle string, due time.Time) error
}

// BlobStore keeps uploaded asset files.
type BlobStore interface {
	UploadFormFile(ctx context.Context, keyPrefix string, fh *multipart.FileHeader) (*blob.UploadedMeta, error)
	PresignGet(ctx context.Context, key string, expire time.Duration) (string, error)
	DeleteObject(ctx context.Context, key string) error
}
