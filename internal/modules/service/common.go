package service

import (
	"context"
	"errors"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func requireRole(ctx context.Context, users repo.UserRepo, id uuid.UUID, role model.Role, field string) error {
	u, err := users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return validationErr("%s %s does not exist", field, id)
		}
		return err
	}
	if u.Role != role {
		return validationErr("%s must have role %s, got %s", field, role, u.Role)
	}
	return nil
}

// enqueue submits a notification job without affecting the caller's result.
func enqueue(ctx context.Context, jobs Enqueuer, log *zap.Logger, userID uuid.UUID, message string) {
	if jobs == nil {
		return
	}
	if err := jobs.EnqueueNotification(ctx, userID, message); err != nil {
		log.Warn("enqueue notification failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

func releaseBlob(ctx context.Context, store BlobStore, log *zap.Logger, a *model.AssetLink) {
	if store == nil || !a.HasUpload() {
		return
	}
	if err := store.DeleteObject(ctx, a.S3Key); err != nil {
		log.Warn("delete asset object failed", zap.String("asset_id", a.ID.String()), zap.String("key", a.S3Key), zap.Error(err))
	}
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
