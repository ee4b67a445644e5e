package aggregates

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/lcamargo/catalog-backend/internal/domain/catalog"
	"github.com/lcamargo/catalog-backend/internal/platform/logger"
)

// BlobStore is the narrow contract the attachment manager needs from the
// object store. Delete must be idempotent: a missing key is success.
type BlobStore interface {
	Put(ctx context.Context, key string, data io.Reader) error
	Delete(ctx context.Context, key string) error
}

// AttachmentManager moves attachment payloads between the attribute level and
// the blob store, tracking which keys each call wrote so the coordinator can
// compensate.
type AttachmentManager struct {
	store BlobStore
	log   *logger.Logger
}

func NewAttachmentManager(store BlobStore, baseLog *logger.Logger) *AttachmentManager {
	return &AttachmentManager{store: store, log: baseLog.With("component", "AttachmentManager")}
}

// ExtractUploads separates attachment payloads from the scalar write: it
// returns the column patch (slot column -> derived storage name) and the
// retained payloads keyed by slot. Slots without a payload are untouched.
func (m *AttachmentManager) ExtractUploads(uploads map[catalog.VideoSlot]*catalog.Upload) (map[string]interface{}, map[catalog.VideoSlot]*catalog.Upload) {
	columns := make(map[string]interface{})
	files := make(map[catalog.VideoSlot]*catalog.Upload)
	for _, slot := range catalog.VideoSlots {
		up := uploads[slot]
		if up == nil {
			continue
		}
		columns[string(slot)] = up.StorageName()
		files[slot] = up
	}
	return columns, files
}

// Upload stores each payload at <entityID>/<storage name>, in declared slot
// order. On any individual failure every blob already written by this call is
// deleted before the error returns; the returned keys are therefore either
// the complete set or nothing.
func (m *AttachmentManager) Upload(ctx context.Context, entityID string, files map[catalog.VideoSlot]*catalog.Upload) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	uploaded := make([]string, 0, len(files))
	for _, slot := range catalog.VideoSlots {
		up := files[slot]
		if up == nil {
			continue
		}
		key := catalog.BlobKey(entityID, up.StorageName())
		if err := m.store.Put(ctx, key, bytes.NewReader(up.Content)); err != nil {
			m.compensate(ctx, uploaded)
			return nil, StorageError(fmt.Sprintf("upload %s", key), err)
		}
		uploaded = append(uploaded, key)
	}
	return uploaded, nil
}

// Delete removes prior blobs best-effort; a missing blob is not an error.
// Individual failures are collected so the caller can log them without losing
// track of the keys that did go away.
func (m *AttachmentManager) Delete(ctx context.Context, keys []string) error {
	var errs []error
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := m.store.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	if len(errs) > 0 {
		return StorageError("attachment delete", errors.Join(errs...))
	}
	return nil
}

// compensate undoes this call's own uploads after a partial failure. Failures
// here are logged, never surfaced: they must not mask the original error.
func (m *AttachmentManager) compensate(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	if err := m.Delete(ctx, keys); err != nil {
		m.log.Error("failed to clean up partially uploaded attachments", "keys", keys, "error", err)
	}
}
