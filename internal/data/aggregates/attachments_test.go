package aggregates

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/lcamargo/catalog-backend/internal/data/repos/testutil"
	"github.com/lcamargo/catalog-backend/internal/domain/catalog"
)

// fakeBlobStore records calls and can be told to fail a specific key.
type fakeBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    []string
	deletes []string
	failPut string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (f *fakeBlobStore) Put(_ context.Context, key string, data io.Reader) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPut != "" && key == f.failPut {
		return errors.New("simulated put failure")
	}
	content, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.objects[key] = content
	f.puts = append(f.puts, key)
	return nil
}

func (f *fakeBlobStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deletes = append(f.deletes, key)
	return nil
}

func TestExtractUploadsSplitsColumnsAndFiles(t *testing.T) {
	t.Parallel()

	m := NewAttachmentManager(newFakeBlobStore(), testutil.Logger(t))
	thumb := &catalog.Upload{Name: "thumb.png", Content: []byte("img")}
	video := &catalog.Upload{Name: "movie.mp4", Content: []byte("bits")}

	columns, files := m.ExtractUploads(map[catalog.VideoSlot]*catalog.Upload{
		catalog.SlotThumbFile: thumb,
		catalog.SlotVideoFile: video,
	})

	if len(columns) != 2 || len(files) != 2 {
		t.Fatalf("want 2 columns and 2 files, got=%d/%d", len(columns), len(files))
	}
	if columns["thumb_file"] != thumb.StorageName() {
		t.Fatalf("thumb column: want=%q got=%v", thumb.StorageName(), columns["thumb_file"])
	}
	if files[catalog.SlotVideoFile] != video {
		t.Fatal("video payload not retained")
	}
}

func TestExtractUploadsEmpty(t *testing.T) {
	t.Parallel()

	m := NewAttachmentManager(newFakeBlobStore(), testutil.Logger(t))
	columns, files := m.ExtractUploads(nil)
	if len(columns) != 0 || len(files) != 0 {
		t.Fatalf("want empty maps, got=%d/%d", len(columns), len(files))
	}
}

func TestUploadWritesAllKeysInSlotOrder(t *testing.T) {
	t.Parallel()

	store := newFakeBlobStore()
	m := NewAttachmentManager(store, testutil.Logger(t))

	video := &catalog.Upload{Name: "movie.mp4", Content: []byte("bits")}
	banner := &catalog.Upload{Name: "banner.jpg", Content: []byte("img")}

	keys, err := m.Upload(context.Background(), "vid-1", map[catalog.VideoSlot]*catalog.Upload{
		catalog.SlotBannerFile: banner,
		catalog.SlotVideoFile:  video,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("want 2 keys, got=%v", keys)
	}
	// Declared slot order: video before banner, regardless of map order.
	if store.puts[0] != catalog.BlobKey("vid-1", video.StorageName()) {
		t.Fatalf("first put: got=%q", store.puts[0])
	}
	if store.puts[1] != catalog.BlobKey("vid-1", banner.StorageName()) {
		t.Fatalf("second put: got=%q", store.puts[1])
	}
}

func TestUploadFailureCompensatesEarlierWrites(t *testing.T) {
	t.Parallel()

	store := newFakeBlobStore()
	m := NewAttachmentManager(store, testutil.Logger(t))

	video := &catalog.Upload{Name: "movie.mp4", Content: []byte("bits")}
	banner := &catalog.Upload{Name: "banner.jpg", Content: []byte("img")}
	store.failPut = catalog.BlobKey("vid-1", banner.StorageName())

	keys, err := m.Upload(context.Background(), "vid-1", map[catalog.VideoSlot]*catalog.Upload{
		catalog.SlotVideoFile:  video,
		catalog.SlotBannerFile: banner,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("want storage error, got=%v", err)
	}
	if keys != nil {
		t.Fatalf("no keys may survive a failed call, got=%v", keys)
	}
	if len(store.objects) != 0 {
		t.Fatalf("blobs left behind after compensation: %v", store.objects)
	}
}

func TestUploadEmptySetIsNoop(t *testing.T) {
	t.Parallel()

	store := newFakeBlobStore()
	m := NewAttachmentManager(store, testutil.Logger(t))

	keys, err := m.Upload(context.Background(), "vid-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if keys != nil || len(store.puts) != 0 {
		t.Fatalf("no storage calls expected, got keys=%v puts=%v", keys, store.puts)
	}
}

func TestDeleteSkipsEmptyKeys(t *testing.T) {
	t.Parallel()

	store := newFakeBlobStore()
	m := NewAttachmentManager(store, testutil.Logger(t))

	if err := m.Delete(context.Background(), []string{"", "vid-1/a.mp4"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.deletes) != 1 || store.deletes[0] != "vid-1/a.mp4" {
		t.Fatalf("unexpected deletes: %v", store.deletes)
	}
}
