package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/lcamargo/catalog-backend/internal/platform/logger"
)

// BucketService is the blob store backing video attachment slots.
// Keys are namespaced as <entityID>/<derivedName>.
type BucketService interface {
	Put(ctx context.Context, key string, data io.Reader) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	PublicURL(key string) string
}

type bucketService struct {
	log          *logger.Logger
	client       *storage.Client
	bucketName   string
	emulatorHost string
	cdnDomain    string
}

func NewBucketService(log *logger.Logger) (BucketService, error) {
	bucketName := strings.TrimSpace(os.Getenv("MEDIA_GCS_BUCKET_NAME"))
	if bucketName == "" {
		return nil, fmt.Errorf("missing env var MEDIA_GCS_BUCKET_NAME")
	}
	emulatorHost := strings.TrimRight(strings.TrimSpace(os.Getenv("STORAGE_EMULATOR_HOST")), "/")
	cdnDomain := strings.TrimSpace(os.Getenv("MEDIA_CDN_DOMAIN"))

	ctx := context.Background()
	var client *storage.Client
	var err error
	if emulatorHost != "" {
		client, err = storage.NewClient(ctx, option.WithoutAuthentication())
	} else {
		client, err = storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	serviceLog := log.With("service", "BucketService")
	serviceLog.Info("Object storage initialized",
		"bucket", bucketName,
		"emulator_host", emulatorHost,
		"cdn_domain", cdnDomain,
	)

	return &bucketService{
		log:          serviceLog,
		client:       client,
		bucketName:   bucketName,
		emulatorHost: emulatorHost,
		cdnDomain:    cdnDomain,
	}, nil
}

func (bs *bucketService) Put(ctx context.Context, key string, data io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := bs.client.Bucket(bs.bucketName).Object(key).NewWriter(ctx)
	if ct := contentTypeForKey(key); ct != "" {
		w.ContentType = ct
	}
	if _, err := io.Copy(w, data); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close writer for %q: %w", key, err)
	}
	return nil
}

// Delete is idempotent: a missing object is success.
func (bs *bucketService) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	err := bs.client.Bucket(bs.bucketName).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete object %q: %w", key, err)
	}
	return nil
}

func (bs *bucketService) Exists(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := bs.client.Bucket(bs.bucketName).Object(key).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat object %q: %w", key, err)
	}
	return true, nil
}

func (bs *bucketService) PublicURL(key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return ""
	}
	if bs.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", bs.cdnDomain, key)
	}
	if bs.emulatorHost != "" {
		return fmt.Sprintf(
			"%s/storage/v1/b/%s/o/%s?alt=media",
			bs.emulatorHost,
			url.PathEscape(bs.bucketName),
			url.PathEscape(key),
		)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bs.bucketName, key)
}

func contentTypeForKey(key string) string {
	s := strings.ToLower(strings.TrimSpace(key))
	switch {
	case strings.HasSuffix(s, ".png"):
		return "image/png"
	case strings.HasSuffix(s, ".jpg"), strings.HasSuffix(s, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(s, ".webp"):
		return "image/webp"
	case strings.HasSuffix(s, ".gif"):
		return "image/gif"
	case strings.HasSuffix(s, ".mp4"), strings.HasSuffix(s, ".m4v"):
		return "video/mp4"
	case strings.HasSuffix(s, ".webm"):
		return "video/webm"
	case strings.HasSuffix(s, ".mov"):
		return "video/quicktime"
	default:
		return ""
	}
}
