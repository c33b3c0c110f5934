package gcs

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/igrejaviva/media-backend/internal/platform/logger"
)

type AssetKind string

const (
	AssetKindImage AssetKind = "image"
	AssetKindAudio AssetKind = "audio"
)

// AssetRef is the only handle the rest of the system holds on a remote blob.
// Key is what Destroy needs; URL is what clients fetch.
type AssetRef struct {
	URL  string    `json:"url"`
	Key  string    `json:"key"`
	Kind AssetKind `json:"kind"`
}

type Store interface {
	Upload(ctx context.Context, data []byte, folder string, kind AssetKind) (AssetRef, error)
	// Destroy removes the object. A missing object is reported via an error
	// satisfying IsNotFound; cleanup callers treat that as success.
	Destroy(ctx context.Context, key string) error
	PublicURL(key string) string
}

type store struct {
	log        *logger.Logger
	client     *storage.Client
	bucketName string
	cdnDomain  string
}

func NewStore(log *logger.Logger) (Store, error) {
	bucketName := strings.TrimSpace(os.Getenv("MEDIA_GCS_BUCKET_NAME"))
	if bucketName == "" {
		return nil, fmt.Errorf("missing env var MEDIA_GCS_BUCKET_NAME")
	}
	cdnDomain := strings.TrimSpace(os.Getenv("MEDIA_CDN_DOMAIN"))

	ctx := context.Background()
	opts := []option.ClientOption{option.WithScopes(storage.ScopeReadWrite)}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	storeLog := log.With("service", "AssetStore")
	storeLog.Info("Object storage initialized", "bucket", bucketName, "cdn_domain", cdnDomain)

	return &store{
		log:        storeLog,
		client:     client,
		bucketName: bucketName,
		cdnDomain:  cdnDomain,
	}, nil
}

func NewStoreWithClient(log *logger.Logger, client *storage.Client, bucketName, cdnDomain string) Store {
	return &store{
		log:        log.With("service", "AssetStore"),
		client:     client,
		bucketName: bucketName,
		cdnDomain:  cdnDomain,
	}
}

func (s *store) Upload(ctx context.Context, data []byte, folder string, kind AssetKind) (AssetRef, error) {
	if len(data) == 0 {
		return AssetRef{}, fmt.Errorf("empty payload")
	}
	ct := http.DetectContentType(data)
	key := buildObjectKey(folder, ct)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucketName).Object(key).NewWriter(ctx)
	w.ContentType = ct
	w.CacheControl = "public, max-age=31536000, immutable"
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return AssetRef{}, fmt.Errorf("failed to write object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return AssetRef{}, fmt.Errorf("failed to close writer for %q: %w", key, err)
	}

	return AssetRef{URL: s.PublicURL(key), Key: key, Kind: kind}, nil
}

func (s *store) Destroy(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := s.client.Bucket(s.bucketName).Object(key).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return fmt.Errorf("object %q: %w", key, storage.ErrObjectNotExist)
		}
		return fmt.Errorf("failed to delete object %q: %w", key, err)
	}
	return nil
}

func (s *store) PublicURL(key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return ""
	}
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, key)
}

// IsNotFound reports whether err means the object was already gone.
// destroy(x); destroy(x) must both land here, never as a hard failure.
func IsNotFound(err error) bool {
	return errors.Is(err, storage.ErrObjectNotExist)
}

func buildObjectKey(folder, contentType string) string {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		folder = "misc"
	}
	ts := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s/%s_%s%s", folder, ts, randHex(4), extForContentType(contentType))
}

func extForContentType(ct string) string {
	switch {
	case strings.HasPrefix(ct, "image/png"):
		return ".png"
	case strings.HasPrefix(ct, "image/jpeg"):
		return ".jpg"
	case strings.HasPrefix(ct, "image/webp"):
		return ".webp"
	case strings.HasPrefix(ct, "image/gif"):
		return ".gif"
	case strings.HasPrefix(ct, "audio/mpeg"):
		return ".mp3"
	case strings.HasPrefix(ct, "audio/wav"), strings.HasPrefix(ct, "audio/x-wav"):
		return ".wav"
	case strings.HasPrefix(ct, "audio/ogg"), strings.HasPrefix(ct, "application/ogg"):
		return ".ogg"
	case strings.HasPrefix(ct, "video/mp4"):
		return ".m4a"
	case strings.HasPrefix(ct, "video/webm"):
		return ".webm"
	default:
		return ".bin"
	}
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
