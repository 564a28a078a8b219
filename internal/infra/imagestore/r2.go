package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/fitcheck/internal/domain/wardrobe"
)

const singlePartLimit = 5 * 1024 * 1024

// R2Store stores garment photos in Cloudflare R2 (or any S3-compatible API).
type R2Store struct {
	client  *minio.Client
	bucket  string
	baseURL string
	logger  *slog.Logger

	mu          sync.Mutex
	bucketReady bool
}

// NewR2Store constructs the storage adapter.
func NewR2Store(endpoint, accessKey, secretKey, bucket, region, publicBaseURL string, logger *slog.Logger) (*R2Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cleanEndpoint := sanitizeEndpoint(endpoint)
	if cleanEndpoint == "" {
		return nil, fmt.Errorf("r2 endpoint is required")
	}
	useSSL := !strings.HasPrefix(strings.ToLower(strings.TrimSpace(endpoint)), "http://")
	client, err := minio.New(cleanEndpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useSSL,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init r2 client: %w", err)
	}
	return &R2Store{
		client:  client,
		bucket:  bucket,
		baseURL: publicBaseURL,
		logger:  logger.With("component", "imagestore.r2"),
	}, nil
}

func (s *R2Store) ensureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bucketReady {
		return nil
	}
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err == nil && exists {
		s.bucketReady = true
		return nil
	}
	err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
		return err
	}
	s.logger.Info("bucket ready", "bucket", s.bucket)
	s.bucketReady = true
	return nil
}

// Put uploads data to R2.
func (s *R2Store) Put(ctx context.Context, key string, data []byte, mimeType string) (wardrobe.StoredImage, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return wardrobe.StoredImage{}, err
	}
	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:      mimeType,
		DisableMultipart: len(data) < singlePartLimit,
	})
	if err != nil {
		return wardrobe.StoredImage{}, err
	}
	return wardrobe.StoredImage{
		Key:      key,
		URL:      PublicURL(s.baseURL, key),
		Size:     info.Size,
		MimeType: mimeType,
		ETag:     info.ETag,
	}, nil
}

// Get fetches an object for reading.
func (s *R2Store) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", err
	}
	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, "", wardrobe.ErrImageNotFound
		}
		return nil, "", err
	}
	return obj, stat.ContentType, nil
}

// Delete removes an object.
func (s *R2Store) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

var _ wardrobe.ImageStore = (*R2Store)(nil)

// PublicURL joins the public base URL and an object key.
func PublicURL(baseURL, key string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	key = strings.TrimLeft(key, "/")
	if base == "" {
		return "/" + key
	}
	return base + "/" + key
}

// KeyFromURL reverses PublicURL; ok is false for URLs outside the base.
func KeyFromURL(baseURL, url string) (string, bool) {
	prefix := strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	return key, key != ""
}

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if idx := strings.Index(raw, "/"); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}
