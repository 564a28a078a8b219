package imagestore

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"sync"

	"github.com/yanqian/fitcheck/internal/domain/wardrobe"
)

// MemoryStore keeps blobs in memory. Useful for tests and local dev.
type MemoryStore struct {
	mu      sync.RWMutex
	baseURL string
	blobs   map[string]storedBlob
}

type storedBlob struct {
	data     []byte
	mimeType string
}

// NewMemoryStore constructs a store whose URLs are rooted at publicBaseURL.
func NewMemoryStore(publicBaseURL string) *MemoryStore {
	return &MemoryStore{baseURL: publicBaseURL, blobs: make(map[string]storedBlob)}
}

// Put stores a copy of the blob and returns metadata.
func (s *MemoryStore) Put(_ context.Context, key string, data []byte, mimeType string) (wardrobe.StoredImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash := md5.Sum(data)
	s.blobs[key] = storedBlob{data: append([]byte(nil), data...), mimeType: mimeType}
	return wardrobe.StoredImage{
		Key:      key,
		URL:      PublicURL(s.baseURL, key),
		Size:     int64(len(data)),
		MimeType: mimeType,
		ETag:     hex.EncodeToString(hash[:]),
	}, nil
}

// Get returns a reader for the stored blob and its content type.
func (s *MemoryStore) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, "", wardrobe.ErrImageNotFound
	}
	return io.NopCloser(bytes.NewReader(blob.data)), blob.mimeType, nil
}

// Delete removes the blob.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

var _ wardrobe.ImageStore = (*MemoryStore)(nil)
