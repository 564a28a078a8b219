package wardrobe

import (
	"context"
	"errors"
	"io"
)

// ErrImageNotFound is returned by ImageStore.Get for unknown keys.
var ErrImageNotFound = errors.New("image not found")

// Repository persists wardrobe items per user.
type Repository interface {
	Create(ctx context.Context, item Item) (Item, error)
	ListByUser(ctx context.Context, userID int64) ([]Item, error)
	GetByImageURL(ctx context.Context, userID int64, imageURL string) (Item, bool, error)
	DeleteByImageURL(ctx context.Context, userID int64, imageURL string) (bool, error)
}

// ImageStore keeps garment photos and hands out their public URLs.
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) (StoredImage, error)
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}

// StoredImage captures persisted blob metadata.
type StoredImage struct {
	Key      string
	URL      string
	Size     int64
	MimeType string
	ETag     string
}

// Image references a garment photo by URL, optionally with its bytes so
// adapters can inline it when the URL is not publicly reachable.
type Image struct {
	URL      string
	MimeType string
	Content  []byte
}

// AttributeExtractor describes a garment photo in structured attributes.
type AttributeExtractor interface {
	Extract(ctx context.Context, image Image, suggestedName string) (Attributes, error)
}
