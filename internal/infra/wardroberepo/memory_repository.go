package wardroberepo

import (
	"context"
	"sync"

	"github.com/yanqian/fitcheck/internal/domain/wardrobe"
)

// MemoryRepository keeps wardrobe items in process memory for tests/dev.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[int64][]wardrobe.Item
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[int64][]wardrobe.Item)}
}

// Create appends the item to the user's wardrobe.
func (r *MemoryRepository) Create(_ context.Context, item wardrobe.Item) (wardrobe.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.UserID] = append(r.items[item.UserID], cloneItem(item))
	return item, nil
}

// ListByUser returns items in insertion order.
func (r *MemoryRepository) ListByUser(_ context.Context, userID int64) ([]wardrobe.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.items[userID]
	out := make([]wardrobe.Item, 0, len(stored))
	for _, item := range stored {
		out = append(out, cloneItem(item))
	}
	return out, nil
}

// GetByImageURL finds one item owned by the user.
func (r *MemoryRepository) GetByImageURL(_ context.Context, userID int64, imageURL string) (wardrobe.Item, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items[userID] {
		if item.ImageURL == imageURL {
			return cloneItem(item), true, nil
		}
	}
	return wardrobe.Item{}, false, nil
}

// DeleteByImageURL removes the item and reports whether it existed.
func (r *MemoryRepository) DeleteByImageURL(_ context.Context, userID int64, imageURL string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.items[userID]
	for i, item := range stored {
		if item.ImageURL == imageURL {
			r.items[userID] = append(stored[:i:i], stored[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func cloneItem(item wardrobe.Item) wardrobe.Item {
	item.SeasonTags = append([]string(nil), item.SeasonTags...)
	item.StyleTags = append([]string(nil), item.StyleTags...)
	return item
}

var _ wardrobe.Repository = (*MemoryRepository)(nil)
