package wardrobe

import (
	"time"

	"github.com/yanqian/fitcheck/internal/domain/outfit"
)

// Item is a persisted wardrobe garment. ImageURL is its stable identifier.
type Item struct {
	ImageURL   string    `json:"imageUrl"`
	StorageKey string    `json:"-"`
	UserID     int64     `json:"-"`
	Name       string    `json:"name"`
	Gender     string    `json:"gender"`
	Category   string    `json:"category"`
	Color      string    `json:"color"`
	Material   string    `json:"material"`
	Texture    string    `json:"texture"`
	Pattern    string    `json:"pattern"`
	Formality  string    `json:"formality"`
	SeasonTags []string  `json:"seasonTags"`
	StyleTags  []string  `json:"styleTags"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToOutfitItem projects the record onto the enforcement engine's view.
func (i Item) ToOutfitItem() outfit.WardrobeItem {
	return outfit.WardrobeItem{
		ImageURL:   i.ImageURL,
		Name:       i.Name,
		Category:   i.Category,
		Material:   i.Material,
		Color:      i.Color,
		Texture:    i.Texture,
		Pattern:    i.Pattern,
		Formality:  i.Formality,
		Gender:     i.Gender,
		SeasonTags: i.SeasonTags,
		StyleTags:  i.StyleTags,
	}
}

// Snapshot converts items for one enforcement pass.
func Snapshot(items []Item) []outfit.WardrobeItem {
	out := make([]outfit.WardrobeItem, 0, len(items))
	for _, it := range items {
		out = append(out, it.ToOutfitItem())
	}
	return out
}

// Attributes is what the extractor reports for a garment photo.
type Attributes struct {
	Name       string
	Category   string
	Color      string
	Material   string
	Texture    string
	Pattern    string
	Formality  string
	SeasonTags []string
	StyleTags  []string
	Notes      string
}

// AddItemRequest captures an uploaded garment photo.
type AddItemRequest struct {
	Filename string
	Name     string
	Gender   string
	MimeType string
	Content  []byte
	// Folder groups uploads under the user's prefix ("items" when empty).
	Folder string
	// FallbackName is used when neither the caller nor the extractor names the item.
	FallbackName string
}

// Config bounds uploads.
type Config struct {
	MaxUploadBytes int64
}
