package stylist

import (
	"github.com/yanqian/fitcheck/internal/domain/outfit"
	"github.com/yanqian/fitcheck/internal/domain/wardrobe"
)

// Config bounds recommendation requests.
type Config struct {
	MaxPromptChars int
}

// PromptRequest asks for an outfit built from the existing wardrobe,
// optionally around one of its items.
type PromptRequest struct {
	Prompt       string   `json:"prompt"`
	Lat          *float64 `json:"lat"`
	Lon          *float64 `json:"lon"`
	BaseImageURL string   `json:"baseImageUrl"`
}

// ImageRequest uploads a new base garment and builds an outfit around it.
type ImageRequest struct {
	Prompt   string
	Lat      *float64
	Lon      *float64
	Filename string
	MimeType string
	Content  []byte
}

// Recommendation is the corrected, enriched outfit returned to clients.
type Recommendation struct {
	SelectedItems  []outfit.EnrichedSelection `json:"selectedItems"`
	OverallReason  string                     `json:"overallReason"`
	WeatherSummary string                     `json:"weatherSummary"`
	WeatherWarning string                     `json:"weatherWarning"`
	Weather        *outfit.WeatherContext     `json:"weather,omitempty"`
	BaseItem       *wardrobe.Item             `json:"baseItem,omitempty"`
}

// OracleRequest is everything the outfit oracle sees for one proposal.
type OracleRequest struct {
	Prompt    string
	Wardrobe  []outfit.WardrobeItem
	Weather   *outfit.WeatherContext
	BaseImage *wardrobe.Image
}
