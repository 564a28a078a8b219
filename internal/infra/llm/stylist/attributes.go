package stylist

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yanqian/fitcheck/internal/domain/wardrobe"
	"github.com/yanqian/fitcheck/internal/infra/llm/chatgpt"
)

const attributeSystemPrompt = "You are a fashion stylist. Extract concise attributes from a single garment image. " +
	"Be factual and conservative; if unsure, use 'unknown'."

// AttributeExtractor describes garment photos with a vision model.
type AttributeExtractor struct {
	cfg       Config
	completer jsonCompleter
}

// NewAttributeExtractor constructs the extractor.
func NewAttributeExtractor(client ChatClient, cfg Config, logger *slog.Logger) *AttributeExtractor {
	return &AttributeExtractor{
		cfg: cfg,
		completer: jsonCompleter{
			client:      client,
			temperature: cfg.Temperature,
			logger:      logger.With("component", "llm.attributes"),
		},
	}
}

// Extract implements wardrobe.AttributeExtractor.
func (e *AttributeExtractor) Extract(ctx context.Context, image wardrobe.Image, suggestedName string) (wardrobe.Attributes, error) {
	imageRef := imageReference(image, e.cfg.InlineImages)
	if imageRef == "" {
		return wardrobe.Attributes{}, fmt.Errorf("garment image is missing")
	}
	messages := []chatgpt.Message{
		{Role: "system", Content: attributeSystemPrompt},
		{Role: "user", Parts: []chatgpt.ContentPart{
			chatgpt.TextPart("Extract attributes for this single garment. Keep answers short."),
			chatgpt.ImagePart(imageRef),
		}},
	}
	content, err := e.completer.complete(ctx, modelChain(e.cfg.AttributeModel, e.cfg.FallbackModel), messages, "GarmentAttributes", attributeSchema)
	if err != nil {
		return wardrobe.Attributes{}, err
	}
	attrs, err := parseAttributes(content)
	if err != nil {
		return wardrobe.Attributes{}, fmt.Errorf("parse garment attributes: %w", err)
	}
	if attrs.Name == "" {
		attrs.Name = strings.TrimSpace(suggestedName)
	}
	return attrs, nil
}

type attributesWire struct {
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Color      string          `json:"color"`
	Material   string          `json:"material"`
	Texture    string          `json:"texture"`
	Pattern    string          `json:"pattern"`
	Formality  string          `json:"formality"`
	SeasonTags json.RawMessage `json:"season_tags"`
	StyleTags  json.RawMessage `json:"style_tags"`
	Notes      string          `json:"notes"`
}

func parseAttributes(raw string) (wardrobe.Attributes, error) {
	var wire attributesWire
	if err := json.Unmarshal([]byte(stripFences(raw)), &wire); err != nil {
		return wardrobe.Attributes{}, err
	}
	seasons, err := coerceStringArray(wire.SeasonTags)
	if err != nil {
		return wardrobe.Attributes{}, fmt.Errorf("season_tags: %w", err)
	}
	styles, err := coerceStringArray(wire.StyleTags)
	if err != nil {
		return wardrobe.Attributes{}, fmt.Errorf("style_tags: %w", err)
	}
	return wardrobe.Attributes{
		Name:       strings.TrimSpace(wire.Name),
		Category:   wire.Category,
		Color:      wire.Color,
		Material:   wire.Material,
		Texture:    wire.Texture,
		Pattern:    wire.Pattern,
		Formality:  wire.Formality,
		SeasonTags: seasons,
		StyleTags:  styles,
		Notes:      wire.Notes,
	}, nil
}

// coerceStringArray accepts a JSON array, a single string, or null.
func coerceStringArray(raw json.RawMessage) ([]string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	switch trimmed[0] {
	case '"':
		var single string
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, err
		}
		if strings.TrimSpace(single) == "" {
			return nil, nil
		}
		return []string{single}, nil
	case '[':
		var many []string
		if err := json.Unmarshal(raw, &many); err != nil {
			return nil, err
		}
		return many, nil
	default:
		return nil, fmt.Errorf("unexpected value %s", trimmed)
	}
}

// imageReference prefers an inline data URI when bytes are at hand and
// inlining is enabled, so models can see images served from private hosts.
func imageReference(image wardrobe.Image, inline bool) string {
	if inline && len(image.Content) > 0 {
		mimeType := image.MimeType
		if mimeType == "" {
			mimeType = "image/png"
		}
		return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image.Content)
	}
	return strings.TrimSpace(image.URL)
}

var _ wardrobe.AttributeExtractor = (*AttributeExtractor)(nil)
