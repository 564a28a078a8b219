package stylist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yanqian/fitcheck/internal/domain/outfit"
	domain "github.com/yanqian/fitcheck/internal/domain/stylist"
	"github.com/yanqian/fitcheck/internal/infra/llm/chatgpt"
)

const outfitSystemPrompt = `You are a fashion stylist. Select a cohesive outfit from the user's wardrobe.
- Only pick from items in the wardrobe list.
- Build realistic outfits: top+bottom+shoes (+/- outerwear) or dress+shoes (+/- outerwear).
- Consider color harmony, material/texture, formality, season_tags, and style_tags.
- Respect the user's prompt (occasion, vibe, constraints).
- Use the weather info if provided:
  * If weather.is_cold is true, prefer warmer materials.
  * You MAY select light items (e.g. dresses, thin tops) in cold weather only if you also select a heavy outer layer (coat, jacket) to cover them.
  * If weather.is_hot is true, prefer lighter fabrics and avoid heavy outerwear.
  * If weather.is_rainy is true, avoid delicate shoes and very long dragging hems.
- For each selected_items[i].reason, write ONE short, vivid sentence (max ~20 words) describing why that item works.
- overall_reason must be at most 100 words, written as 3-6 concise points separated by periods or semicolons.
- Always include ALL JSON fields, even if some are empty strings:
  * selected_items: array of items with image_url and reason.
  * overall_reason: short stylist logic.
  * weather_summary: brief sentence about today's weather, or "" if no weather data.
  * weather_warning: brief warning if the outfit doesn't match the weather, or "" if there is no issue.
- Prefer 2-4 items per outfit.
- If a base item is provided, you MUST include its image_url in selected_items as the centerpiece.`

// Oracle asks a chat model to propose outfits.
type Oracle struct {
	cfg       Config
	completer jsonCompleter
	counter   TokenCounter
	logger    *slog.Logger
}

// NewOracle constructs the oracle. counter may be nil to disable budgeting.
func NewOracle(client ChatClient, cfg Config, counter TokenCounter, logger *slog.Logger) *Oracle {
	logger = logger.With("component", "llm.oracle")
	return &Oracle{
		cfg: cfg,
		completer: jsonCompleter{
			client:      client,
			temperature: cfg.Temperature,
			logger:      logger,
		},
		counter: counter,
		logger:  logger,
	}
}

// Propose implements stylist.Oracle.
func (o *Oracle) Propose(ctx context.Context, req domain.OracleRequest) (outfit.Outfit, error) {
	messages, err := o.buildMessages(req)
	if err != nil {
		return outfit.Outfit{}, err
	}
	content, err := o.completer.complete(ctx, modelChain(o.cfg.RecommendModel, o.cfg.FallbackModel), messages, "OutfitPick", outfitSchema)
	if err != nil {
		return outfit.Outfit{}, err
	}
	proposal, err := parseProposal(content)
	if err != nil {
		return outfit.Outfit{}, fmt.Errorf("parse outfit proposal: %w", err)
	}
	return proposal, nil
}

func (o *Oracle) buildMessages(req domain.OracleRequest) ([]chatgpt.Message, error) {
	parts := make([]chatgpt.ContentPart, 0, 6)
	centerpiece := ""
	if req.BaseImage != nil && imageReference(*req.BaseImage, o.cfg.InlineImages) != "" {
		centerpiece = req.BaseImage.URL
		parts = append(parts,
			chatgpt.TextPart(fmt.Sprintf("Complete an outfit around this base item (image_url: %s):", req.BaseImage.URL)),
			chatgpt.ImagePart(imageReference(*req.BaseImage, o.cfg.InlineImages)),
		)
	} else {
		parts = append(parts, chatgpt.TextPart("No base image; build a full outfit only from the wardrobe."))
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		prompt = "none"
	}
	parts = append(parts, chatgpt.TextPart("User prompt (occasion / requirements): "+prompt))

	if req.Weather != nil {
		weather, err := json.Marshal(weatherWireFrom(*req.Weather))
		if err != nil {
			return nil, fmt.Errorf("encode weather: %w", err)
		}
		parts = append(parts, chatgpt.TextPart("Weather context: "+string(weather)))
	}

	wardrobeJSON, err := o.wardrobePayload(req.Wardrobe, centerpiece)
	if err != nil {
		return nil, err
	}
	parts = append(parts,
		chatgpt.TextPart("Wardrobe items (attributes only):"),
		chatgpt.TextPart(wardrobeJSON),
	)

	return []chatgpt.Message{
		{Role: "system", Content: outfitSystemPrompt},
		{Role: "user", Parts: parts},
	}, nil
}

type wardrobeEntry struct {
	ImageURL   string   `json:"image_url"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Color      string   `json:"color"`
	Material   string   `json:"material"`
	Texture    string   `json:"texture"`
	Pattern    string   `json:"pattern"`
	Formality  string   `json:"formality"`
	SeasonTags []string `json:"season_tags"`
	StyleTags  []string `json:"style_tags"`
	Gender     string   `json:"gender"`
}

// wardrobePayload serializes the wardrobe, dropping trailing items once the
// token budget is spent. The centerpiece is always listed first.
func (o *Oracle) wardrobePayload(items []outfit.WardrobeItem, centerpiece string) (string, error) {
	ordered := make([]outfit.WardrobeItem, 0, len(items))
	for _, it := range items {
		if centerpiece != "" && it.ImageURL == centerpiece {
			ordered = append([]outfit.WardrobeItem{it}, ordered...)
			continue
		}
		ordered = append(ordered, it)
	}

	encoded := make([]string, 0, len(ordered))
	spent := 0
	for _, it := range ordered {
		raw, err := json.Marshal(entryFrom(it))
		if err != nil {
			return "", fmt.Errorf("encode wardrobe item: %w", err)
		}
		if o.counter != nil && o.cfg.WardrobeTokenBudget > 0 {
			cost := o.counter.Count(string(raw))
			if spent+cost > o.cfg.WardrobeTokenBudget && len(encoded) > 0 {
				o.logger.Warn("wardrobe truncated to fit token budget",
					"kept", len(encoded), "total", len(ordered), "budget", o.cfg.WardrobeTokenBudget)
				break
			}
			spent += cost
		}
		encoded = append(encoded, string(raw))
	}
	return "[" + strings.Join(encoded, ",") + "]", nil
}

func entryFrom(it outfit.WardrobeItem) wardrobeEntry {
	gender := it.Gender
	if gender == "" {
		gender = "unisex"
	}
	return wardrobeEntry{
		ImageURL:   it.ImageURL,
		Name:       it.Name,
		Category:   it.Category,
		Color:      it.Color,
		Material:   it.Material,
		Texture:    it.Texture,
		Pattern:    it.Pattern,
		Formality:  it.Formality,
		SeasonTags: nonNil(it.SeasonTags),
		StyleTags:  nonNil(it.StyleTags),
		Gender:     gender,
	}
}

type weatherWire struct {
	TempC        float64 `json:"temp_c"`
	FeelsLikeC   float64 `json:"feels_like_c"`
	Condition    string  `json:"condition"`
	Humidity     float64 `json:"humidity"`
	WindSpeedMPS float64 `json:"wind_speed_mps"`
	IsCold       bool    `json:"is_cold"`
	IsHot        bool    `json:"is_hot"`
	IsRainy      bool    `json:"is_rainy"`
}

func weatherWireFrom(w outfit.WeatherContext) weatherWire {
	return weatherWire{
		TempC:        w.TempC,
		FeelsLikeC:   w.FeelsLikeC,
		Condition:    w.Condition,
		Humidity:     w.Humidity,
		WindSpeedMPS: w.WindSpeedMPS,
		IsCold:       w.IsCold,
		IsHot:        w.IsHot,
		IsRainy:      w.IsRainy,
	}
}

type proposalWire struct {
	SelectedItems []struct {
		ImageURL string `json:"image_url"`
		Reason   string `json:"reason"`
	} `json:"selected_items"`
	OverallReason  string `json:"overall_reason"`
	WeatherSummary string `json:"weather_summary"`
	WeatherWarning string `json:"weather_warning"`
}

func parseProposal(raw string) (outfit.Outfit, error) {
	var wire proposalWire
	if err := json.Unmarshal([]byte(stripFences(raw)), &wire); err != nil {
		return outfit.Outfit{}, err
	}
	out := outfit.Outfit{
		SelectedItems:  make([]outfit.Selection, 0, len(wire.SelectedItems)),
		OverallReason:  strings.TrimSpace(wire.OverallReason),
		WeatherSummary: strings.TrimSpace(wire.WeatherSummary),
		WeatherWarning: strings.TrimSpace(wire.WeatherWarning),
	}
	for _, sel := range wire.SelectedItems {
		out.SelectedItems = append(out.SelectedItems, outfit.Selection{
			ImageURL: strings.TrimSpace(sel.ImageURL),
			Reason:   strings.TrimSpace(sel.Reason),
		})
	}
	return out, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

var _ domain.Oracle = (*Oracle)(nil)
