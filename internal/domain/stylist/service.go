package stylist

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/yanqian/fitcheck/internal/domain/outfit"
	"github.com/yanqian/fitcheck/internal/domain/wardrobe"
	apperrors "github.com/yanqian/fitcheck/pkg/errors"
)

const (
	emptyWardrobeReason = "No wardrobe items found."
	baseItemName        = "Base item"
	baseItemReason      = "The base item you uploaded."
	baseFolder          = "base"
	maxInlineImageBytes = 8 << 20
)

// Service builds weather-safe outfit recommendations.
type Service interface {
	FromPrompt(ctx context.Context, userID int64, req PromptRequest) (Recommendation, error)
	FromImage(ctx context.Context, userID int64, req ImageRequest) (Recommendation, error)
}

type service struct {
	cfg      Config
	wardrobe wardrobe.Service
	images   wardrobe.ImageStore
	weather  WeatherProvider
	oracle   Oracle
	engine   *outfit.Engine
	logger   *slog.Logger
}

// NewService wires the stylist domain. weather may be nil, in which case
// recommendations are built without thermal enforcement.
func NewService(
	cfg Config,
	wardrobeSvc wardrobe.Service,
	images wardrobe.ImageStore,
	weather WeatherProvider,
	oracle Oracle,
	engine *outfit.Engine,
	logger *slog.Logger,
) Service {
	return &service{
		cfg:      cfg,
		wardrobe: wardrobeSvc,
		images:   images,
		weather:  weather,
		oracle:   oracle,
		engine:   engine,
		logger:   logger.With("component", "stylist.service"),
	}
}

func (s *service) FromPrompt(ctx context.Context, userID int64, req PromptRequest) (Recommendation, error) {
	prompt, err := s.validate(req.Prompt, req.Lat, req.Lon)
	if err != nil {
		return Recommendation{}, err
	}

	var base *wardrobe.Image
	baseURL := strings.TrimSpace(req.BaseImageURL)
	if baseURL != "" {
		item, err := s.wardrobe.GetItem(ctx, userID, baseURL)
		if err != nil {
			if apperrors.IsCode(err, apperrors.CodeNotFound) {
				return Recommendation{}, apperrors.Wrap(apperrors.CodeInvalidInput, "base image is not in your wardrobe", nil)
			}
			return Recommendation{}, err
		}
		base = s.loadImage(ctx, item)
	}

	return s.recommend(ctx, userID, prompt, req.Lat, req.Lon, base, "")
}

func (s *service) FromImage(ctx context.Context, userID int64, req ImageRequest) (Recommendation, error) {
	prompt, err := s.validate(req.Prompt, req.Lat, req.Lon)
	if err != nil {
		return Recommendation{}, err
	}

	item, err := s.wardrobe.AddItem(ctx, userID, wardrobe.AddItemRequest{
		Filename:     req.Filename,
		MimeType:     req.MimeType,
		Content:      req.Content,
		Folder:       baseFolder,
		FallbackName: baseItemName,
	})
	if err != nil {
		return Recommendation{}, err
	}
	base := &wardrobe.Image{URL: item.ImageURL, MimeType: req.MimeType, Content: req.Content}

	rec, err := s.recommend(ctx, userID, prompt, req.Lat, req.Lon, base, baseItemReason)
	if err != nil {
		return Recommendation{}, err
	}
	rec.BaseItem = &item
	return rec, nil
}

func (s *service) recommend(ctx context.Context, userID int64, prompt string, lat, lon *float64, base *wardrobe.Image, centerpieceReason string) (Recommendation, error) {
	items, err := s.wardrobe.ListItems(ctx, userID)
	if err != nil {
		return Recommendation{}, err
	}
	if len(items) == 0 {
		return Recommendation{
			SelectedItems: []outfit.EnrichedSelection{},
			OverallReason: emptyWardrobeReason,
		}, nil
	}
	snapshot := wardrobe.Snapshot(items)

	weather := s.lookupWeather(ctx, lat, lon)

	candidate, err := s.oracle.Propose(ctx, OracleRequest{
		Prompt:    prompt,
		Wardrobe:  snapshot,
		Weather:   weather,
		BaseImage: base,
	})
	if err != nil {
		if apperrors.CodeOf(err) != "" {
			return Recommendation{}, err
		}
		return Recommendation{}, apperrors.Wrap(apperrors.CodeOracle, "failed to generate outfit", err)
	}

	centerpiece := ""
	if base != nil {
		centerpiece = base.URL
	}
	corrected := s.engine.Enforce(outfit.EnforceInput{
		Candidate:         candidate,
		Wardrobe:          snapshot,
		Weather:           weather,
		Prompt:            prompt,
		Centerpiece:       centerpiece,
		CenterpieceReason: centerpieceReason,
	})

	s.logger.Info("outfit recommended",
		"user_id", userID,
		"proposed", len(candidate.SelectedItems),
		"kept", len(corrected.SelectedItems),
		"weather", weather != nil,
		"warned", corrected.WeatherWarning != "",
	)

	return Recommendation{
		SelectedItems:  outfit.Enrich(corrected, outfit.NewIndex(snapshot)),
		OverallReason:  corrected.OverallReason,
		WeatherSummary: corrected.WeatherSummary,
		WeatherWarning: corrected.WeatherWarning,
		Weather:        weather,
	}, nil
}

func (s *service) lookupWeather(ctx context.Context, lat, lon *float64) *outfit.WeatherContext {
	if s.weather == nil || lat == nil || lon == nil {
		return nil
	}
	obs, err := s.weather.Current(ctx, *lat, *lon)
	if err != nil {
		s.logger.Warn("weather lookup failed", "error", err)
		return nil
	}
	classified := s.engine.ClassifyWeather(obs)
	return &classified
}

// loadImage attaches the stored bytes so the oracle can inline them; the
// URL alone is used when the blob cannot be read.
func (s *service) loadImage(ctx context.Context, item wardrobe.Item) *wardrobe.Image {
	image := &wardrobe.Image{URL: item.ImageURL}
	if s.images == nil || item.StorageKey == "" {
		return image
	}
	reader, mimeType, err := s.images.Get(ctx, item.StorageKey)
	if err != nil {
		s.logger.Warn("failed to load base image", "key", item.StorageKey, "error", err)
		return image
	}
	defer reader.Close()
	data, err := io.ReadAll(io.LimitReader(reader, maxInlineImageBytes))
	if err != nil {
		s.logger.Warn("failed to read base image", "key", item.StorageKey, "error", err)
		return image
	}
	image.Content = data
	image.MimeType = mimeType
	return image
}

func (s *service) validate(prompt string, lat, lon *float64) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if s.cfg.MaxPromptChars > 0 && utf8.RuneCountInString(prompt) > s.cfg.MaxPromptChars {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("prompt exceeds %d characters", s.cfg.MaxPromptChars), nil)
	}
	if (lat == nil) != (lon == nil) {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, "lat and lon must be provided together", nil)
	}
	if lat != nil {
		if math.IsNaN(*lat) || *lat < -90 || *lat > 90 {
			return "", apperrors.Wrap(apperrors.CodeInvalidInput, "lat must be between -90 and 90", nil)
		}
		if math.IsNaN(*lon) || *lon < -180 || *lon > 180 {
			return "", apperrors.Wrap(apperrors.CodeInvalidInput, "lon must be between -180 and 180", nil)
		}
	}
	return prompt, nil
}
