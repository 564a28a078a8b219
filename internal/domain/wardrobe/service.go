package wardrobe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	apperrors "github.com/yanqian/fitcheck/pkg/errors"
	"github.com/yanqian/fitcheck/pkg/util"
)

const (
	defaultFolder   = "items"
	defaultName     = "Unnamed"
	defaultCategory = "other"
	unknownValue    = "unknown"
	defaultGender   = "unisex"
)

// Service manages a user's digitized wardrobe.
type Service interface {
	AddItem(ctx context.Context, userID int64, req AddItemRequest) (Item, error)
	ListItems(ctx context.Context, userID int64) ([]Item, error)
	GetItem(ctx context.Context, userID int64, imageURL string) (Item, error)
	DeleteItem(ctx context.Context, userID int64, imageURL string) error
}

type service struct {
	cfg       Config
	repo      Repository
	images    ImageStore
	extractor AttributeExtractor
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// NewService wires the wardrobe domain.
func NewService(cfg Config, repo Repository, images ImageStore, extractor AttributeExtractor, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		repo:      repo,
		images:    images,
		extractor: extractor,
		logger:    logger.With("component", "wardrobe.service"),
		now:       util.NowUTC,
		newID:     func() string { return uuid.NewString() },
	}
}

func (s *service) AddItem(ctx context.Context, userID int64, req AddItemRequest) (Item, error) {
	if userID == 0 {
		return Item{}, apperrors.Wrap(apperrors.CodeUnauthorized, "missing user", nil)
	}
	if len(req.Content) == 0 {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "image content cannot be empty", nil)
	}
	if s.cfg.MaxUploadBytes > 0 && int64(len(req.Content)) > s.cfg.MaxUploadBytes {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "image exceeds maximum allowed size", nil)
	}
	detected := mimetype.Detect(req.Content)
	if !strings.HasPrefix(detected.String(), "image/") {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unsupported file type %q", detected.String()), nil)
	}

	folder := strings.Trim(strings.TrimSpace(req.Folder), "/")
	if folder == "" {
		folder = defaultFolder
	}
	key := fmt.Sprintf("wardrobe/%d/%s/%s%s", userID, folder, s.newID(), detected.Extension())
	stored, err := s.images.Put(ctx, key, req.Content, detected.String())
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeStorage, "failed to store image", err)
	}

	suggested := firstNonEmpty(req.Name, req.FallbackName, defaultName)
	attrs, err := s.extractor.Extract(ctx, Image{URL: stored.URL, MimeType: detected.String(), Content: req.Content}, suggested)
	if err != nil {
		s.discardImage(ctx, stored.Key)
		return Item{}, apperrors.Wrap(apperrors.CodeExtraction, "failed to analyze garment", err)
	}

	item := normalize(attrs)
	item.Name = firstNonEmpty(attrs.Name, req.Name, req.FallbackName, defaultName)
	item.ImageURL = stored.URL
	item.StorageKey = stored.Key
	item.UserID = userID
	item.Gender = strings.ToLower(firstNonEmpty(req.Gender, defaultGender))
	item.CreatedAt = s.now()

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		s.discardImage(ctx, stored.Key)
		return Item{}, apperrors.Wrap(apperrors.CodeStorage, "failed to persist item", err)
	}
	s.logger.Info("wardrobe item added", "user_id", userID, "category", created.Category, "key", stored.Key)
	return created, nil
}

func (s *service) ListItems(ctx context.Context, userID int64) ([]Item, error) {
	if userID == 0 {
		return nil, apperrors.Wrap(apperrors.CodeUnauthorized, "missing user", nil)
	}
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "failed to load wardrobe", err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func (s *service) GetItem(ctx context.Context, userID int64, imageURL string) (Item, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return Item{}, apperrors.Wrap(apperrors.CodeInvalidInput, "image url cannot be empty", nil)
	}
	item, found, err := s.repo.GetByImageURL(ctx, userID, imageURL)
	if err != nil {
		return Item{}, apperrors.Wrap(apperrors.CodeStorage, "failed to load item", err)
	}
	if !found {
		return Item{}, apperrors.Wrap(apperrors.CodeNotFound, "item not found", nil)
	}
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, userID int64, imageURL string) error {
	item, err := s.GetItem(ctx, userID, imageURL)
	if err != nil {
		return err
	}
	deleted, err := s.repo.DeleteByImageURL(ctx, userID, item.ImageURL)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to delete item", err)
	}
	if !deleted {
		return apperrors.Wrap(apperrors.CodeNotFound, "item not found", nil)
	}
	if item.StorageKey != "" {
		s.discardImage(ctx, item.StorageKey)
	}
	return nil
}

func (s *service) discardImage(ctx context.Context, key string) {
	if err := s.images.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete image", "key", key, "error", err)
	}
}

func normalize(attrs Attributes) Item {
	return Item{
		Category:   lowerOr(attrs.Category, defaultCategory),
		Color:      lowerOr(attrs.Color, unknownValue),
		Material:   lowerOr(attrs.Material, unknownValue),
		Texture:    lowerOr(attrs.Texture, unknownValue),
		Pattern:    lowerOr(attrs.Pattern, unknownValue),
		Formality:  lowerOr(attrs.Formality, unknownValue),
		SeasonTags: normalizeTags(attrs.SeasonTags),
		StyleTags:  normalizeTags(attrs.StyleTags),
		Notes:      strings.TrimSpace(attrs.Notes),
	}
}

func lowerOr(value, fallback string) string {
	clean := strings.ToLower(strings.TrimSpace(value))
	if clean == "" {
		return fallback
	}
	return clean
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		clean := strings.ToLower(strings.TrimSpace(tag))
		if clean == "" {
			continue
		}
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if clean := strings.TrimSpace(v); clean != "" {
			return clean
		}
	}
	return ""
}
