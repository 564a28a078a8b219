package stylist

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/fitcheck/internal/domain/outfit"
	"github.com/yanqian/fitcheck/internal/domain/wardrobe"
	apperrors "github.com/yanqian/fitcheck/pkg/errors"
)

func TestService_FromPromptEnforcesWeather(t *testing.T) {
	wardrobeSvc := newStubWardrobe(
		wardrobe.Item{ImageURL: "img/coat", Name: "Wool Coat", Category: "coat", Material: "wool"},
		wardrobe.Item{ImageURL: "img/tee", Name: "Linen Tee", Category: "t-shirt", Material: "linen"},
		wardrobe.Item{ImageURL: "img/jeans", Name: "Jeans", Category: "jeans", Material: "denim"},
	)
	oracle := &stubOracle{proposal: outfit.Outfit{
		SelectedItems: []outfit.Selection{
			{ImageURL: "img/coat", Reason: "warm"},
			{ImageURL: "img/tee", Reason: "airy"},
			{ImageURL: "img/tee", Reason: "dup"},
			{ImageURL: "img/jeans", Reason: "classic"},
		},
		OverallReason:  "balanced",
		WeatherSummary: "Scorching afternoon.",
	}}
	weather := &stubWeather{obs: outfit.Observation{TempC: 33, Conditions: []string{"Clear"}}}
	svc := newTestService(wardrobeSvc, weather, oracle)

	rec, err := svc.FromPrompt(context.Background(), 1, PromptRequest{
		Prompt: "  office day  ",
		Lat:    ptr(1.3),
		Lon:    ptr(103.8),
	})
	require.NoError(t, err)

	require.Equal(t, []string{"img/tee", "img/jeans"}, selectionIDs(rec.SelectedItems))
	require.Equal(t, "Linen Tee", rec.SelectedItems[0].Name)
	require.Equal(t, "linen", rec.SelectedItems[0].Material)
	require.Equal(t, "balanced", rec.OverallReason)
	require.Equal(t, "Scorching afternoon.", rec.WeatherSummary)
	require.Empty(t, rec.WeatherWarning)
	require.NotNil(t, rec.Weather)
	require.True(t, rec.Weather.IsHot)

	require.Equal(t, "office day", oracle.got.Prompt)
	require.Len(t, oracle.got.Wardrobe, 3)
	require.Nil(t, oracle.got.BaseImage)
	require.Equal(t, 1.3, weather.lat)
}

func TestService_FromPromptWithBaseImage(t *testing.T) {
	wardrobeSvc := newStubWardrobe(
		wardrobe.Item{ImageURL: "img/dress", StorageKey: "k/dress", Name: "Slip Dress", Category: "dress", Material: "silk"},
		wardrobe.Item{ImageURL: "img/boots", Name: "Boots", Category: "boots", Material: "leather"},
	)
	images := &stubImages{blobs: map[string][]byte{"k/dress": []byte("dress-bytes")}}
	oracle := &stubOracle{proposal: outfit.Outfit{SelectedItems: []outfit.Selection{{ImageURL: "img/boots", Reason: "sturdy"}}}}
	svc := NewService(Config{MaxPromptChars: 50}, wardrobeSvc, images, nil, oracle, outfit.NewEngine(outfit.DefaultRules()), testLogger())

	rec, err := svc.FromPrompt(context.Background(), 1, PromptRequest{BaseImageURL: "img/dress"})
	require.NoError(t, err)

	require.Equal(t, []string{"img/dress", "img/boots"}, selectionIDs(rec.SelectedItems))
	require.Equal(t, outfit.DefaultRules().CenterpieceReason, rec.SelectedItems[0].Reason)
	require.Nil(t, rec.Weather)
	require.Equal(t, "img/dress", oracle.got.BaseImage.URL)
	require.Equal(t, []byte("dress-bytes"), oracle.got.BaseImage.Content)
}

func TestService_FromPromptValidation(t *testing.T) {
	wardrobeSvc := newStubWardrobe(wardrobe.Item{ImageURL: "img/tee"})
	svc := newTestService(wardrobeSvc, nil, &stubOracle{})

	cases := map[string]PromptRequest{
		"lat without lon":  {Lat: ptr(10)},
		"lat out of range": {Lat: ptr(91), Lon: ptr(0)},
		"lon out of range": {Lat: ptr(0), Lon: ptr(-181)},
		"lat not a number": {Lat: ptr(math.NaN()), Lon: ptr(0)},
		"lon not a number": {Lat: ptr(0), Lon: ptr(math.NaN())},
		"both not numbers": {Lat: ptr(math.NaN()), Lon: ptr(math.NaN())},
		"prompt too long":  {Prompt: string(bytes.Repeat([]byte("a"), 51))},
		"unknown base":     {BaseImageURL: "img/elsewhere"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.FromPrompt(context.Background(), 1, req)
			require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput), "got %v", err)
		})
	}
}

func TestService_EmptyWardrobe(t *testing.T) {
	oracle := &stubOracle{}
	svc := newTestService(newStubWardrobe(), nil, oracle)

	rec, err := svc.FromPrompt(context.Background(), 1, PromptRequest{Prompt: "party"})
	require.NoError(t, err)
	require.Equal(t, "No wardrobe items found.", rec.OverallReason)
	require.Empty(t, rec.SelectedItems)
	require.NotNil(t, rec.SelectedItems)
	require.False(t, oracle.called)
}

func TestService_WeatherFailureDegradesGracefully(t *testing.T) {
	wardrobeSvc := newStubWardrobe(wardrobe.Item{ImageURL: "img/coat", Category: "coat"})
	oracle := &stubOracle{proposal: outfit.Outfit{
		SelectedItems:  []outfit.Selection{{ImageURL: "img/coat", Reason: "cosy"}},
		WeatherWarning: "kept as is",
	}}
	svc := newTestService(wardrobeSvc, &stubWeather{err: errors.New("timeout")}, oracle)

	rec, err := svc.FromPrompt(context.Background(), 1, PromptRequest{Lat: ptr(0), Lon: ptr(0)})
	require.NoError(t, err)
	require.Nil(t, rec.Weather)
	require.Equal(t, []string{"img/coat"}, selectionIDs(rec.SelectedItems))
	require.Equal(t, "kept as is", rec.WeatherWarning)
}

func TestService_OracleFailure(t *testing.T) {
	wardrobeSvc := newStubWardrobe(wardrobe.Item{ImageURL: "img/coat"})
	svc := newTestService(wardrobeSvc, nil, &stubOracle{err: errors.New("boom")})

	_, err := svc.FromPrompt(context.Background(), 1, PromptRequest{})
	require.True(t, apperrors.IsCode(err, apperrors.CodeOracle))
}

func TestService_FromImageAddsBaseItem(t *testing.T) {
	wardrobeSvc := newStubWardrobe(
		wardrobe.Item{ImageURL: "img/coat", Name: "Wool Coat", Category: "coat", Material: "wool"},
	)
	oracle := &stubOracle{proposal: outfit.Outfit{SelectedItems: []outfit.Selection{{ImageURL: "img/coat", Reason: "layer"}}}}
	weather := &stubWeather{obs: outfit.Observation{TempC: 4, Conditions: []string{"Snow"}}}
	svc := newTestService(wardrobeSvc, weather, oracle)

	rec, err := svc.FromImage(context.Background(), 1, ImageRequest{
		Prompt:   "date night",
		Lat:      ptr(40),
		Lon:      ptr(-74),
		Filename: "dress.png",
		MimeType: "image/png",
		Content:  []byte("dress"),
	})
	require.NoError(t, err)

	require.NotNil(t, rec.BaseItem)
	require.Equal(t, "base", wardrobeSvc.added.Folder)
	require.Equal(t, "Base item", wardrobeSvc.added.FallbackName)
	require.Equal(t, []string{rec.BaseItem.ImageURL, "img/coat"}, selectionIDs(rec.SelectedItems))
	require.Equal(t, "The base item you uploaded.", rec.SelectedItems[0].Reason)
	require.Equal(t, []byte("dress"), oracle.got.BaseImage.Content)
	require.Len(t, oracle.got.Wardrobe, 2)
	require.True(t, rec.Weather.IsCold)
}

func TestService_FromImagePropagatesUploadErrors(t *testing.T) {
	wardrobeSvc := newStubWardrobe()
	wardrobeSvc.addErr = apperrors.Wrap(apperrors.CodeInvalidInput, "unsupported file type", nil)
	oracle := &stubOracle{}
	svc := newTestService(wardrobeSvc, nil, oracle)

	_, err := svc.FromImage(context.Background(), 1, ImageRequest{Content: []byte("x")})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.False(t, oracle.called)
}

func newTestService(wardrobeSvc wardrobe.Service, weather WeatherProvider, oracle Oracle) Service {
	return NewService(Config{MaxPromptChars: 50}, wardrobeSvc, nil, weather, oracle, outfit.NewEngine(outfit.DefaultRules()), testLogger())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr(v float64) *float64 { return &v }

func selectionIDs(items []outfit.EnrichedSelection) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ImageURL)
	}
	return out
}

type stubWardrobe struct {
	items  []wardrobe.Item
	added  wardrobe.AddItemRequest
	addErr error
}

func newStubWardrobe(items ...wardrobe.Item) *stubWardrobe {
	return &stubWardrobe{items: items}
}

func (s *stubWardrobe) AddItem(_ context.Context, userID int64, req wardrobe.AddItemRequest) (wardrobe.Item, error) {
	if s.addErr != nil {
		return wardrobe.Item{}, s.addErr
	}
	s.added = req
	item := wardrobe.Item{ImageURL: "img/uploaded", UserID: userID, Name: req.FallbackName, Category: "dress", Material: "silk"}
	s.items = append(s.items, item)
	return item, nil
}

func (s *stubWardrobe) ListItems(context.Context, int64) ([]wardrobe.Item, error) {
	return append([]wardrobe.Item(nil), s.items...), nil
}

func (s *stubWardrobe) GetItem(_ context.Context, _ int64, imageURL string) (wardrobe.Item, error) {
	for _, it := range s.items {
		if it.ImageURL == imageURL {
			return it, nil
		}
	}
	return wardrobe.Item{}, apperrors.Wrap(apperrors.CodeNotFound, "item not found", nil)
}

func (s *stubWardrobe) DeleteItem(context.Context, int64, string) error {
	return nil
}

type stubOracle struct {
	proposal outfit.Outfit
	err      error
	got      OracleRequest
	called   bool
}

func (s *stubOracle) Propose(_ context.Context, req OracleRequest) (outfit.Outfit, error) {
	s.called = true
	s.got = req
	return s.proposal, s.err
}

type stubWeather struct {
	obs      outfit.Observation
	err      error
	lat, lon float64
}

func (s *stubWeather) Current(_ context.Context, lat, lon float64) (outfit.Observation, error) {
	s.lat, s.lon = lat, lon
	return s.obs, s.err
}

type stubImages struct {
	blobs map[string][]byte
}

func (s *stubImages) Put(context.Context, string, []byte, string) (wardrobe.StoredImage, error) {
	return wardrobe.StoredImage{}, errors.New("read only")
}

func (s *stubImages) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	data, ok := s.blobs[key]
	if !ok {
		return nil, "", wardrobe.ErrImageNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), "image/png", nil
}

func (s *stubImages) Delete(context.Context, string) error {
	return nil
}
