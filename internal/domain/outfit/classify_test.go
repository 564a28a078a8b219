package outfit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyItem(t *testing.T) {
	engine := NewEngine(DefaultRules())
	tests := []struct {
		name string
		item WardrobeItem
		want ThermalClass
	}{
		{name: "heavy category", item: WardrobeItem{Category: "Parka"}, want: ThermalHeavy},
		{name: "multi word heavy category", item: WardrobeItem{Category: "fur coat"}, want: ThermalHeavy},
		{name: "heavy material", item: WardrobeItem{Category: "trousers", Material: "Merino WOOL"}, want: ThermalHeavy},
		{name: "light category", item: WardrobeItem{Category: "slip dress"}, want: ThermalLight},
		{name: "light material", item: WardrobeItem{Category: "shirt", Material: "linen"}, want: ThermalLight},
		{name: "heavy wins over light", item: WardrobeItem{Category: "dress", Material: "wool"}, want: ThermalHeavy},
		{name: "category is exact match", item: WardrobeItem{Category: "coat hanger"}, want: ThermalNeutral},
		{name: "missing attributes", item: WardrobeItem{}, want: ThermalNeutral},
		{name: "neutral", item: WardrobeItem{Category: "jeans", Material: "denim"}, want: ThermalNeutral},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, engine.ClassifyItem(tt.item))
		})
	}
}

func TestDetectIntent(t *testing.T) {
	engine := NewEngine(DefaultRules())
	tests := []struct {
		prompt string
		want   Intent
	}{
		{prompt: "Keep me warm at the game", want: Intent{WantsWarm: true}},
		{prompt: "beach party", want: Intent{WantsCool: true}},
		{prompt: "warm but light layers", want: Intent{WantsWarm: true, WantsCool: true}},
		{prompt: "job interview", want: Intent{}},
		{prompt: "", want: Intent{}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, engine.DetectIntent(tt.prompt), tt.prompt)
	}
}

func TestClassifyWeather(t *testing.T) {
	engine := NewEngine(DefaultRules())
	tests := []struct {
		name                 string
		obs                  Observation
		cold, hotFlag, rainy bool
	}{
		{name: "cold", obs: Observation{FeelsLikeC: 9.9, Conditions: []string{"Clouds"}}, cold: true},
		{name: "boundary cold", obs: Observation{FeelsLikeC: 10}},
		{name: "boundary hot", obs: Observation{FeelsLikeC: 28}},
		{name: "hot", obs: Observation{FeelsLikeC: 28.1}, hotFlag: true},
		{name: "rain token", obs: Observation{FeelsLikeC: 15, Conditions: []string{"Clear", "Rain"}}, rainy: true},
		{name: "drizzle is not rain", obs: Observation{FeelsLikeC: 15, Conditions: []string{"Drizzle"}}},
		{name: "description fallback", obs: Observation{FeelsLikeC: 15, Condition: "light rain"}, rainy: true},
		{name: "feels like drives flags", obs: Observation{TempC: 12, FeelsLikeC: 8}, cold: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctx := engine.ClassifyWeather(tt.obs)
			require.Equal(t, tt.cold, ctx.IsCold)
			require.Equal(t, tt.hotFlag, ctx.IsHot)
			require.Equal(t, tt.rainy, ctx.IsRainy)
			require.Equal(t, tt.obs.FeelsLikeC, ctx.FeelsLikeC)
		})
	}
}

func TestRulesValidate(t *testing.T) {
	require.NoError(t, DefaultRules().Validate())

	inverted := DefaultRules()
	inverted.HotAboveC = 5
	require.Error(t, inverted.Validate())

	noTemplate := DefaultRules()
	noTemplate.ColdWarning = "cold!"
	require.Error(t, noTemplate.Validate())

	twoPlaceholders := DefaultRules()
	twoPlaceholders.HotWarning = "It's hot (%s), really hot (%s)."
	require.Error(t, twoPlaceholders.Validate())

	noHeavy := DefaultRules()
	noHeavy.HeavyCategories = nil
	noHeavy.HeavyMaterials = nil
	require.Error(t, noHeavy.Validate())
}

func TestNewIndexAndEnrich(t *testing.T) {
	index := NewIndex([]WardrobeItem{
		{ImageURL: "a", Name: "First", Color: "red"},
		{ImageURL: "a", Name: "Shadowed"},
		{ImageURL: "", Name: "No id"},
	})
	require.Len(t, index, 1)

	enriched := Enrich(Outfit{SelectedItems: []Selection{
		{ImageURL: "a", Reason: "pop of colour"},
		{ImageURL: "missing", Reason: "?"},
	}}, index)

	require.Equal(t, []EnrichedSelection{
		{ImageURL: "a", Reason: "pop of colour", Name: "First", Color: "red"},
		{ImageURL: "missing", Reason: "?"},
	}, enriched)
}
