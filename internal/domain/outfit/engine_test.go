package outfit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var testWardrobe = []WardrobeItem{
	{ImageURL: "img/coat", Name: "Camel Coat", Category: "coat", Material: "wool blend"},
	{ImageURL: "img/jacket", Name: "Denim Jacket", Category: "jacket", Material: "denim"},
	{ImageURL: "img/dress", Name: "Red Mini Dress", Category: "mini dress", Material: "cotton"},
	{ImageURL: "img/tee", Name: "White Tee", Category: "t-shirt", Material: "cotton"},
	{ImageURL: "img/jeans", Name: "Blue Jeans", Category: "jeans", Material: "denim"},
	{ImageURL: "img/sandals", Name: "Strappy Sandals", Category: "sandals", Material: "leather"},
	{ImageURL: "img/blouse", Name: "Silk Blouse", Category: "blouse", Material: "SILK"},
}

func newTestEngine() *Engine {
	return NewEngine(DefaultRules())
}

func picks(ids ...string) []Selection {
	out := make([]Selection, 0, len(ids))
	for _, id := range ids {
		out = append(out, Selection{ImageURL: id, Reason: "because " + id})
	}
	return out
}

func ids(o Outfit) []string {
	out := make([]string, 0, len(o.SelectedItems))
	for _, sel := range o.SelectedItems {
		out = append(out, sel.ImageURL)
	}
	return out
}

func hot() *WeatherContext  { return &WeatherContext{FeelsLikeC: 33, IsHot: true} }
func cold() *WeatherContext { return &WeatherContext{FeelsLikeC: 2, IsCold: true} }

func TestEnforceDedupKeepsFirstOccurrenceInOrder(t *testing.T) {
	candidate := Outfit{SelectedItems: []Selection{
		{ImageURL: "img/tee", Reason: "first"},
		{ImageURL: "img/jeans", Reason: "jeans"},
		{ImageURL: "img/tee", Reason: "second"},
		{ImageURL: "", Reason: "blank"},
		{ImageURL: "img/jeans", Reason: "again"},
	}}

	out := newTestEngine().Enforce(EnforceInput{Candidate: candidate, Wardrobe: testWardrobe})

	require.Equal(t, []Selection{
		{ImageURL: "img/tee", Reason: "first"},
		{ImageURL: "img/jeans", Reason: "jeans"},
	}, out.SelectedItems)
}

func TestEnforceIsIdempotent(t *testing.T) {
	engine := newTestEngine()
	cases := []struct {
		name    string
		weather *WeatherContext
		prompt  string
		picks   []Selection
	}{
		{name: "no weather", picks: picks("img/tee", "img/tee", "img/coat")},
		{name: "hot drop", weather: hot(), picks: picks("img/coat", "img/tee", "img/coat")},
		{name: "hot keep", weather: hot(), prompt: "keep me warm", picks: picks("img/coat", "img/tee")},
		{name: "cold layered", weather: cold(), picks: picks("img/dress", "img/jacket", "img/dress")},
		{name: "cold wants cool", weather: cold(), prompt: "beach day", picks: picks("img/dress", "img/sandals")},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			in := EnforceInput{
				Candidate:   Outfit{SelectedItems: tc.picks, WeatherWarning: "oracle text"},
				Wardrobe:    testWardrobe,
				Weather:     tc.weather,
				Prompt:      tc.prompt,
				Centerpiece: "img/jeans",
			}
			first := engine.Enforce(in)
			in.Candidate = first
			second := engine.Enforce(in)
			require.Equal(t, first, second)
		})
	}
}

func TestEnforceOutputHasUniqueIdentifiers(t *testing.T) {
	candidate := Outfit{SelectedItems: picks("img/tee", "img/coat", "img/tee", "img/dress", "img/coat", "img/dress")}
	for _, weather := range []*WeatherContext{nil, hot(), cold()} {
		out := newTestEngine().Enforce(EnforceInput{Candidate: candidate, Wardrobe: testWardrobe, Weather: weather})
		seen := map[string]bool{}
		for _, id := range ids(out) {
			require.False(t, seen[id], "duplicate %s", id)
			seen[id] = true
		}
	}
}

func TestEnforceCenterpieceAppearsExactlyOnce(t *testing.T) {
	engine := newTestEngine()
	cases := map[string][]Selection{
		"omitted":    picks("img/tee", "img/jeans"),
		"included":   picks("img/tee", "img/coat", "img/jeans"),
		"duplicated": picks("img/coat", "img/tee", "img/coat"),
		"empty":      nil,
	}
	for name, selections := range cases {
		selections := selections
		t.Run(name, func(t *testing.T) {
			for _, weather := range []*WeatherContext{nil, hot(), cold()} {
				out := engine.Enforce(EnforceInput{
					Candidate:   Outfit{SelectedItems: selections},
					Wardrobe:    testWardrobe,
					Weather:     weather,
					Centerpiece: "img/coat",
				})
				count := 0
				for _, id := range ids(out) {
					if id == "img/coat" {
						count++
					}
				}
				require.Equal(t, 1, count)
			}
		})
	}
}

func TestEnforceInsertsMissingCenterpieceAtFront(t *testing.T) {
	out := newTestEngine().Enforce(EnforceInput{
		Candidate:   Outfit{SelectedItems: picks("img/tee", "img/jeans")},
		Wardrobe:    testWardrobe,
		Centerpiece: "img/sandals",
	})

	require.Equal(t, []string{"img/sandals", "img/tee", "img/jeans"}, ids(out))
	require.Equal(t, DefaultRules().CenterpieceReason, out.SelectedItems[0].Reason)

	custom := newTestEngine().Enforce(EnforceInput{
		Candidate:         Outfit{SelectedItems: picks("img/tee")},
		Centerpiece:       "img/sandals",
		CenterpieceReason: "The base item you uploaded.",
	})
	require.Equal(t, "The base item you uploaded.", custom.SelectedItems[0].Reason)
}

func TestEnforceHotWeatherSuppressesHeavyItems(t *testing.T) {
	out := newTestEngine().Enforce(EnforceInput{
		Candidate: Outfit{SelectedItems: picks("img/coat", "img/tee", "img/jeans"), WeatherWarning: "oracle says bring a coat"},
		Wardrobe:  testWardrobe,
		Weather:   hot(),
		Prompt:    "brunch with friends",
	})

	require.Equal(t, []string{"img/tee", "img/jeans"}, ids(out))
	require.Empty(t, out.WeatherWarning)
}

func TestEnforceHotWeatherOverrideWhenUserWantsWarmth(t *testing.T) {
	out := newTestEngine().Enforce(EnforceInput{
		Candidate: Outfit{SelectedItems: picks("img/coat", "img/tee")},
		Wardrobe:  testWardrobe,
		Weather:   hot(),
		Prompt:    "I want my WINTER look",
	})

	require.Equal(t, []string{"img/coat", "img/tee"}, ids(out))
	require.Equal(t, "It's hot, but you asked for winter gear (Camel Coat).", out.WeatherWarning)
}

func TestEnforceColdLayeringException(t *testing.T) {
	out := newTestEngine().Enforce(EnforceInput{
		Candidate: Outfit{SelectedItems: picks("img/dress", "img/jacket"), WeatherWarning: "stale"},
		Wardrobe:  testWardrobe,
		Weather:   cold(),
		Prompt:    "date night",
	})

	require.Equal(t, []string{"img/dress", "img/jacket"}, ids(out))
	require.Empty(t, out.WeatherWarning)
}

func TestEnforceColdWithoutLayeringDropsLightItems(t *testing.T) {
	out := newTestEngine().Enforce(EnforceInput{
		Candidate: Outfit{SelectedItems: picks("img/dress", "img/blouse", "img/jeans")},
		Wardrobe:  testWardrobe,
		Weather:   cold(),
		Prompt:    "office",
	})

	require.Equal(t, []string{"img/jeans"}, ids(out))
	require.Empty(t, out.WeatherWarning)
}

func TestEnforceColdKeepsLightItemsWhenUserWantsCool(t *testing.T) {
	out := newTestEngine().Enforce(EnforceInput{
		Candidate: Outfit{SelectedItems: picks("img/dress", "img/sandals")},
		Wardrobe:  testWardrobe,
		Weather:   cold(),
		Prompt:    "summer vibes please",
	})

	require.Equal(t, []string{"img/dress", "img/sandals"}, ids(out))
	require.Equal(t, "It's cold, but you asked for summer gear (Red Mini Dress, Strappy Sandals).", out.WeatherWarning)
}

func TestEnforceNoWeatherPassThrough(t *testing.T) {
	candidate := Outfit{
		SelectedItems:  picks("img/coat", "img/dress", "img/coat", "img/sandals"),
		OverallReason:  "cohesive",
		WeatherSummary: "",
		WeatherWarning: "oracle warning",
	}

	out := newTestEngine().Enforce(EnforceInput{Candidate: candidate, Wardrobe: testWardrobe, Prompt: "keep me warm"})

	require.Equal(t, []string{"img/coat", "img/dress", "img/sandals"}, ids(out))
	require.Equal(t, "oracle warning", out.WeatherWarning)
	require.Equal(t, "cohesive", out.OverallReason)
}

func TestEnforceMildWeatherKeepsOracleWarning(t *testing.T) {
	out := newTestEngine().Enforce(EnforceInput{
		Candidate: Outfit{SelectedItems: picks("img/coat", "img/dress"), WeatherWarning: "bring an umbrella"},
		Wardrobe:  testWardrobe,
		Weather:   &WeatherContext{FeelsLikeC: 18, IsRainy: true},
	})

	require.Equal(t, []string{"img/coat", "img/dress"}, ids(out))
	require.Equal(t, "bring an umbrella", out.WeatherWarning)
}

func TestEnforceBothWarningsJoined(t *testing.T) {
	out := newTestEngine().Enforce(EnforceInput{
		Candidate: Outfit{SelectedItems: picks("img/coat", "img/dress")},
		Wardrobe:  testWardrobe,
		Weather:   &WeatherContext{IsHot: true, IsCold: true},
		Prompt:    "warm beach",
	})

	require.Equal(t, []string{"img/coat", "img/dress"}, ids(out))
	// the coat counts as a heavy layer, so the dress is not penalised
	require.Equal(t, "It's hot, but you asked for winter gear (Camel Coat).", out.WeatherWarning)
}

func TestEnforceUnknownItemsAreNeutral(t *testing.T) {
	out := newTestEngine().Enforce(EnforceInput{
		Candidate: Outfit{SelectedItems: picks("img/unknown", "img/dress")},
		Wardrobe:  testWardrobe,
		Weather:   cold(),
	})

	require.Equal(t, []string{"img/unknown"}, ids(out))
}

func TestEnforceMandatedCenterpieceSurvivesWeather(t *testing.T) {
	cases := []struct {
		name        string
		weather     *WeatherContext
		prompt      string
		centerpiece string
		want        []string
		warning     string
	}{
		{name: "hot without warm intent", weather: hot(), prompt: "brunch", centerpiece: "img/coat", want: []string{"img/coat", "img/tee"}},
		{name: "cold without cool intent", weather: cold(), prompt: "brunch", centerpiece: "img/dress", want: []string{"img/dress", "img/tee"}},
		{name: "hot with warm intent", weather: hot(), prompt: "keep me warm", centerpiece: "img/coat", want: []string{"img/coat", "img/tee"}, warning: "It's hot, but you asked for winter gear (Camel Coat)."},
		{name: "cold with cool intent", weather: cold(), prompt: "beach", centerpiece: "img/dress", want: []string{"img/dress", "img/tee"}, warning: "It's cold, but you asked for summer gear (Red Mini Dress)."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := newTestEngine().Enforce(EnforceInput{
				Candidate:   Outfit{SelectedItems: picks("img/tee"), WeatherWarning: "oracle text"},
				Wardrobe:    testWardrobe,
				Weather:     tc.weather,
				Prompt:      tc.prompt,
				Centerpiece: tc.centerpiece,
			})

			require.Equal(t, tc.want, ids(out))
			require.Equal(t, tc.warning, out.WeatherWarning)
		})
	}
}

func TestEnforceEmptyInputs(t *testing.T) {
	out := newTestEngine().Enforce(EnforceInput{Weather: hot()})
	require.NotNil(t, out.SelectedItems)
	require.Empty(t, out.SelectedItems)
	require.Empty(t, out.WeatherWarning)
}

func TestEnforceDoesNotMutateCallerSlices(t *testing.T) {
	selections := picks("img/coat", "img/tee", "img/coat")
	snapshot := append([]Selection(nil), selections...)

	newTestEngine().Enforce(EnforceInput{
		Candidate:   Outfit{SelectedItems: selections},
		Wardrobe:    testWardrobe,
		Weather:     hot(),
		Centerpiece: "img/jeans",
	})

	require.Equal(t, snapshot, selections)
}

func TestEnforceUsesCustomRules(t *testing.T) {
	rules := DefaultRules()
	rules.HeavyCategories = []string{"blazer"}
	rules.HeavyMaterials = []string{"tweed"}
	rules.HotWarning = "Too warm for %s."
	engine := NewEngine(rules)
	wardrobe := []WardrobeItem{
		{ImageURL: "a", Name: "Blazer", Category: "Blazer"},
		{ImageURL: "b", Name: "Coat", Category: "coat"},
	}

	out := engine.Enforce(EnforceInput{
		Candidate: Outfit{SelectedItems: picks("a", "b")},
		Wardrobe:  wardrobe,
		Weather:   hot(),
		Prompt:    "warm please",
	})

	require.Equal(t, []string{"a", "b"}, ids(out))
	require.Equal(t, "Too warm for Blazer.", out.WeatherWarning)
}
