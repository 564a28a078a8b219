package outfit

// WardrobeItem is the engine's read-only view of a stored garment. Only Category
// and Material drive enforcement; the remaining fields ride along for enrichment.
type WardrobeItem struct {
	ImageURL   string   `json:"imageUrl"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Material   string   `json:"material"`
	Color      string   `json:"color"`
	Texture    string   `json:"texture"`
	Pattern    string   `json:"pattern"`
	Formality  string   `json:"formality"`
	Gender     string   `json:"gender"`
	SeasonTags []string `json:"seasonTags"`
	StyleTags  []string `json:"styleTags"`
}

// Selection is one oracle pick: a wardrobe identifier plus a short justification.
type Selection struct {
	ImageURL string `json:"imageUrl"`
	Reason   string `json:"reason"`
}

// Outfit is the shape shared by the oracle's candidate and the corrected result.
type Outfit struct {
	SelectedItems  []Selection `json:"selectedItems"`
	OverallReason  string      `json:"overallReason"`
	WeatherSummary string      `json:"weatherSummary"`
	WeatherWarning string      `json:"weatherWarning"`
}

// Observation is a raw current-weather reading from a provider.
type Observation struct {
	TempC        float64
	FeelsLikeC   float64
	Condition    string
	Conditions   []string
	Humidity     float64
	WindSpeedMPS float64
}

// WeatherContext is derived once per request from an Observation.
type WeatherContext struct {
	TempC        float64 `json:"tempC"`
	FeelsLikeC   float64 `json:"feelsLikeC"`
	Condition    string  `json:"condition"`
	Humidity     float64 `json:"humidity"`
	WindSpeedMPS float64 `json:"windSpeedMps"`
	IsCold       bool    `json:"isCold"`
	IsHot        bool    `json:"isHot"`
	IsRainy      bool    `json:"isRainy"`
}

// ThermalClass is the per-request heavy/light judgment for an item.
type ThermalClass string

const (
	ThermalNeutral ThermalClass = "neutral"
	ThermalHeavy   ThermalClass = "heavy"
	ThermalLight   ThermalClass = "light"
)

// Intent captures warmth or coolness signals in the user's prompt.
type Intent struct {
	WantsWarm bool
	WantsCool bool
}

// EnforceInput bundles everything one enforcement pass reads.
type EnforceInput struct {
	Candidate   Outfit
	Wardrobe    []WardrobeItem
	Weather     *WeatherContext
	Prompt      string
	Centerpiece string

	// CenterpieceReason overrides Rules.CenterpieceReason when non-empty.
	CenterpieceReason string
}

// EnrichedSelection is a kept selection joined with display metadata.
type EnrichedSelection struct {
	ImageURL string `json:"imageUrl"`
	Reason   string `json:"reason"`
	Name     string `json:"name,omitempty"`
	Category string `json:"category,omitempty"`
	Color    string `json:"color,omitempty"`
	Material string `json:"material,omitempty"`
	Texture  string `json:"texture,omitempty"`
	Pattern  string `json:"pattern,omitempty"`
}
