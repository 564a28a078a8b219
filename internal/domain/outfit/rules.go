package outfit

import (
	"errors"
	"fmt"
	"strings"
)

// Rules holds every threshold and vocabulary the engine consults.
type Rules struct {
	ColdBelowC        float64
	HotAboveC         float64
	RainToken         string
	HeavyCategories   []string
	HeavyMaterials    []string
	LightCategories   []string
	LightMaterials    []string
	WarmKeywords      []string
	CoolKeywords      []string
	CenterpieceReason string
	// HotWarning and ColdWarning are fmt templates receiving the comma joined item names.
	HotWarning  string
	ColdWarning string
}

// DefaultRules returns the production vocabulary.
func DefaultRules() Rules {
	return Rules{
		ColdBelowC: 10,
		HotAboveC:  28,
		RainToken:  "rain",
		HeavyCategories: []string{
			"coat", "jacket", "sweater", "hoodie", "parka", "puffer", "overcoat", "fur coat",
		},
		HeavyMaterials: []string{"wool", "fur", "shearling", "down", "thick"},
		LightCategories: []string{
			"tank top", "camisole", "cami", "crop top", "shorts",
			"mini skirt", "mini dress", "slip dress", "dress",
			"sandals", "flip flops", "slides",
		},
		LightMaterials:    []string{"linen", "chiffon", "mesh", "lace", "thin", "silk", "satin"},
		WarmKeywords:      []string{"keep me warm", "winter", "coat", "jacket", "sweater", "fur", "warm"},
		CoolKeywords:      []string{"summer", "beach", "light", "hot", "swim", "bikini", "shorts"},
		CenterpieceReason: "The centerpiece item you selected.",
		HotWarning:        "It's hot, but you asked for winter gear (%s).",
		ColdWarning:       "It's cold, but you asked for summer gear (%s).",
	}
}

// Validate rejects rule sets that would make enforcement meaningless.
func (r Rules) Validate() error {
	if r.HotAboveC <= r.ColdBelowC {
		return fmt.Errorf("hot threshold %.1f must be above cold threshold %.1f", r.HotAboveC, r.ColdBelowC)
	}
	if strings.TrimSpace(r.RainToken) == "" {
		return errors.New("rain token cannot be empty")
	}
	if len(r.HeavyCategories) == 0 && len(r.HeavyMaterials) == 0 {
		return errors.New("heavy vocabulary cannot be empty")
	}
	if len(r.LightCategories) == 0 && len(r.LightMaterials) == 0 {
		return errors.New("light vocabulary cannot be empty")
	}
	if strings.TrimSpace(r.CenterpieceReason) == "" {
		return errors.New("centerpiece reason cannot be empty")
	}
	if strings.Count(r.HotWarning, "%s") != 1 || strings.Count(r.ColdWarning, "%s") != 1 {
		return errors.New("warning templates must contain exactly one %s placeholder")
	}
	return nil
}

// vocabulary is the compiled, lower-cased form of Rules.
type vocabulary struct {
	heavyCategories map[string]struct{}
	lightCategories map[string]struct{}
	heavyMaterials  []string
	lightMaterials  []string
	warmKeywords    []string
	coolKeywords    []string
	rainToken       string
}

func compile(r Rules) vocabulary {
	return vocabulary{
		heavyCategories: toSet(r.HeavyCategories),
		lightCategories: toSet(r.LightCategories),
		heavyMaterials:  lowerAll(r.HeavyMaterials),
		lightMaterials:  lowerAll(r.LightMaterials),
		warmKeywords:    lowerAll(r.WarmKeywords),
		coolKeywords:    lowerAll(r.CoolKeywords),
		rainToken:       strings.ToLower(strings.TrimSpace(r.RainToken)),
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range lowerAll(values) {
		set[v] = struct{}{}
	}
	return set
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		clean := strings.ToLower(strings.TrimSpace(v))
		if clean == "" {
			continue
		}
		out = append(out, clean)
	}
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
