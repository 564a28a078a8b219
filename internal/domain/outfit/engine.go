package outfit

import (
	"fmt"
	"strings"
)

const unnamedItem = "item"

// Engine validates, repairs, and annotates oracle proposals. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	rules Rules
	vocab vocabulary
}

// NewEngine compiles rules into an Engine.
func NewEngine(rules Rules) *Engine {
	return &Engine{rules: rules, vocab: compile(rules)}
}

// Rules returns the configuration the engine was built with.
func (e *Engine) Rules() Rules {
	return e.rules
}

// ClassifyWeather turns a raw observation into cold/hot/rainy flags.
func (e *Engine) ClassifyWeather(obs Observation) WeatherContext {
	return classifyWeather(obs, e.rules, e.vocab)
}

// DetectIntent scans the prompt for warmth and coolness keywords.
func (e *Engine) DetectIntent(prompt string) Intent {
	return detectIntent(prompt, e.vocab)
}

// ClassifyItem returns the item's thermal class. Heavy wins when both tables match.
func (e *Engine) ClassifyItem(item WardrobeItem) ThermalClass {
	return profileFor(item, e.vocab).class()
}

// Enforce produces the corrected outfit. It never fails: unknown identifiers
// classify as neutral, a missing centerpiece is inserted, and absent weather
// skips thermal filtering entirely.
func (e *Engine) Enforce(in EnforceInput) Outfit {
	out := in.Candidate
	centerpiece := strings.TrimSpace(in.Centerpiece)
	reason := e.rules.CenterpieceReason
	if custom := strings.TrimSpace(in.CenterpieceReason); custom != "" {
		reason = custom
	}
	out.SelectedItems = ensureCenterpiece(dedupe(in.Candidate.SelectedItems), centerpiece, reason)

	if in.Weather == nil || !(in.Weather.IsHot || in.Weather.IsCold) {
		return out
	}

	picks := e.classifyAll(out.SelectedItems, NewIndex(in.Wardrobe))
	res := applyWeather(picks, *in.Weather, e.DetectIntent(in.Prompt), hasHeavyOuter(picks), centerpiece)
	out.SelectedItems = res.kept
	out.WeatherWarning = e.warning(res)
	return out
}

// dedupe keeps the first occurrence of each identifier in oracle order and
// drops entries without one.
func dedupe(selections []Selection) []Selection {
	seen := make(map[string]struct{}, len(selections))
	out := make([]Selection, 0, len(selections))
	for _, sel := range selections {
		if strings.TrimSpace(sel.ImageURL) == "" {
			continue
		}
		if _, ok := seen[sel.ImageURL]; ok {
			continue
		}
		seen[sel.ImageURL] = struct{}{}
		out = append(out, sel)
	}
	return out
}

func ensureCenterpiece(selections []Selection, centerpiece, reason string) []Selection {
	if centerpiece == "" {
		return selections
	}
	for _, sel := range selections {
		if sel.ImageURL == centerpiece {
			return selections
		}
	}
	out := make([]Selection, 0, len(selections)+1)
	out = append(out, Selection{ImageURL: centerpiece, Reason: reason})
	return append(out, selections...)
}

type classifiedPick struct {
	selection Selection
	name      string
	profile   thermalProfile
}

func (e *Engine) classifyAll(selections []Selection, index Index) []classifiedPick {
	picks := make([]classifiedPick, 0, len(selections))
	for _, sel := range selections {
		item, _ := index.Lookup(sel.ImageURL)
		name := strings.TrimSpace(item.Name)
		if name == "" {
			name = unnamedItem
		}
		picks = append(picks, classifiedPick{
			selection: sel,
			name:      name,
			profile:   profileFor(item, e.vocab),
		})
	}
	return picks
}

// hasHeavyOuter must see the full selection before any removal: light items
// are only weather safe when a heavy layer exists somewhere in the outfit.
func hasHeavyOuter(picks []classifiedPick) bool {
	for _, p := range picks {
		if p.profile.heavy {
			return true
		}
	}
	return false
}

type weatherResult struct {
	kept       []Selection
	hotWarned  []string
	coldWarned []string
}

func applyWeather(picks []classifiedPick, weather WeatherContext, intent Intent, heavyOuter bool, centerpiece string) weatherResult {
	res := weatherResult{kept: make([]Selection, 0, len(picks))}
	for _, p := range picks {
		mandated := centerpiece != "" && p.selection.ImageURL == centerpiece
		switch {
		case weather.IsHot && p.profile.heavy:
			if !intent.WantsWarm && !mandated {
				continue
			}
			if intent.WantsWarm {
				res.hotWarned = append(res.hotWarned, p.name)
			}
		case weather.IsCold && p.profile.light:
			if !intent.WantsCool && !heavyOuter && !mandated {
				continue
			}
			if intent.WantsCool && !heavyOuter {
				res.coldWarned = append(res.coldWarned, p.name)
			}
		}
		res.kept = append(res.kept, p.selection)
	}
	return res
}

func (e *Engine) warning(res weatherResult) string {
	sentences := make([]string, 0, 2)
	if len(res.hotWarned) > 0 {
		sentences = append(sentences, fmt.Sprintf(e.rules.HotWarning, strings.Join(res.hotWarned, ", ")))
	}
	if len(res.coldWarned) > 0 {
		sentences = append(sentences, fmt.Sprintf(e.rules.ColdWarning, strings.Join(res.coldWarned, ", ")))
	}
	return strings.TrimSpace(strings.Join(sentences, " "))
}
