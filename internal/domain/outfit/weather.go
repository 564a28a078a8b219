package outfit

import "strings"

func classifyWeather(obs Observation, rules Rules, vocab vocabulary) WeatherContext {
	tokens := obs.Conditions
	if len(tokens) == 0 {
		tokens = strings.Fields(obs.Condition)
	}
	rainy := false
	for _, token := range tokens {
		if strings.Contains(strings.ToLower(token), vocab.rainToken) {
			rainy = true
			break
		}
	}
	return WeatherContext{
		TempC:        obs.TempC,
		FeelsLikeC:   obs.FeelsLikeC,
		Condition:    obs.Condition,
		Humidity:     obs.Humidity,
		WindSpeedMPS: obs.WindSpeedMPS,
		IsCold:       obs.FeelsLikeC < rules.ColdBelowC,
		IsHot:        obs.FeelsLikeC > rules.HotAboveC,
		IsRainy:      rainy,
	}
}
