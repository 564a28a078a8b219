package stylist

import "slices"

func stringProp() map[string]any {
	return map[string]any{"type": "string"}
}

func stringArrayProp() map[string]any {
	return map[string]any{"type": "array", "items": stringProp()}
}

// Strict schemas require every property to be listed as required.
func strictObject(props map[string]any) map[string]any {
	required := make([]string, 0, len(props))
	for name := range props {
		required = append(required, name)
	}
	slices.Sort(required)
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

var attributeSchema = strictObject(map[string]any{
	"name":        stringProp(),
	"category":    stringProp(),
	"color":       stringProp(),
	"material":    stringProp(),
	"texture":     stringProp(),
	"pattern":     stringProp(),
	"formality":   stringProp(),
	"season_tags": stringArrayProp(),
	"style_tags":  stringArrayProp(),
	"notes":       stringProp(),
})

var outfitSchema = strictObject(map[string]any{
	"selected_items": map[string]any{
		"type": "array",
		"items": strictObject(map[string]any{
			"image_url": stringProp(),
			"reason":    stringProp(),
		}),
	},
	"overall_reason":  stringProp(),
	"weather_summary": stringProp(),
	"weather_warning": stringProp(),
})
