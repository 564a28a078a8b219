package outfit

import "strings"

// thermalProfile keeps both flags: an item can match heavy and light tables at
// once (e.g. a wool dress), and the hot and cold rules each test one flag.
type thermalProfile struct {
	heavy bool
	light bool
}

func (p thermalProfile) class() ThermalClass {
	switch {
	case p.heavy:
		return ThermalHeavy
	case p.light:
		return ThermalLight
	default:
		return ThermalNeutral
	}
}

func profileFor(item WardrobeItem, vocab vocabulary) thermalProfile {
	category := strings.ToLower(strings.TrimSpace(item.Category))
	material := strings.ToLower(item.Material)

	_, heavyCat := vocab.heavyCategories[category]
	_, lightCat := vocab.lightCategories[category]
	return thermalProfile{
		heavy: heavyCat || (material != "" && containsAny(material, vocab.heavyMaterials)),
		light: lightCat || (material != "" && containsAny(material, vocab.lightMaterials)),
	}
}

func detectIntent(prompt string, vocab vocabulary) Intent {
	lowered := strings.ToLower(prompt)
	return Intent{
		WantsWarm: containsAny(lowered, vocab.warmKeywords),
		WantsCool: containsAny(lowered, vocab.coolKeywords),
	}
}
