package outfit

// Index maps an image reference to its wardrobe attributes.
type Index map[string]WardrobeItem

// NewIndex builds a lookup from a wardrobe snapshot. The first item wins when
// identifiers collide.
func NewIndex(items []WardrobeItem) Index {
	index := make(Index, len(items))
	for _, item := range items {
		if item.ImageURL == "" {
			continue
		}
		if _, ok := index[item.ImageURL]; ok {
			continue
		}
		index[item.ImageURL] = item
	}
	return index
}

// Lookup returns the item for id.
func (i Index) Lookup(id string) (WardrobeItem, bool) {
	item, ok := i[id]
	return item, ok
}

// Enrich joins kept selections with display metadata. Selections whose
// identifier is unknown are returned without metadata.
func Enrich(o Outfit, index Index) []EnrichedSelection {
	out := make([]EnrichedSelection, 0, len(o.SelectedItems))
	for _, sel := range o.SelectedItems {
		enriched := EnrichedSelection{ImageURL: sel.ImageURL, Reason: sel.Reason}
		if item, ok := index.Lookup(sel.ImageURL); ok {
			enriched.Name = item.Name
			enriched.Category = item.Category
			enriched.Color = item.Color
			enriched.Material = item.Material
			enriched.Texture = item.Texture
			enriched.Pattern = item.Pattern
		}
		out = append(out, enriched)
	}
	return out
}
