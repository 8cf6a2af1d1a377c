package generator

var catalog = []Topic{
	{ID: "hometown", Label: "My Hometown", Icon: "map-pin"},
	{ID: "forests", Label: "Local Forests", Icon: "tree-pine"},
	{ID: "water", Label: "Water Resources", Icon: "droplets"},
	{ID: "agriculture", Label: "Agriculture", Icon: "sun"},
	{ID: "weather", Label: "Weather Patterns", Icon: "wind"},
	{ID: "wildlife", Label: "Local Wildlife", Icon: "bird"},
	{ID: "coffee", Label: "Coffee Production", Icon: "coffee"},
}

// Topics returns a copy of the fixed topic catalog in display order.
func Topics() []Topic {
	out := make([]Topic, len(catalog))
	copy(out, catalog)
	return out
}

// LookupTopic finds a catalog topic by id.
func LookupTopic(id string) (Topic, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// Normalize drops unknown and repeated topic ids, keeping first-seen order.
func Normalize(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		if _, ok := LookupTopic(id); !ok {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
