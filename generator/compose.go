package generator

import (
	"strings"
)

// ecosystem paragraphs, emitted in this fixed order when selected.
var ecosystemSlots = []struct {
	topic string
	text  string
}{
	{"wildlife", "Many bird species have shifted their migration patterns. The songbirds that used to arrive in April now come in late February, sometimes finding their food sources not yet available."},
	{"forests", "The forests surrounding your area have changed composition. Heat-loving species are moving northward at about 11 miles per decade, while some native species struggle to adapt."},
	{"agriculture", "Local farmers have had to completely reimagine their crop choices. Traditional crops have given way to more drought-resistant varieties, and growing seasons have extended by nearly a month."},
	{"coffee", "Coffee-growing regions worldwide have shifted. The beans that once thrived at certain altitudes now require higher ground, and your morning cup costs considerably more—a reminder of global interconnection."},
}

// Compose fills the climate story template for req. It never fails;
// callers that need validation use Agent.
func Compose(req Request) string {
	loc := req.Location
	selected := make(map[string]bool, len(req.Topics))
	for _, id := range req.Topics {
		selected[id] = true
	}

	var sb strings.Builder
	line := func(s ...string) {
		for _, part := range s {
			sb.WriteString(part)
		}
		sb.WriteByte('\n')
	}

	line("# Your Climate Story: ", loc)
	line()
	line("## The Year is 2045")
	line()
	line("As you walk through the streets of ", loc, ", the world around you has transformed in ways both subtle and profound. The ", strings.ToLower(labelList(req.Topics)), " you once knew have adapted to a new reality.")
	line()
	line("### Temperature Changes")
	line()
	line("Over the past 20 years, average temperatures in your region have risen by **2.3°C**. What once were occasional heat waves have become summer's new normal. The elderly and children have had to adjust their daily routines, with outdoor activities shifting to cooler morning and evening hours.")
	line()
	line("### Water & Rainfall")
	line()
	line("The rainfall patterns have shifted dramatically. While annual precipitation has decreased by **15%**, when it does rain, it pours—intense storms that the old drainage systems struggle to handle. Local water management has become a community priority.")
	line()
	line("### Local Ecosystem")
	line()
	for _, slot := range ecosystemSlots {
		if selected[slot.topic] {
			line(slot.text)
		} else {
			line()
		}
		line()
	}
	line("### What You Can Do")
	line()
	line("This story isn't set in stone. Every action matters:")
	line("- **Reduce** your carbon footprint through daily choices")
	line("- **Advocate** for sustainable policies in your community")
	line("- **Connect** with local environmental groups")
	line("- **Share** this story to spread awareness")
	line()
	line("*The future is being written now. You are both the author and the protagonist.*")
	line()
	line("---")
	sb.WriteString("*Generated using climate projections from NASA, NOAA, and IPCC data for the " + loc + " region.*")
	return sb.String()
}

// labelList joins catalog labels for the recognized ids in request order.
func labelList(ids []string) string {
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		if t, ok := LookupTopic(id); ok {
			labels = append(labels, t.Label)
		}
	}
	return strings.Join(labels, ", ")
}
