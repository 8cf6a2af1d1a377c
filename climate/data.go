// Package climate holds the fixed sample data shown next to the stories.
// None of it is fetched; the figures are illustrative.
package climate

import "sort"

// Point is one sample of a series.
type Point struct {
	Year      string  `json:"year"`
	Value     float64 `json:"value"`
	Projected bool    `json:"projected,omitempty"`
}

// Series is a named time series.
type Series struct {
	Name   string  `json:"name"`
	Title  string  `json:"title"`
	Unit   string  `json:"unit"`
	Points []Point `json:"points"`
}

// Metric is one headline figure.
type Metric struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Icon   string `json:"icon"`
}

var series = map[string]Series{
	"temperature": {
		Name: "temperature", Title: "Global Average Temperature", Unit: "°C",
		Points: []Point{
			{"1900", 13.7, false},
			{"1920", 13.8, false},
			{"1940", 14.0, false},
			{"1960", 14.0, false},
			{"1980", 14.2, false},
			{"2000", 14.5, false},
			{"2020", 15.0, false},
			{"2040", 15.8, true},
			{"2060", 16.5, true},
		},
	},
	"co2": {
		Name: "co2", Title: "CO₂ Concentration", Unit: "ppm",
		Points: []Point{
			{"1960", 315, false},
			{"1980", 340, false},
			{"2000", 370, false},
			{"2010", 390, false},
			{"2020", 415, false},
			{"2030", 450, true},
			{"2040", 490, true},
		},
	},
	"sea-level": {
		Name: "sea-level", Title: "Sea Level Rise", Unit: "mm",
		Points: []Point{
			{"1900", 0, false},
			{"1950", 50, false},
			{"2000", 100, false},
			{"2020", 150, false},
			{"2040", 250, true},
			{"2060", 400, true},
			{"2100", 700, true},
		},
	},
}

var headline = []Metric{
	{Label: "Global Avg. Temp", Value: "+1.2°C", Change: "since pre-industrial", Icon: "thermometer"},
	{Label: "CO₂ Concentration", Value: "421 ppm", Change: "+50% since 1750", Icon: "activity"},
	{Label: "Sea Level Rise", Value: "~20cm", Change: "since 1900", Icon: "droplets"},
	{Label: "Extreme Events", Value: "5x", Change: "more frequent", Icon: "wind"},
}

// SeriesNames lists the available series, sorted.
func SeriesNames() []string {
	names := make([]string, 0, len(series))
	for n := range series {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a copy of the named series.
func Lookup(name string) (Series, bool) {
	s, ok := series[name]
	if !ok {
		return Series{}, false
	}
	s.Points = append([]Point(nil), s.Points...)
	return s, true
}

// Observed splits s into the measured points only.
func (s Series) Observed() []Point {
	var out []Point
	for _, p := range s.Points {
		if !p.Projected {
			out = append(out, p)
		}
	}
	return out
}

// Headline returns the headline metrics in display order.
func Headline() []Metric {
	return append([]Metric(nil), headline...)
}
