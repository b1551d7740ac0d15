// Package choropleth joins per-state rows onto boundary polygons and
// annotates each polygon with fill and tooltip text.
package choropleth

import (
	"encoding/json"

	"github.com/okian/disasterdash/internal/adapters/geo"
	"github.com/okian/disasterdash/internal/domain/aggregate"
	"github.com/okian/disasterdash/internal/domain/model"
	"github.com/paulmach/orb/geojson"
)

// Feature property keys written by Render.
const (
	PropValue     = "value"
	PropFill      = "fill"
	PropDeaths    = "Total Deaths"
	PropDamage    = "Total Damage ('000 US$)"
	PropDisasters = "Total Disasters"
	PropInjured   = "No. Injured"
)

// TooltipFields lists the properties shown on hover, in order.
var TooltipFields = []string{geo.NameProperty, PropDeaths, PropDamage, PropDisasters, PropInjured}

// Display constants for the rendered layer.
const (
	FillOpacity = 0.7
	LineOpacity = 0.8
)

// Map is an annotated choropleth ready for display.
type Map struct {
	Features *geojson.FeatureCollection
	Legend   []Bin
	Matched  int
	Missed   int
}

// MarshalJSON encodes the map as its feature collection plus a legend member.
func (m *Map) MarshalJSON() ([]byte, error) {
	fc := *m.Features
	fc.ExtraMembers = geojson.Properties{
		"legend":  m.Legend,
		"matched": m.Matched,
		"missed":  m.Missed,
	}
	return json.Marshal(&fc)
}

// Tooltip holds the four formatted strings for one polygon.
// All are empty when the polygon has no data.
type Tooltip struct {
	Deaths    string
	Damage    string
	Disasters string
	Injured   string
}

// TooltipFor formats r for display.
func TooltipFor(r model.Record) Tooltip {
	return Tooltip{
		Deaths:    PropDeaths + ": " + aggregate.Format(float64(r.Deaths), aggregate.Grouped),
		Damage:    PropDamage + ": " + aggregate.Format(r.Damage, aggregate.Plain),
		Disasters: PropDisasters + ": " + aggregate.Format(float64(r.Disasters), aggregate.Plain),
		Injured:   PropInjured + ": " + aggregate.Format(float64(r.Injured), aggregate.Plain),
	}
}

// Index maps state name to row. A later row for the same state replaces an
// earlier one.
func Index(rows []model.Record) map[string]model.Record {
	idx := make(map[string]model.Record, len(rows))
	for _, r := range rows {
		idx[r.State] = r
	}
	return idx
}

// Duplicates returns state names that occur more than once in rows, in first
// repeat order.
func Duplicates(rows []model.Record) []string {
	seen := make(map[string]int, len(rows))
	var out []string
	for _, r := range rows {
		seen[r.State]++
		if seen[r.State] == 2 {
			out = append(out, r.State)
		}
	}
	return out
}

// Render annotates a copy of boundaries with rows. rows should already be
// narrowed to one year. Every polygon is annotated exactly once.
func Render(boundaries *geo.Boundaries, rows []model.Record) *Map {
	idx := Index(rows)
	fc := boundaries.Clone()

	var values []float64
	for _, f := range fc.Features {
		name, _ := geo.Name(f)
		if r, ok := idx[name]; ok {
			values = append(values, float64(r.Deaths))
		}
	}
	scale := NewScale(values, Reds)

	m := &Map{Features: fc, Legend: scale.Legend()}
	for _, f := range fc.Features {
		name, _ := geo.Name(f)
		r, ok := idx[name]
		var tip Tooltip
		value := 0.0
		if ok {
			tip = TooltipFor(r)
			value = float64(r.Deaths)
			m.Matched++
		} else {
			m.Missed++
		}
		f.Properties[PropValue] = value
		f.Properties[PropFill] = scale.Color(value)
		f.Properties[PropDeaths] = tip.Deaths
		f.Properties[PropDamage] = tip.Damage
		f.Properties[PropDisasters] = tip.Disasters
		f.Properties[PropInjured] = tip.Injured
	}
	return m
}

// Selected returns clicked when it names a known polygon, else "".
func Selected(boundaries *geo.Boundaries, clicked string) string {
	if clicked == "" || !boundaries.Has(clicked) {
		return ""
	}
	return clicked
}
