package probe

import (
	"fmt"
	"slices"

	"github.com/okian/disasterdash/internal/adapters/geo"
	service "github.com/okian/disasterdash/internal/app"
	"github.com/okian/disasterdash/internal/domain/aggregate"
	"github.com/okian/disasterdash/internal/domain/choropleth"
	"github.com/okian/disasterdash/internal/domain/filter"
	"github.com/okian/disasterdash/internal/domain/model"
	"github.com/paulmach/orb/geojson"
)

// verifyYears compares the server's year list with the data's.
func verifyYears(want, got []int) []Mismatch {
	if slices.Equal(want, got) {
		return nil
	}
	return []Mismatch{{Field: "years", Want: fmt.Sprint(want), Got: fmt.Sprint(got)}}
}

// verifyView recomputes check from rows and compares it with the response.
func verifyView(check Check, predictionYear int, rows []model.Record, resp *viewResponse) ([]Mismatch, error) {
	sel := model.Selection{Year: check.Year, Risk: model.RiskAll}
	if check.Risk != "" {
		risk, err := model.ParseRiskTier(check.Risk)
		if err != nil {
			return nil, err
		}
		sel.Risk = risk
	}

	var out []Mismatch
	diff := func(field, want, got string) {
		if want != got {
			out = append(out, Mismatch{Check: check, Field: field, Want: want, Got: got})
		}
	}

	diff("heading", service.Heading(check.Year, check.Year == predictionYear), resp.Heading)
	diff("subheading", service.Subheading(""), resp.Subheading)

	want := aggregate.Summary(filter.Apply(rows, sel), aggregate.Sum)
	if len(want) != len(resp.Metrics) {
		diff("metrics", fmt.Sprintf("%d metrics", len(want)), fmt.Sprintf("%d metrics", len(resp.Metrics)))
	} else {
		for i, m := range want {
			diff("metric title", m.Title, resp.Metrics[i].Title)
			diff(m.Title, m.Display, resp.Metrics[i].Display)
		}
	}

	fc, err := geojson.UnmarshalFeatureCollection(resp.Map)
	if err != nil {
		return nil, fmt.Errorf("decode map: %w", err)
	}
	idx := choropleth.Index(filter.ByRiskTier(filter.ByYear(rows, sel.Year), sel.Risk))
	for _, f := range fc.Features {
		name, ok := geo.Name(f)
		if !ok {
			diff("feature name", "string", fmt.Sprintf("%T", f.Properties[geo.NameProperty]))
			continue
		}
		tip := ""
		if r, ok := idx[name]; ok {
			tip = choropleth.TooltipFor(r).Deaths
		}
		diff(name, tip, f.Properties.MustString(choropleth.PropDeaths, ""))
	}
	return out, nil
}
