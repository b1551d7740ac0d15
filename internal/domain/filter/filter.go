// Package filter narrows disaster rows by year, state and risk tier.
// Every function is pure: inputs are never modified and results are new slices.
package filter

import "github.com/okian/disasterdash/internal/domain/model"

// ByYear keeps rows whose year equals year.
func ByYear(rows []model.Record, year int) []model.Record {
	return keep(rows, func(r model.Record) bool { return r.Year == year })
}

// ByState keeps rows for a single state. An empty state is a no-op.
func ByState(rows []model.Record, state string) []model.Record {
	if state == "" {
		return rows
	}
	return keep(rows, func(r model.Record) bool { return r.State == state })
}

// ByRiskTier keeps rows carrying exactly the given tier. RiskAll and
// RiskUnset are no-ops. Historical rows have RiskUnset and never match a
// concrete tier.
func ByRiskTier(rows []model.Record, tier model.RiskTier) []model.Record {
	if !tier.Narrows() {
		return rows
	}
	return keep(rows, func(r model.Record) bool { return r.Risk == tier })
}

// Apply runs the full selection: year, then risk tier, then state.
func Apply(rows []model.Record, sel model.Selection) []model.Record {
	return ByState(ByRiskTier(ByYear(rows, sel.Year), sel.Risk), sel.State)
}

func keep(rows []model.Record, match func(model.Record) bool) []model.Record {
	out := make([]model.Record, 0, len(rows))
	for _, r := range rows {
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}
