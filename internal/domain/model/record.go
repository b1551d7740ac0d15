// Package model contains domain models passed between layers.
package model

// Record is one row of the merged disaster table.
// Fields mirror the columns of the source CSV.
type Record struct {
	Year      int      // calendar year of the row
	State     string   // state name, join key against boundary "name"
	Deaths    int64    // Total Deaths
	Damage    float64  // Total Damage ('000 US$)
	Disasters int64    // Total Disasters
	Injured   int64    // No. Injured
	Risk      RiskTier // set only on prediction-year rows
}

// Selection is the per-render user choice threaded through filter,
// aggregate and map stages. An empty State means all states; a Risk that
// does not narrow (the zero value or RiskAll) means all tiers.
type Selection struct {
	Year  int
	State string
	Risk  RiskTier
}

// HasState reports whether the selection narrows to a single state.
func (s Selection) HasState() bool {
	return s.State != ""
}
