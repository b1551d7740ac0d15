package choropleth

import "math"

// Reds is the six-class ColorBrewer "Reds" ramp, light to dark.
var Reds = []string{"#fee5d9", "#fcbba1", "#fc9272", "#fb6a4a", "#de2d26", "#a50f15"}

// Scale maps a value to a fill colour using equal-width bins over [Min, Max].
type Scale struct {
	Min    float64
	Max    float64
	Colors []string
}

// Bin is one legend entry.
type Bin struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Color string  `json:"color"`
}

// NewScale builds a scale spanning values. Zero values yield a flat scale.
func NewScale(values []float64, colors []string) Scale {
	s := Scale{Colors: colors}
	if len(values) == 0 {
		return s
	}
	s.Min, s.Max = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	return s
}

// Color returns the fill for v. Values outside the range clamp to the ends.
func (s Scale) Color(v float64) string {
	n := len(s.Colors)
	if n == 0 {
		return ""
	}
	if s.Max <= s.Min || v <= s.Min {
		return s.Colors[0]
	}
	i := int((v - s.Min) / (s.Max - s.Min) * float64(n))
	if i >= n {
		i = n - 1
	}
	return s.Colors[i]
}

// Legend returns the bin thresholds in ascending order. A flat scale has a
// single bin, matching Color.
func (s Scale) Legend() []Bin {
	n := len(s.Colors)
	if n == 0 {
		return nil
	}
	if s.Max <= s.Min {
		return []Bin{{From: s.Min, To: s.Max, Color: s.Colors[0]}}
	}
	width := (s.Max - s.Min) / float64(n)
	bins := make([]Bin, n)
	for i, c := range s.Colors {
		bins[i] = Bin{
			From:  s.Min + width*float64(i),
			To:    s.Min + width*float64(i+1),
			Color: c,
		}
	}
	bins[n-1].To = s.Max
	return bins
}
