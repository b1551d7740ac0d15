// Package aggregate computes and formats summary statistics over filtered rows.
package aggregate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/disasterdash/internal/domain/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrUnknownMode is returned by ParseMode for unsupported modes.
var ErrUnknownMode = errors.New("unknown aggregation mode")

// Field selects a numeric column of a record.
type Field int

const (
	Deaths Field = iota
	Damage
	Disasters
	Injured
)

// Fields lists every numeric column in display order.
var Fields = []Field{Deaths, Damage, Disasters, Injured}

// Label returns the column title used in the source data and on screen.
func (f Field) Label() string {
	switch f {
	case Deaths:
		return "Total Deaths"
	case Damage:
		return "Total Damage ('000 US$)"
	case Disasters:
		return "Total Disasters"
	case Injured:
		return "No. Injured"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Value extracts the field from r.
func (f Field) Value(r model.Record) float64 {
	switch f {
	case Deaths:
		return float64(r.Deaths)
	case Damage:
		return r.Damage
	case Disasters:
		return float64(r.Disasters)
	case Injured:
		return float64(r.Injured)
	default:
		return 0
	}
}

// Mode is the reduction applied over a subset.
type Mode int

const (
	Sum Mode = iota
	Mean
)

func (m Mode) String() string {
	if m == Mean {
		return "mean"
	}
	return "sum"
}

// ParseMode accepts "sum" or "mean"; empty input means sum.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sum":
		return Sum, nil
	case "mean":
		return Mean, nil
	default:
		return Sum, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// NumberFormat controls how a rounded metric is rendered.
type NumberFormat int

const (
	Grouped NumberFormat = iota // 1,234
	Plain                       // 1234
)

// Aggregate reduces field over rows. An empty subset yields 0 in both modes.
func Aggregate(rows []model.Record, field Field, mode Mode) float64 {
	var total float64
	for _, r := range rows {
		total += field.Value(r)
	}
	if mode == Mean {
		if len(rows) == 0 {
			return 0
		}
		return total / float64(len(rows))
	}
	return total
}

var printer = message.NewPrinter(language.English)

// Format rounds v half-to-even and renders it as an integer.
func Format(v float64, format NumberFormat) string {
	n := int64(math.RoundToEven(v))
	if format == Grouped {
		return printer.Sprintf("%d", n)
	}
	return strconv.FormatInt(n, 10)
}

// Metric is one displayed summary value.
type Metric struct {
	Field   Field   `json:"-"`
	Title   string  `json:"title"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// Compute aggregates and formats a single metric.
func Compute(rows []model.Record, field Field, mode Mode, format NumberFormat) Metric {
	v := Aggregate(rows, field, mode)
	return Metric{
		Field:   field,
		Title:   field.Label(),
		Value:   v,
		Display: Format(v, format),
	}
}

// Summary returns the three headline metrics shown under the map.
func Summary(rows []model.Record, mode Mode) []Metric {
	return []Metric{
		Compute(rows, Deaths, mode, Grouped),
		Compute(rows, Damage, mode, Grouped),
		Compute(rows, Disasters, mode, Grouped),
	}
}

// All returns a metric for every field.
func All(rows []model.Record, mode Mode) []Metric {
	out := make([]Metric, 0, len(Fields))
	for _, f := range Fields {
		out = append(out, Compute(rows, f, mode, Grouped))
	}
	return out
}
