// Package repository holds the immutable in-memory disaster table.
package repository

import (
	"slices"
	"sort"

	"github.com/okian/disasterdash/internal/domain/model"
)

// placeholderState marks rows with no state in merged exports.
const placeholderState = "0"

// Store provides read-only access to the disaster table.
type Store interface {
	// Records returns every row. Callers must not modify the slice.
	Records() []model.Record

	// Years returns the distinct years, ascending.
	Years() []int

	// LatestYear returns the most recent year, false when the table is empty.
	LatestYear() (int, bool)

	// HasYear reports whether any row carries year.
	HasYear(year int) bool

	// Len returns the number of rows.
	Len() int
}

// Table is the in-memory Store. It is built once and never mutated.
type Table struct {
	records []model.Record
	years   []int
}

// NewTable builds a Table from records. The slice is copied.
func NewTable(records []model.Record) *Table {
	t := &Table{records: slices.Clone(records)}
	seen := make(map[int]struct{})
	for _, r := range t.records {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		t.years = append(t.years, r.Year)
	}
	sort.Ints(t.years)
	return t
}

// Records returns every row.
func (t *Table) Records() []model.Record { return t.records }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.records) }

// Years returns the distinct years, ascending.
func (t *Table) Years() []int { return slices.Clone(t.years) }

// LatestYear returns the most recent year in the table.
func (t *Table) LatestYear() (int, bool) {
	if len(t.years) == 0 {
		return 0, false
	}
	return t.years[len(t.years)-1], true
}

// HasYear reports whether year appears in the table.
func (t *Table) HasYear(year int) bool {
	_, ok := slices.BinarySearch(t.years, year)
	return ok
}

// States returns the distinct, sorted state names in rows, dropping empty
// names and the "0" placeholder.
func States(rows []model.Record) []string {
	seen := make(map[string]struct{}, len(rows))
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.State == "" || r.State == placeholderState {
			continue
		}
		if _, ok := seen[r.State]; ok {
			continue
		}
		seen[r.State] = struct{}{}
		out = append(out, r.State)
	}
	sort.Strings(out)
	return out
}
