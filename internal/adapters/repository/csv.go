package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/okian/disasterdash/internal/domain/model"
)

// Column names required in the source file.
const (
	ColYear      = "Year"
	ColState     = "State Name"
	ColDeaths    = "Total Deaths"
	ColDamage    = "Total Damage ('000 US$)"
	ColDisasters = "Total Disasters"
	ColInjured   = "No. Injured"
	ColRisk      = "Risk Level"
)

var requiredColumns = []string{ColYear, ColState, ColDeaths, ColDamage, ColDisasters, ColInjured, ColRisk}

type loader struct {
	comma rune
}

// LoadCSV reads the merged disaster file at path into a Table.
func LoadCSV(ctx context.Context, path string, opts ...Option) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()

	t, err := ReadCSV(ctx, f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadCSV parses disaster rows from r. Column order is free and extra
// columns are ignored.
func ReadCSV(ctx context.Context, r io.Reader, opts ...Option) (*Table, error) {
	l := &loader{comma: ','}
	for _, opt := range opts {
		opt(l)
	}

	cr := csv.NewReader(r)
	cr.Comma = l.comma
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrLoad, ErrEmpty)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrLoad, err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []model.Record
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrLoad, line, err)
		}
		rec, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrLoad, ErrEmpty)
	}
	return NewTable(records), nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		idx[h] = i
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int) (model.Record, error) {
	cell := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var rec model.Record
	year, err := parseNumber(ColYear, cell(ColYear))
	if err != nil {
		return rec, err
	}
	if year == 0 {
		return rec, fmt.Errorf("%w: %s is empty", ErrMalformed, ColYear)
	}
	rec.Year = int(year)
	rec.State = cell(ColState)

	if rec.Damage, err = parseNumber(ColDamage, cell(ColDamage)); err != nil {
		return rec, err
	}
	ints := []struct {
		col string
		dst *int64
	}{
		{ColDeaths, &rec.Deaths},
		{ColDisasters, &rec.Disasters},
		{ColInjured, &rec.Injured},
	}
	for _, c := range ints {
		v, err := parseNumber(c.col, cell(c.col))
		if err != nil {
			return rec, err
		}
		*c.dst = int64(math.Round(v))
	}

	code, err := parseNumber(ColRisk, cell(ColRisk))
	if err != nil {
		return rec, err
	}
	if code != math.Trunc(code) {
		return rec, fmt.Errorf("%w: %s %v is not an integer code", ErrMalformed, ColRisk, code)
	}
	if rec.Risk, err = model.RiskFromCode(int(code)); err != nil {
		return rec, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return rec, nil
}

// parseNumber accepts integers and floats; empty and NaN cells read as 0.
func parseNumber(col, s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformed, col, s)
	}
	if math.IsNaN(v) {
		return 0, nil
	}
	if math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformed, col, s)
	}
	return v, nil
}
