package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRiskTier is returned when a risk label or code is not recognised.
var ErrUnknownRiskTier = errors.New("unknown risk tier")

// RiskTier is the coarse prediction-year classification of a row.
// RiskUnset marks historical rows; RiskAll is the selector sentinel that
// disables risk filtering and never appears on a row.
type RiskTier int

const (
	RiskAll    RiskTier = -1
	RiskUnset  RiskTier = 0
	RiskLow    RiskTier = 1
	RiskMedium RiskTier = 2
	RiskHigh   RiskTier = 3
)

// Narrows reports whether r selects a concrete tier. RiskAll and the zero
// value RiskUnset both mean no risk filter when used in a Selection.
func (r RiskTier) Narrows() bool {
	return r >= RiskLow && r <= RiskHigh
}

// RiskOptions lists the selector choices in display order.
var RiskOptions = []RiskTier{RiskAll, RiskLow, RiskMedium, RiskHigh}

// String returns the selector label.
func (r RiskTier) String() string {
	switch r {
	case RiskAll:
		return "All"
	case RiskUnset:
		return ""
	case RiskLow:
		return "Low"
	case RiskMedium:
		return "Medium"
	case RiskHigh:
		return "High"
	default:
		return fmt.Sprintf("RiskTier(%d)", int(r))
	}
}

// ParseRiskTier maps a selector label to a tier. Empty input means All.
func ParseRiskTier(label string) (RiskTier, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "all":
		return RiskAll, nil
	case "low":
		return RiskLow, nil
	case "medium":
		return RiskMedium, nil
	case "high":
		return RiskHigh, nil
	default:
		return RiskAll, fmt.Errorf("%w: %q", ErrUnknownRiskTier, label)
	}
}

// RiskFromCode maps a stored integer code (0..3) to a tier.
func RiskFromCode(code int) (RiskTier, error) {
	if code < int(RiskUnset) || code > int(RiskHigh) {
		return RiskUnset, fmt.Errorf("%w: code %d", ErrUnknownRiskTier, code)
	}
	return RiskTier(code), nil
}
