package service

import "errors"

// Sentinel kinds for dashboard errors.
var (
	ErrNotStarted            = errors.New("dashboard service not started")
	ErrNoData                = errors.New("dashboard data not loaded")
	ErrInvalidInput          = errors.New("invalid selection input")
	ErrRiskOutsidePrediction = errors.New("risk tier applies only to the prediction year")
)
