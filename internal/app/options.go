package service

import (
	"github.com/jonboulle/clockwork"
	"github.com/okian/disasterdash/internal/adapters/geo"
	"github.com/okian/disasterdash/internal/adapters/repository"
	"github.com/okian/disasterdash/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the disaster table.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithBoundaries sets the state polygons.
func WithBoundaries(b *geo.Boundaries) Option {
	return func(s *Service) {
		s.boundaries = b
	}
}

// WithPredictionYear fixes the prediction year. Zero selects the latest year.
func WithPredictionYear(year int) Option {
	return func(s *Service) {
		if year >= 0 {
			s.predictionYear = year
		}
	}
}

// WithClock replaces the time source used for render timing.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}
