package repository

import "errors"

// Sentinel kinds for table loading errors.
var (
	ErrLoad          = errors.New("load disaster table failed")
	ErrMissingColumn = errors.New("missing required column")
	ErrMalformed     = errors.New("malformed value")
	ErrEmpty         = errors.New("disaster table has no rows")
)
