package weather

import "errors"

var (
	// ErrNotFound is returned when the geocoder has zero matches for a query.
	ErrNotFound = errors.New("location not found")

	// ErrUpstream is returned on transport failure or a response-shape
	// mismatch from an external provider.
	ErrUpstream = errors.New("upstream provider error")
)
