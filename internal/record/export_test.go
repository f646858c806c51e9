package record

import "time"

// WithClock pins the service's notion of now.
func WithClock(s Service, now func() time.Time) Service {
	s.(*service).now = now
	return s
}

var (
	ParseListQuery     = parseListQuery
	MapRepositoryError = mapRepositoryError
)
