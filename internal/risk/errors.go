package risk

import "errors"

// ErrInsufficientData is returned when a score is requested without a single usable metric.
var ErrInsufficientData = errors.New("insufficient data: at least one metric is required to compute a risk score")

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}
