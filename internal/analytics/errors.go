package analytics

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPeriod   = errors.New("invalid period")
	ErrInvalidTimeline = errors.New("invalid timeline")
	ErrUnknownField    = errors.New("unknown field")
)

// ValidationError describes a rejected argument. Unwrap yields one of the sentinel
// errors above so callers can branch with errors.Is.
type ValidationError struct {
	Param   string
	Value   string
	Allowed string
	Err     error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s %q for %s", e.Err, e.Value, e.Param)
	if e.Allowed != "" {
		msg += ": expected one of " + e.Allowed
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
