package biometric

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// maxTimestamp is 9999-12-31T23:59:59Z, the last instant a date can be encoded at.
// Millisecond timestamps land far beyond it.
const maxTimestamp int64 = 253402300799

// NewReading validates cmd and builds the reading it describes. Every problem is
// reported, joined with errors.Join; each one wraps one of the package sentinels.
func NewReading(cmd *CreateReadingCommand) (*Reading, error) {
	var errs []error

	switch {
	case cmd.Timestamp <= 0:
		errs = append(errs, ErrInvalidTimestamp)
	case cmd.Timestamp > maxTimestamp:
		errs = append(errs, fmt.Errorf("%w: %d is past year 9999, expected unix seconds", ErrInvalidTimestamp, cmd.Timestamp))
	}
	gender := Gender(strings.ToLower(strings.TrimSpace(string(cmd.Gender))))
	if gender != "" && !gender.IsValid() {
		errs = append(errs, fmt.Errorf("%w %q", ErrInvalidGender, cmd.Gender))
	}
	source := cmd.Source
	if source == "" {
		source = SourceManual
	}
	if !source.IsValid() {
		errs = append(errs, fmt.Errorf("invalid source %q", cmd.Source))
	}
	if len(cmd.Metrics) == 0 {
		errs = append(errs, ErrEmptyReading)
	}

	r := &Reading{
		UserID:    cmd.UserID,
		ProfileID: cmd.ProfileID,
		Timestamp: cmd.Timestamp,
		Gender:    gender,
		Source:    source,
		CreatedBy: cmd.CreatedBy,
	}
	r.MeasurementDate = r.Time().UTC()

	// Sorted so error output is stable.
	names := make([]string, 0, len(cmd.Metrics))
	for name := range cmd.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v := cmd.Metrics[name]
		f, ok := ParseField(name)
		if !ok {
			errs = append(errs, fmt.Errorf("%w %q", ErrUnknownField, name))
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidValue, name))
			continue
		}
		r.Set(f, v)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return r, nil
}
