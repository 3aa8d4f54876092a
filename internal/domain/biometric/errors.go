package biometric

import "errors"

var (
	ErrReadingNotFound  = errors.New("reading not found")
	ErrNoReadings       = errors.New("no readings recorded for this profile")
	ErrInvalidGender    = errors.New("invalid gender value")
	ErrInvalidTimestamp = errors.New("timestamp must be a positive unix time in seconds")
	ErrUnknownField     = errors.New("unknown measurement field")
	ErrInvalidValue     = errors.New("measurement values must be finite and non-negative")
	ErrEmptyReading     = errors.New("reading has no measurements")
)
