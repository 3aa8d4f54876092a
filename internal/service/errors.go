package service

import (
	"errors"
	"strings"
)

var ErrForbidden = errors.New("forbidden: insufficient permissions")

type ValidationError struct {
	Fields []string
	errs   []error
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// Unwrap exposes the underlying domain errors, if any, to errors.Is.
func (e *ValidationError) Unwrap() []error {
	return e.errs
}

// asValidationError flattens a (possibly joined) domain error into a ValidationError.
func asValidationError(err error) *ValidationError {
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Error()
	}
	return &ValidationError{Fields: fields, errs: errs}
}
