package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation          = errors.New("invalid system configuration")
	ErrUnknownManufacturer = errors.New("unknown manufacturer")
)

// ValidationError reports a configuration field outside its allowed range.
// Reason is set for malformed values (missing, NaN) that have no meaningful Value.
type ValidationError struct {
	Field  string
	Value  float64
	Min    float64
	Max    float64
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s (valid range %g to %g)", e.Field, e.Reason, e.Min, e.Max)
	}
	return fmt.Sprintf("%s: value %g out of range (valid range %g to %g)", e.Field, e.Value, e.Min, e.Max)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// UnknownManufacturerError is returned when a preset key is not registered.
// Suggestions holds the closest registered keys, best match first.
type UnknownManufacturerError struct {
	Key         string
	Suggestions []string
}

func (e *UnknownManufacturerError) Error() string {
	msg := fmt.Sprintf("unknown manufacturer %q", e.Key)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

func (e *UnknownManufacturerError) Is(target error) bool { return target == ErrUnknownManufacturer }
