package carbon

import (
	"fmt"
	"math"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidInput is the only failure class of the engine: a missing value
// with no table default, a non-positive amount, or an unsupported
// unit/fuel/vehicle combination. Test with errors.Is.
var ErrInvalidInput = constError("invalid input")

// InputError describes which field of an activity record was rejected.
// It matches ErrInvalidInput under errors.Is.
type InputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InputError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s=%v: %s", ErrInvalidInput, e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidInput.
func (e *InputError) Is(target error) bool {
	return target == error(ErrInvalidInput)
}

func invalid(field string, value any, format string, args ...any) *InputError {
	return &InputError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}

// requirePositive rejects zero, negative, NaN and infinite amounts.
func requirePositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, v, "must be a finite number")
	}
	if v <= 0 {
		return invalid(field, v, "must be greater than zero")
	}
	return nil
}

// requirePositiveOpt applies requirePositive to an optional override.
func requirePositiveOpt(field string, v *float64) error {
	if v == nil {
		return nil
	}
	return requirePositive(field, *v)
}

// requireNonNegative rejects negative, NaN and infinite values.
func requireNonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, v, "must be a finite number")
	}
	if v < 0 {
		return invalid(field, v, "must not be negative")
	}
	return nil
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
