package companion

import (
	"errors"
	"fmt"
)

// Standard sentinel errors returned by generated code.
var (
	// ErrInvalidFieldName is returned when a string resolves to no field
	// selector, neither by raw identifier nor by derived label.
	ErrInvalidFieldName = errors.New("companion: invalid field name")

	// ErrMismatchedValue is returned when a tagged value is unwrapped into a
	// raw type that is not the type of the field it carries.
	ErrMismatchedValue = errors.New("companion: value does not match target type")

	// ErrMismatchedField is returned when a raw value is wrapped for a field
	// selector whose declared type differs from the value's type.
	ErrMismatchedField = errors.New("companion: field does not match value type")
)

// InvalidFieldNameError is returned by generated Parse<Name>Field functions
// when the given string is neither a field's raw identifier nor its derived
// label. Matching is exact; no case folding or normalization is applied.
type InvalidFieldNameError struct {
	Name string // the string that failed to resolve
}

// Error returns the error string.
func (e *InvalidFieldNameError) Error() string {
	return fmt.Sprintf("companion: invalid field name %q", e.Name)
}

// Is reports whether the target matches the sentinel for this error.
// This allows errors.Is(err, ErrInvalidFieldName) to return true.
func (e *InvalidFieldNameError) Is(target error) bool {
	return target == ErrInvalidFieldName
}

// NewInvalidFieldNameError returns a new InvalidFieldNameError for the
// string that failed to resolve.
func NewInvalidFieldNameError(name string) *InvalidFieldNameError {
	return &InvalidFieldNameError{Name: name}
}

// IsInvalidFieldName returns true if the error is an InvalidFieldNameError.
func IsInvalidFieldName(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrInvalidFieldName)
}

// MismatchedValueError is returned by generated value-to-raw conversions
// when the tagged value belongs to a field of a different type. Value holds
// the original tagged value unchanged, so the caller can retry a different
// target type or inspect what was actually produced.
type MismatchedValueError[V any] struct {
	Value  V      // the original tagged value, unchanged
	Target string // the requested raw type, as written in the record
}

// Error returns the error string.
func (e *MismatchedValueError[V]) Error() string {
	return fmt.Sprintf("companion: value %v does not carry type %s", e.Value, e.Target)
}

// Is reports whether the target matches the sentinel for this error.
func (e *MismatchedValueError[V]) Is(target error) bool {
	return target == ErrMismatchedValue
}

// NewMismatchedValueError creates a new MismatchedValueError carrying the
// original tagged value.
func NewMismatchedValueError[V any](value V, target string) *MismatchedValueError[V] {
	return &MismatchedValueError[V]{Value: value, Target: target}
}

// IsMismatchedValue returns true if the error is a MismatchedValueError of
// any value type.
func IsMismatchedValue(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrMismatchedValue)
}

// AsMismatchedValue unwraps err into a MismatchedValueError for the given
// tagged-value type, recovering the original value:
//
//	raw, err := UserValueToString(v)
//	if e, ok := companion.AsMismatchedValue[UserValue](err); ok {
//		v = e.Value // unchanged
//	}
func AsMismatchedValue[V any](err error) (*MismatchedValueError[V], bool) {
	var e *MismatchedValueError[V]
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// MismatchedFieldError is returned by generated (field, raw)-to-value
// conversions when the field selector names a field of a different type.
// Field holds the offending selector, so the caller learns which selector
// was invalid for the raw type at hand.
type MismatchedFieldError[F any] struct {
	Field  F      // the offending field selector
	Target string // the raw type the conversion accepts
}

// Error returns the error string.
func (e *MismatchedFieldError[F]) Error() string {
	return fmt.Sprintf("companion: field %v is not of type %s", e.Field, e.Target)
}

// Is reports whether the target matches the sentinel for this error.
func (e *MismatchedFieldError[F]) Is(target error) bool {
	return target == ErrMismatchedField
}

// NewMismatchedFieldError creates a new MismatchedFieldError carrying the
// offending field selector.
func NewMismatchedFieldError[F any](field F, target string) *MismatchedFieldError[F] {
	return &MismatchedFieldError[F]{Field: field, Target: target}
}

// IsMismatchedField returns true if the error is a MismatchedFieldError of
// any field type.
func IsMismatchedField(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrMismatchedField)
}

// AsMismatchedField unwraps err into a MismatchedFieldError for the given
// field-selector type, recovering the offending selector.
func AsMismatchedField[F any](err error) (*MismatchedFieldError[F], bool) {
	var e *MismatchedFieldError[F]
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
