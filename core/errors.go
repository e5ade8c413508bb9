package core

import (
	"errors"
	"fmt"
)

// ErrTypeConversion matches every *TypeConversionError through errors.Is.
var ErrTypeConversion = errors.New("type conversion error")

// TypeConversionError is returned when a value cannot be converted to the
// requested dtype, or when a dtype ordinal is outside the enumeration.
type TypeConversionError struct {
	From   string // source description: a value kind or dtype name
	To     DType
	Reason string
	Err    error // underlying cause (optional)
}

func (e *TypeConversionError) Error() string {
	msg := "cannot convert " + e.From
	if e.To.Valid() {
		msg += " to " + e.To.String()
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TypeConversionError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrTypeConversion) hold for any conversion error.
func (e *TypeConversionError) Is(target error) bool {
	return target == ErrTypeConversion
}

// NewConversionError builds a TypeConversionError for a conversion from one
// described source to dtype to.
func NewConversionError(from string, to DType, reason string) *TypeConversionError {
	return &TypeConversionError{From: from, To: to, Reason: reason}
}

func invalidDType(d DType) *TypeConversionError {
	return &TypeConversionError{
		From:   d.String(),
		To:     d,
		Reason: fmt.Sprintf("invalid dtype ordinal %d", uint8(d)),
	}
}

// InvalidDTypeError reports d as outside the enumeration.
func InvalidDTypeError(d DType) error {
	return invalidDType(d)
}
