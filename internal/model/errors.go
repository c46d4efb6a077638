package model

import "fmt"

// ParseError represents XML deserialization errors with field context
type ParseError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse %s: %s (%v)", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse %s: %s", e.Field, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error
func NewParseError(field, message string, cause error) *ParseError {
	return &ParseError{
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// NormalizationError is a fatal structural failure while converting a raw
// invoice into the domain model. It is distinct from rule findings: a
// normalization error means no Invoice was produced at all.
type NormalizationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *NormalizationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("normalize %s: %s (%v)", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("normalize %s: %s", e.Field, e.Message)
}

func (e *NormalizationError) Unwrap() error {
	return e.Cause
}

// NewNormalizationError creates a new normalization error
func NewNormalizationError(field, message string, cause error) *NormalizationError {
	return &NormalizationError{
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}
