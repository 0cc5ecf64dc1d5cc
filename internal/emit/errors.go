package emit

import (
	"errors"
	"fmt"

	"github.com/wiretype/wiretype/internal/ir"
)

// FormatError represents a type that cannot be rendered for a target
// language without breaking the cross-language wire contract.
//
// Format errors are fatal for the module being emitted: partial output
// is never treated as valid, and no backend may degrade silently
// (e.g. by truncating 64-bit integers to a lossy numeric type).
type FormatError struct {
	// Code identifies the error category.
	Code FormatErrorCode

	// TypeName names the offending type or type parameter.
	TypeName string
}

// FormatErrorCode categorizes format errors.
type FormatErrorCode string

const (
	// ErrCodeUnsupportedWidth indicates a 64-bit-class numeric kind
	// reached the formatter. These kinds exceed the JSON-safe integer
	// range and are categorically unrepresentable.
	ErrCodeUnsupportedWidth FormatErrorCode = "UNSUPPORTED_NUMERIC_WIDTH"

	// ErrCodeGenericKey indicates a map key that resolves to an open
	// generic parameter of the enclosing declaration. Most target
	// syntaxes cannot constrain map keys generically.
	ErrCodeGenericKey FormatErrorCode = "GENERIC_KEY_FORBIDDEN"
)

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.TypeName)
}

// NewUnsupportedWidthError creates a FormatError for a 64-bit-class kind.
func NewUnsupportedWidthError(kind ir.SpecialKind) *FormatError {
	return &FormatError{Code: ErrCodeUnsupportedWidth, TypeName: string(kind)}
}

// NewGenericKeyError creates a FormatError for a generic map key.
func NewGenericKeyError(param string) *FormatError {
	return &FormatError{Code: ErrCodeGenericKey, TypeName: param}
}

// IsUnsupportedWidth reports whether err is an unsupported-numeric-width
// error. Uses errors.As to handle wrapped errors.
func IsUnsupportedWidth(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe) && fe.Code == ErrCodeUnsupportedWidth
}

// IsGenericKey reports whether err is a generic-map-key error.
// Uses errors.As to handle wrapped errors.
func IsGenericKey(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe) && fe.Code == ErrCodeGenericKey
}
