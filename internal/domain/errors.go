package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two hard failure modes of the engine. Everything
// else degrades softly into reduced variant coverage.
var (
	ErrInvalidAncestry = errors.New("invalid ancestry")
	ErrParse           = errors.New("genotype parse error")
)

// InvalidAncestryError reports an ancestry code outside the supported set.
// It is detected eagerly, before any computation begins.
type InvalidAncestryError struct {
	Ancestry string
}

// Error implements the error interface.
func (e *InvalidAncestryError) Error() string {
	return fmt.Sprintf("invalid ancestry %q: choose from %v", e.Ancestry, Ancestries)
}

// Unwrap allows errors.Is(err, ErrInvalidAncestry).
func (e *InvalidAncestryError) Unwrap() error {
	return ErrInvalidAncestry
}

// NewInvalidAncestryError creates an InvalidAncestryError for the code.
func NewInvalidAncestryError(ancestry string) *InvalidAncestryError {
	return &InvalidAncestryError{Ancestry: ancestry}
}

// ParseError reports a genotype file that is fundamentally unreadable: no
// decodable text found, or no text entry inside an archive. Malformed
// individual lines are never a ParseError; they are skipped silently.
type ParseError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("genotype parse error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("genotype parse error: %s", e.Message)
}

// Unwrap allows errors.Is(err, ErrParse) and unwrapping the cause.
func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrParse
}

// Is matches both the ErrParse sentinel and wrapped causes.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NewParseError creates a ParseError with an optional underlying cause.
func NewParseError(message string, err error) *ParseError {
	return &ParseError{Message: message, Err: err}
}
