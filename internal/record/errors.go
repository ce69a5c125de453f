package record

import (
	"errors"
	"fmt"
)

// Kind categorizes roster errors.
type Kind string

const (
	// KindValidation indicates a field violates its format or length rule.
	KindValidation Kind = "VALIDATION"

	// KindDuplicateID indicates an id collision on add, edit or import.
	KindDuplicateID Kind = "DUPLICATE_ID"

	// KindIndex indicates an out-of-range index on edit, remove or get.
	KindIndex Kind = "INDEX"

	// KindFormat indicates an import payload that is not a JSON array of records.
	KindFormat Kind = "FORMAT"

	// KindStorage indicates a persistence backend or import source failure.
	// The in-memory state is never rolled back for this kind.
	KindStorage Kind = "STORAGE"
)

// Error is the single error type returned by roster operations.
//
// Field and Index are optional context:
//   - Field names the offending record field for KindValidation
//   - Index is the position of the offending record (import element, store
//     index), or -1 when it does not apply
type Error struct {
	Kind    Kind
	Field   string
	Index   int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Index >= 0 && (e.Kind == KindValidation || e.Kind == KindDuplicateID) {
		msg = fmt.Sprintf("record %d: %s", e.Index, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithIndex returns a copy of e carrying the given record position.
func (e *Error) WithIndex(index int) *Error {
	c := *e
	c.Index = index
	return &c
}

// NewValidationError creates a KindValidation error for a field.
func NewValidationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Index: -1, Message: message}
}

// NewDuplicateIDError creates a KindDuplicateID error for id.
func NewDuplicateIDError(id string) *Error {
	return &Error{
		Kind:    KindDuplicateID,
		Field:   "id",
		Index:   -1,
		Message: fmt.Sprintf("id %s is already registered", id),
	}
}

// NewIndexError creates a KindIndex error for an index outside [0, length).
func NewIndexError(index, length int) *Error {
	return &Error{
		Kind:    KindIndex,
		Index:   index,
		Message: fmt.Sprintf("index %d out of range [0, %d)", index, length),
	}
}

// NewFormatError creates a KindFormat error.
func NewFormatError(message string, cause error) *Error {
	return &Error{Kind: KindFormat, Index: -1, Message: message, Err: cause}
}

// NewStorageError creates a KindStorage error wrapping cause.
func NewStorageError(message string, cause error) *Error {
	return &Error{Kind: KindStorage, Index: -1, Message: message, Err: cause}
}

// KindOf returns the Kind of err, or "" if err is not a roster error.
// Uses errors.As to handle wrapped errors.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// IsValidation returns true if err is a validation error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsDuplicateID returns true if err is a duplicate id error.
func IsDuplicateID(err error) bool { return KindOf(err) == KindDuplicateID }

// IsIndex returns true if err is an index error.
func IsIndex(err error) bool { return KindOf(err) == KindIndex }

// IsFormat returns true if err is a format error.
func IsFormat(err error) bool { return KindOf(err) == KindFormat }

// IsStorage returns true if err is a storage error.
func IsStorage(err error) bool { return KindOf(err) == KindStorage }
