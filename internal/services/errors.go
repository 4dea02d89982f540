package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when no record has the requested identity
	ErrNotFound = errors.New("record not found")
	// ErrReferenceNotFound is returned when an association references a missing pizza or restaurant
	ErrReferenceNotFound = errors.New("referenced pizza or restaurant not found")
	// ErrDuplicateAssociation is returned when the pizza is already offered by the restaurant
	ErrDuplicateAssociation = errors.New("association for pizza and restaurant already exists")
	// ErrDuplicateName is returned when a restaurant or pizza name is already taken
	ErrDuplicateName = errors.New("name already exists")
)

// Messages reported per field when input is rejected
const (
	MsgMissingField   = "Missing data for required field."
	MsgInvalidValue   = "Invalid value."
	MsgInvalidNumber  = "Not a valid number."
	MsgInvalidInteger = "Not a valid integer."
	MsgInvalidInput   = "Invalid input type."
	MsgTooLong        = "Longer than maximum length %d."

	// SchemaField collects errors that do not belong to a single field
	SchemaField = "_schema"
)

// ValidationError carries the per-field messages of rejected input
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add appends a message for the given field
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// Set replaces every message of the given field
func (e *ValidationError) Set(field, message string) {
	e.Fields[field] = []string{message}
}

// Empty reports whether no field failed
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// orNil returns nil when no field failed so callers can return it as an error
func (e *ValidationError) orNil() error {
	if e.Empty() {
		return nil
	}
	return e
}
