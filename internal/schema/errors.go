package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds of loading and resolving a schema.
// Callers match them with errors.Is.
var (
	// ErrUnsupportedType indicates a column type outside the supported set.
	ErrUnsupportedType = errors.New("unsupported column type")
	// ErrDuplicateColumnName indicates a column name already used in its table.
	ErrDuplicateColumnName = errors.New("duplicate column name")
	// ErrMalformedPath indicates a reference that is not of the form table.column.
	ErrMalformedPath = errors.New("malformed column path")
	// ErrUnknownReference indicates a well-formed reference to a missing table or column.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrInvalidFormat indicates structurally invalid loader input.
	ErrInvalidFormat = errors.New("invalid format")
)

// FormatError describes a structural problem in a loader's input document.
type FormatError struct {
	Format  string // input format, e.g. "JSON" or "mind map"
	Source  string // file path, if known
	Message string
	Err     error // underlying error, if any
}

func (e *FormatError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Source != "" {
		return fmt.Sprintf("invalid %s in %s: %s", e.Format, e.Source, msg)
	}
	return fmt.Sprintf("invalid %s: %s", e.Format, msg)
}

// Unwrap lets errors.Is match both ErrInvalidFormat and the underlying cause.
func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidFormat, e.Err}
	}
	return []error{ErrInvalidFormat}
}
