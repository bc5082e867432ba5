package cellproc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/csvbind/pkg/format"
)

var (
	// ErrValidation is the category of values that fail a constraint.
	ErrValidation = errors.New("cellproc: validation failed")

	// ErrTypeMismatch is the category of cell text that cannot be parsed.
	ErrTypeMismatch = errors.New("cellproc: type mismatch")

	// ErrRequired is the category of empty cells in required columns.
	ErrRequired = errors.New("cellproc: value required")

	// ErrFormat is returned when a value cannot be written with the column formatter.
	ErrFormat = errors.New("cellproc: cannot format value")
)

// Message keys for failures raised by the built-in steps.
const (
	KeyRequired     = "csv.required"
	KeyTypeMismatch = "csv.type_mismatch"
)

// FailureKind separates malformed input from well-formed values that break a rule.
type FailureKind string

const (
	KindValidation FailureKind = "validation"
	KindParse      FailureKind = "parse"
	KindRequired   FailureKind = "required"
)

// Cell locates a value in the CSV stream. Numbers are 1-based; RowNumber
// counts records including the header, LineNumber counts physical lines.
type Cell struct {
	LineNumber   int
	RowNumber    int
	ColumnNumber int
}

// ValidationError is a single failed check on one cell.
type ValidationError struct {
	Cell

	Field string
	Label string

	// RawValue is the chain input, before any step ran.
	RawValue any
	// ValidatedValue is the value the failing step was looking at.
	ValidatedValue any

	Kind       FailureKind
	Constraint string

	// MessageKey selects the default template; Message overrides it when set.
	MessageKey string
	Message    string
	Variables  map[string]any

	// Printer renders values the way the column shows them.
	Printer format.Printer

	Err error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "row %d, column %d (%s): ", e.RowNumber, e.ColumnNumber, e.Label)
	switch e.Kind {
	case KindParse:
		b.WriteString("type mismatch")
	case KindRequired:
		b.WriteString("value required")
	default:
		fmt.Fprintf(&b, "%s failed", e.Constraint)
	}
	fmt.Fprintf(&b, " for value %v", e.RawValue)
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *ValidationError) Unwrap() []error {
	var category error
	switch e.Kind {
	case KindParse:
		category = ErrTypeMismatch
	case KindRequired:
		category = ErrRequired
	default:
		category = ErrValidation
	}
	if e.Err == nil {
		return []error{category}
	}
	return []error{category, e.Err}
}

// MessageVariables returns the variables available to message templates:
// the step variables plus the standard lineNumber, rowNumber, columnNumber,
// label, fieldName, value, validatedValue and printer.
func (e *ValidationError) MessageVariables() map[string]any {
	vars := make(map[string]any, len(e.Variables)+8)
	for k, v := range e.Variables {
		vars[k] = v
	}
	vars["lineNumber"] = e.LineNumber
	vars["rowNumber"] = e.RowNumber
	vars["columnNumber"] = e.ColumnNumber
	vars["label"] = e.Label
	vars["fieldName"] = e.Field
	vars["value"] = e.RawValue
	vars["validatedValue"] = e.ValidatedValue
	if e.Printer != nil {
		vars["printer"] = e.Printer
	}
	return vars
}

// ValidationErrors collects failures in the order they were raised.
type ValidationErrors []*ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, err.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve ValidationErrors) Unwrap() []error {
	errs := make([]error, len(ve))
	for i, err := range ve {
		errs[i] = err
	}
	return errs
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Columns returns the failures raised for columnNumber.
func (ve ValidationErrors) Columns(columnNumber int) []*ValidationError {
	var out []*ValidationError
	for _, err := range ve {
		if err.ColumnNumber == columnNumber {
			out = append(out, err)
		}
	}
	return out
}

// ExtractValidationErrors flattens every ValidationError found in err,
// including inside joined errors, preserving order.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var out ValidationErrors
	var walk func(error)
	walk = func(err error) {
		switch e := err.(type) {
		case *ValidationError:
			out = append(out, e)
		case ValidationErrors:
			out = append(out, e...)
		case interface{ Unwrap() []error }:
			for _, inner := range e.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			if inner := e.Unwrap(); inner != nil {
				walk(inner)
			}
		}
	}
	walk(err)
	return out
}

// IsValidationError reports whether err holds at least one ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
