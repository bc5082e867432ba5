package format

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is the category of every text to value conversion failure.
	ErrParse = errors.New("format: cannot parse value")

	// ErrPrint is returned when a value of the wrong kind is printed.
	ErrPrint = errors.New("format: cannot print value")

	// ErrUnsupportedType is returned by New for an unknown type name.
	ErrUnsupportedType = errors.New("format: unsupported type")

	// ErrInvalidPattern is returned when a pattern cannot be used for its type.
	ErrInvalidPattern = errors.New("format: invalid pattern")

	// ErrInvalidLocale is returned when a locale or timezone cannot be resolved.
	ErrInvalidLocale = errors.New("format: invalid locale or timezone")

	// ErrNotComparable is returned by Compare for values without an order.
	ErrNotComparable = errors.New("format: values are not comparable")
)

// ParseError describes text that does not match a formatter.
type ParseError struct {
	Text     string
	TypeName string
	Pattern  string
	Err      error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("cannot parse %q as %s", e.Text, e.TypeName)
	if e.Pattern != "" {
		msg += " (" + e.Pattern + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

func printError(value any, typeName string) error {
	return fmt.Errorf("%w: %T is not a %s", ErrPrint, value, typeName)
}
