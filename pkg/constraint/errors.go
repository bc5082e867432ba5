package constraint

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidAnnotation is the category of every build-time annotation error.
	ErrInvalidAnnotation = errors.New("constraint: invalid annotation")
	ErrUnknownKind       = errors.New("constraint: unknown annotation kind")
	ErrDuplicateKind     = errors.New("constraint: annotation kind already registered")
	ErrInvalidRange      = errors.New("constraint: min is greater than max")
)

// AnnotationError describes an annotation that cannot be turned into a step.
type AnnotationError struct {
	Field    string
	Kind     string
	Attr     string
	Literal  string
	TypeName string
	Pattern  string
	// Reason explains failures that are not about a single literal.
	Reason string
	Err    error
}

func (e *AnnotationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid annotation %s on field %q", e.Kind, e.Field)
	if e.Attr != "" {
		fmt.Fprintf(&b, ": attribute %s=%q", e.Attr, e.Literal)
		if e.TypeName != "" {
			fmt.Fprintf(&b, " is not a valid %s", e.TypeName)
			if e.Pattern != "" {
				fmt.Fprintf(&b, " (pattern %q)", e.Pattern)
			}
		}
	}
	if e.Reason != "" {
		b.WriteString(": " + e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *AnnotationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidAnnotation}
	}
	return []error{ErrInvalidAnnotation, e.Err}
}
