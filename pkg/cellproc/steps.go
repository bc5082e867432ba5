package cellproc

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrymomot/csvbind/pkg/format"
)

// IsEmpty reports whether v is a missing cell: nil or the empty string.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// Trim removes surrounding whitespace from string values.
func Trim() Step {
	return Step{
		Kind: StepTrim,
		Name: "trim",
		Fn: func(_ context.Context, value any, _ Cell) (any, bool, error) {
			if s, ok := value.(string); ok {
				return strings.TrimSpace(s), false, nil
			}
			return value, false, nil
		},
	}
}

// Convert applies fn to string values.
func Convert(name string, fn func(string) string) Step {
	return Step{
		Kind: StepConvert,
		Name: name,
		Fn: func(_ context.Context, value any, _ Cell) (any, bool, error) {
			if s, ok := value.(string); ok && s != "" {
				return fn(s), false, nil
			}
			return value, false, nil
		},
	}
}

// DefaultValue replaces an empty value with def and ends the chain.
func DefaultValue(def any) Step {
	return Step{
		Kind: StepDefault,
		Name: "default",
		Fn: func(_ context.Context, value any, _ Cell) (any, bool, error) {
			if IsEmpty(value) {
				return def, true, nil
			}
			return value, false, nil
		},
	}
}

// Optional ends the chain with nil for empty values.
func Optional() Step {
	return Step{
		Kind: StepOptional,
		Name: "optional",
		Fn: func(_ context.Context, value any, _ Cell) (any, bool, error) {
			if IsEmpty(value) {
				return nil, true, nil
			}
			return value, false, nil
		},
	}
}

// Required fails for empty values.
func Required() Step {
	return Step{
		Kind: StepRequired,
		Name: "required",
		Fn: func(_ context.Context, value any, _ Cell) (any, bool, error) {
			if IsEmpty(value) {
				return nil, false, &ValidationError{
					Kind:       KindRequired,
					MessageKey: KeyRequired,
				}
			}
			return value, false, nil
		},
	}
}

// Parse converts cell text with f. Non-string values pass through.
func Parse(f format.Formatter) Step {
	return Step{
		Kind: StepParse,
		Name: "parse",
		Fn: func(_ context.Context, value any, _ Cell) (any, bool, error) {
			text, ok := value.(string)
			if !ok {
				return value, false, nil
			}
			v, err := f.Parse(text)
			if err != nil {
				return nil, false, &ValidationError{
					Kind:           KindParse,
					MessageKey:     KeyTypeMismatch,
					ValidatedValue: text,
					Variables: map[string]any{
						"typeName": f.TypeName(),
						"pattern":  f.Pattern(),
					},
					Err: err,
				}
			}
			return v, false, nil
		},
	}
}

// Format prints a typed value with f.
func Format(f format.Formatter) Step {
	return Step{
		Kind: StepFormat,
		Name: "format",
		Fn: func(_ context.Context, value any, cell Cell) (any, bool, error) {
			if value == nil {
				return nil, false, nil
			}
			s, err := f.Print(value)
			if err != nil {
				return nil, false, fmt.Errorf("%w: row %d, column %d: %w", ErrFormat, cell.RowNumber, cell.ColumnNumber, err)
			}
			return s, false, nil
		},
	}
}

// Validate checks v and passes the value on unchanged.
func Validate(v Validator) Step {
	return Step{
		Kind:      StepValidate,
		Name:      v.Name(),
		Validator: v,
		Fn: func(ctx context.Context, value any, cell Cell) (any, bool, error) {
			if err := v.Validate(ctx, value, cell); err != nil {
				return nil, false, err
			}
			return value, false, nil
		},
	}
}
