package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Printer prints a value the way a column shows it.
type Printer interface {
	Print(value any) (string, error)
}

// Formatter converts between cell text and typed values.
type Formatter interface {
	Printer
	Parse(text string) (any, error)
	Pattern() string
	TypeName() string
}

// Spec selects and configures a formatter.
type Spec struct {
	Type     string
	Pattern  string
	Locale   string
	Timezone string
	// TrueValues and FalseValues configure bool columns. The first entry of
	// each list is used when printing.
	TrueValues  []string
	FalseValues []string
}

// Default patterns used when a Spec leaves Pattern empty.
const (
	DefaultDatePattern     = "yyyy-MM-dd"
	DefaultDateTimePattern = "yyyy-MM-dd HH:mm:ss"
	DefaultTimePattern     = "HH:mm:ss"
)

// New builds the formatter described by spec.
func New(spec Spec) (Formatter, error) {
	switch strings.ToLower(spec.Type) {
	case "", "string":
		return StringFormatter{}, nil
	case "bool":
		return NewBoolFormatter(spec.TrueValues, spec.FalseValues), nil
	case "int":
		return NewNumberFormatter[int]("int", spec.Pattern, spec.Locale)
	case "int32":
		return NewNumberFormatter[int32]("int32", spec.Pattern, spec.Locale)
	case "int64":
		return NewNumberFormatter[int64]("int64", spec.Pattern, spec.Locale)
	case "float32":
		return NewNumberFormatter[float32]("float32", spec.Pattern, spec.Locale)
	case "float64":
		return NewNumberFormatter[float64]("float64", spec.Pattern, spec.Locale)
	case "date":
		return NewDateTimeFormatter("date", withDefault(spec.Pattern, DefaultDatePattern), spec.Timezone)
	case "datetime":
		return NewDateTimeFormatter("datetime", withDefault(spec.Pattern, DefaultDateTimePattern), spec.Timezone)
	case "time":
		return NewDateTimeFormatter("time", withDefault(spec.Pattern, DefaultTimePattern), spec.Timezone)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, spec.Type)
	}
}

// MustNew is New that panics on error. Intended for tests and static setup.
func MustNew(spec Spec) Formatter {
	f, err := New(spec)
	if err != nil {
		panic(err)
	}
	return f
}

func withDefault(pattern, def string) string {
	if pattern == "" {
		return def
	}
	return pattern
}

// StringFormatter passes text through unchanged.
type StringFormatter struct{}

func (StringFormatter) Parse(text string) (any, error) { return text, nil }

func (StringFormatter) Print(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", printError(value, "string")
	}
}

func (StringFormatter) Pattern() string  { return "" }
func (StringFormatter) TypeName() string { return "string" }

// BoolFormatter reads and writes configurable true/false words.
type BoolFormatter struct {
	trueValues  []string
	falseValues []string
}

// NewBoolFormatter returns a formatter accepting the given words,
// case-insensitively. Empty lists fall back to "true" and "false".
func NewBoolFormatter(trueValues, falseValues []string) *BoolFormatter {
	if len(trueValues) == 0 {
		trueValues = []string{"true", "1", "yes"}
	}
	if len(falseValues) == 0 {
		falseValues = []string{"false", "0", "no"}
	}
	return &BoolFormatter{trueValues: trueValues, falseValues: falseValues}
}

func (f *BoolFormatter) Parse(text string) (any, error) {
	for _, v := range f.trueValues {
		if strings.EqualFold(text, v) {
			return true, nil
		}
	}
	for _, v := range f.falseValues {
		if strings.EqualFold(text, v) {
			return false, nil
		}
	}
	return nil, &ParseError{Text: text, TypeName: "bool", Pattern: f.Pattern()}
}

func (f *BoolFormatter) Print(value any) (string, error) {
	b, ok := value.(bool)
	if !ok {
		return "", printError(value, "bool")
	}
	if b {
		return f.trueValues[0], nil
	}
	return f.falseValues[0], nil
}

func (f *BoolFormatter) Pattern() string {
	return f.trueValues[0] + "/" + f.falseValues[0]
}

func (f *BoolFormatter) TypeName() string { return "bool" }

// Compare orders two values of the same kind: numbers of any supported Go
// type, strings, bools (false < true) and time.Time.
func Compare(a, b any) (int, error) {
	switch x := a.(type) {
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			break
		}
		return x.Compare(y), nil
	case string:
		y, ok := b.(string)
		if !ok {
			break
		}
		return strings.Compare(x, y), nil
	case bool:
		y, ok := b.(bool)
		if !ok {
			break
		}
		switch {
		case x == y:
			return 0, nil
		case !x:
			return -1, nil
		default:
			return 1, nil
		}
	default:
		if xi, ok := asInt(a); ok {
			if yi, ok := asInt(b); ok {
				return cmpOrdered(xi, yi), nil
			}
		}
		if xf, ok := asFloat(a); ok {
			if yf, ok := asFloat(b); ok {
				if math.IsNaN(xf) || math.IsNaN(yf) {
					return 0, fmt.Errorf("%w: NaN", ErrNotComparable)
				}
				return cmpOrdered(xf, yf), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %T and %T", ErrNotComparable, a, b)
}

func cmpOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	if i, ok := asInt(v); ok {
		return float64(i), true
	}
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
