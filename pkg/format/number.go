package format

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Numeric is the set of Go types a NumberFormatter can produce.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// NumberFormatter handles decimal patterns such as "#,###" or "#,##0.00".
// An empty pattern reads and writes plain Go number syntax.
type NumberFormatter[T Numeric] struct {
	typeName string
	pattern  string
	tag      language.Tag

	grouping bool
	minInt   int
	minFrac  int
	maxFrac  int

	groupSep   string
	decimalSep string
}

// NewNumberFormatter builds a formatter for T. Locale defaults to English.
func NewNumberFormatter[T Numeric](typeName, pattern, locale string) (*NumberFormatter[T], error) {
	tag := language.English
	if locale != "" {
		parsed, err := language.Parse(normalizeLocale(locale))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidLocale, locale, err)
		}
		tag = parsed
	}

	f := &NumberFormatter[T]{typeName: typeName, pattern: pattern, tag: tag}
	if pattern != "" {
		if err := f.compile(); err != nil {
			return nil, err
		}
	}
	f.detectSeparators()
	return f, nil
}

// normalizeLocale accepts both "ja_JP" and "ja-JP" spellings.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(locale, "_", "-")
}

func (f *NumberFormatter[T]) compile() error {
	intPart, fracPart, hasFrac := strings.Cut(f.pattern, ".")
	if hasFrac && strings.ContainsAny(fracPart, ".,") {
		return fmt.Errorf("%w: %q", ErrInvalidPattern, f.pattern)
	}
	for _, c := range intPart {
		switch c {
		case '#':
		case '0':
			f.minInt++
		case ',':
			f.grouping = true
		default:
			return fmt.Errorf("%w: %q: unexpected %q", ErrInvalidPattern, f.pattern, c)
		}
	}
	for _, c := range fracPart {
		switch c {
		case '0':
			f.minFrac++
			f.maxFrac++
		case '#':
			f.maxFrac++
		default:
			return fmt.Errorf("%w: %q: unexpected %q", ErrInvalidPattern, f.pattern, c)
		}
	}
	if f.minFrac > 0 && f.isInteger() {
		return fmt.Errorf("%w: %q: fraction digits on %s", ErrInvalidPattern, f.pattern, f.typeName)
	}
	return nil
}

// detectSeparators prints a probe number to learn the locale symbols.
func (f *NumberFormatter[T]) detectSeparators() {
	f.groupSep, f.decimalSep = ",", "."

	probe := message.NewPrinter(f.tag).Sprint(
		number.Decimal(1234567.5, number.MinFractionDigits(1), number.MaxFractionDigits(1)),
	)
	runes := []rune(probe)
	if len(runes) < 3 {
		return
	}

	var group []rune
	for _, r := range runes[1:] {
		if unicode.IsDigit(r) {
			break
		}
		group = append(group, r)
	}
	if len(group) > 0 {
		f.groupSep = string(group)
	}
	if r := runes[len(runes)-2]; !unicode.IsDigit(r) {
		f.decimalSep = string(r)
	}
}

func (f *NumberFormatter[T]) isInteger() bool {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return false
	default:
		return true
	}
}

func (f *NumberFormatter[T]) bitSize() int {
	var zero T
	switch any(zero).(type) {
	case int8:
		return 8
	case int16:
		return 16
	case int32, float32:
		return 32
	default:
		return 64
	}
}

// Parse reads text as T.
func (f *NumberFormatter[T]) Parse(text string) (any, error) {
	v, err := f.ParseValue(text)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ParseValue is Parse with a typed result.
func (f *NumberFormatter[T]) ParseValue(text string) (T, error) {
	var zero T

	plain := text
	if f.pattern != "" {
		if f.grouping {
			plain = strings.ReplaceAll(plain, f.groupSep, "")
		}
		if f.decimalSep != "." {
			if strings.Contains(plain, ".") {
				return zero, f.parseError(text, nil)
			}
			plain = strings.Replace(plain, f.decimalSep, ".", 1)
		}
	}
	if !isDecimal(plain, !f.isInteger()) {
		return zero, f.parseError(text, nil)
	}

	if f.isInteger() {
		n, err := strconv.ParseInt(plain, 10, f.bitSize())
		if err != nil {
			return zero, f.parseError(text, err)
		}
		return T(n), nil
	}

	n, err := strconv.ParseFloat(plain, f.bitSize())
	if err != nil {
		return zero, f.parseError(text, err)
	}
	return T(n), nil
}

// isDecimal reports whether s is an optional sign followed by digits, with at
// most one '.' when fraction is set. NaN, infinities, exponents and hex floats
// are not decimals.
func isDecimal(s string, fraction bool) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	digits, dot := 0, false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' && fraction && !dot:
			dot = true
		default:
			return false
		}
	}
	return digits > 0
}

func (f *NumberFormatter[T]) parseError(text string, err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		err = ne.Err
	}
	return &ParseError{Text: text, TypeName: f.typeName, Pattern: f.pattern, Err: err}
}

// Print writes value using the pattern and locale.
func (f *NumberFormatter[T]) Print(value any) (string, error) {
	v, ok := f.coerce(value)
	if !ok {
		return "", printError(value, f.typeName)
	}
	return f.PrintValue(v), nil
}

// PrintValue is Print for a typed value.
func (f *NumberFormatter[T]) PrintValue(v T) string {
	if f.pattern == "" {
		if f.isInteger() {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(float64(v), 'f', -1, f.bitSize())
	}

	opts := []number.Option{
		number.MinFractionDigits(f.minFrac),
		number.MaxFractionDigits(f.maxFrac),
	}
	if f.minInt > 1 {
		opts = append(opts, number.MinIntegerDigits(f.minInt))
	}
	if !f.grouping {
		opts = append(opts, number.NoSeparator())
	}
	return message.NewPrinter(f.tag).Sprint(number.Decimal(v, opts...))
}

func (f *NumberFormatter[T]) coerce(value any) (T, bool) {
	if v, ok := value.(T); ok {
		return v, true
	}
	if i, ok := asInt(value); ok {
		return T(i), true
	}
	if !f.isInteger() {
		if fl, ok := asFloat(value); ok {
			return T(fl), true
		}
	}
	var zero T
	return zero, false
}

func (f *NumberFormatter[T]) Pattern() string  { return f.pattern }
func (f *NumberFormatter[T]) TypeName() string { return f.typeName }
