package format

import (
	"fmt"
	"strings"
	"time"
)

// DateTimeFormatter reads and writes time.Time values using a date pattern
// such as "yyyy-MM-dd" or "yy/M/d HH:mm".
type DateTimeFormatter struct {
	typeName string
	pattern  string
	layout   string
	location *time.Location
}

// NewDateTimeFormatter compiles pattern into a Go layout. Timezone is an IANA
// name; empty means UTC.
func NewDateTimeFormatter(typeName, pattern, timezone string) (*DateTimeFormatter, error) {
	layout, err := Layout(pattern)
	if err != nil {
		return nil, err
	}

	loc := time.UTC
	if timezone != "" {
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidLocale, timezone, err)
		}
	}

	return &DateTimeFormatter{
		typeName: typeName,
		pattern:  pattern,
		layout:   layout,
		location: loc,
	}, nil
}

func (f *DateTimeFormatter) Parse(text string) (any, error) {
	t, err := time.ParseInLocation(f.layout, text, f.location)
	if err != nil {
		return nil, &ParseError{Text: text, TypeName: f.typeName, Pattern: f.pattern, Err: err}
	}
	return t, nil
}

func (f *DateTimeFormatter) Print(value any) (string, error) {
	t, ok := value.(time.Time)
	if !ok {
		return "", printError(value, f.typeName)
	}
	return t.In(f.location).Format(f.layout), nil
}

func (f *DateTimeFormatter) Pattern() string          { return f.pattern }
func (f *DateTimeFormatter) TypeName() string         { return f.typeName }
func (f *DateTimeFormatter) Layout() string           { return f.layout }
func (f *DateTimeFormatter) Location() *time.Location { return f.location }

// Layout translates a date pattern into a Go reference layout.
// Text inside single quotes is literal; '' is a single quote.
func Layout(pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("%w: empty date pattern", ErrInvalidPattern)
	}

	var b strings.Builder
	runes := []rune(pattern)

	for i := 0; i < len(runes); {
		c := runes[i]

		if c == '\'' {
			if i+1 < len(runes) && runes[i+1] == '\'' {
				b.WriteRune('\'')
				i += 2
				continue
			}
			end := i + 1
			for end < len(runes) && runes[end] != '\'' {
				end++
			}
			if end == len(runes) {
				return "", fmt.Errorf("%w: %q: unterminated quote", ErrInvalidPattern, pattern)
			}
			b.WriteString(string(runes[i+1 : end]))
			i = end + 1
			continue
		}

		if !isASCIILetter(c) {
			b.WriteRune(c)
			i++
			continue
		}

		n := 1
		for i+n < len(runes) && runes[i+n] == c {
			n++
		}

		elem, err := layoutElement(c, n, b.String())
		if err != nil {
			return "", fmt.Errorf("%w: %q: %w", ErrInvalidPattern, pattern, err)
		}
		b.WriteString(elem)
		i += n
	}

	return b.String(), nil
}

func isASCIILetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func layoutElement(c rune, n int, prefix string) (string, error) {
	switch c {
	case 'y', 'u':
		if n == 2 {
			return "06", nil
		}
		return "2006", nil
	case 'M', 'L':
		switch n {
		case 1:
			return "1", nil
		case 2:
			return "01", nil
		case 3:
			return "Jan", nil
		default:
			return "January", nil
		}
	case 'd':
		if n == 1 {
			return "2", nil
		}
		return "02", nil
	case 'H':
		return "15", nil
	case 'h':
		if n == 1 {
			return "3", nil
		}
		return "03", nil
	case 'm':
		if n == 1 {
			return "4", nil
		}
		return "04", nil
	case 's':
		if n == 1 {
			return "5", nil
		}
		return "05", nil
	case 'S':
		if !strings.HasSuffix(prefix, ".") && !strings.HasSuffix(prefix, ",") {
			return "", fmt.Errorf("fraction %q must follow '.' or ','", strings.Repeat("S", n))
		}
		return strings.Repeat("0", n), nil
	case 'a':
		return "PM", nil
	case 'E':
		if n >= 4 {
			return "Monday", nil
		}
		return "Mon", nil
	case 'Z':
		return "-0700", nil
	case 'X':
		switch n {
		case 1:
			return "Z07", nil
		case 2:
			return "Z0700", nil
		default:
			return "Z07:00", nil
		}
	case 'z':
		return "MST", nil
	default:
		return "", fmt.Errorf("unsupported letter %q", c)
	}
}
