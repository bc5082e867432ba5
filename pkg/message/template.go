package message

import (
	"errors"
	"fmt"
	"strings"
)

type segmentKind int

const (
	segText segmentKind = iota
	segVar
	segExpr
)

type segment struct {
	kind segmentKind
	// text is the literal, the variable name, or the raw token for
	// expressions and is written verbatim when evaluation fails.
	text string
	expr node
}

// Template is a compiled message template.
type Template struct {
	source   string
	segments []segment
	// errs holds ${...} tokens that failed to parse; they render verbatim.
	errs []error
}

// Compile scans a template for {name} and ${expr} tokens. A backslash
// escapes the next character. Malformed tokens are kept as text and
// reported by Err.
func Compile(src string) *Template {
	t := &Template{source: src}
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			t.segments = append(t.segments, segment{kind: segText, text: text.String()})
			text.Reset()
		}
	}

	runes := []rune(src)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\' && i+1 < len(runes):
			i++
			text.WriteRune(runes[i])

		case r == '$' && i+1 < len(runes) && runes[i+1] == '{':
			end := closingBrace(runes, i+2)
			if end < 0 {
				text.WriteString(string(runes[i:]))
				i = len(runes)
				continue
			}
			raw := string(runes[i : end+1])
			n, err := parseExpr(string(runes[i+2 : end]))
			if err != nil {
				t.errs = append(t.errs, fmt.Errorf("%s: %w", raw, err))
				text.WriteString(raw)
			} else {
				flush()
				t.segments = append(t.segments, segment{kind: segExpr, text: raw, expr: n})
			}
			i = end

		case r == '{':
			end := i + 1
			for end < len(runes) && isNamePart(runes[end]) {
				end++
			}
			if end == i+1 || end >= len(runes) || runes[end] != '}' || !isNameStart(runes[i+1]) {
				text.WriteRune(r)
				continue
			}
			flush()
			t.segments = append(t.segments, segment{kind: segVar, text: string(runes[i+1 : end])})
			i = end

		default:
			text.WriteRune(r)
		}
	}
	flush()
	return t
}

// closingBrace finds the } ending an expression that starts at from,
// skipping quoted strings.
func closingBrace(runes []rune, from int) int {
	var quote rune
	for i := from; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			if r == '\\' {
				i++
			} else if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '}':
			return i
		}
	}
	return -1
}

// Source returns the template text.
func (t *Template) Source() string { return t.source }

// Err reports expressions that failed to compile.
func (t *Template) Err() error { return errors.Join(t.errs...) }

// Execute renders the template. Tokens that cannot be resolved are written
// verbatim and reported in the returned error; the string is always usable.
func (t *Template) Execute(vars map[string]any) (string, error) {
	var b strings.Builder
	var errs []error
	for _, s := range t.segments {
		switch s.kind {
		case segText:
			b.WriteString(s.text)
		case segVar:
			v, ok := vars[s.text]
			if !ok {
				errs = append(errs, fmt.Errorf("{%s}: %w: %s", s.text, ErrUnknownVariable, s.text))
				b.WriteString("{" + s.text + "}")
				continue
			}
			b.WriteString(Stringify(v))
		case segExpr:
			v, err := s.expr.eval(vars)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", s.text, err))
				b.WriteString(s.text)
				continue
			}
			b.WriteString(Stringify(v))
		}
	}
	return b.String(), errors.Join(errs...)
}

// Interpolate compiles and executes src in one go.
func Interpolate(src string, vars map[string]any) (string, error) {
	t := Compile(src)
	out, err := t.Execute(vars)
	return out, errors.Join(t.Err(), err)
}
