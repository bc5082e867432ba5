package message

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/dmitrymomot/csvbind/pkg/format"
)

// The ${...} language: literals, names, !, + (numeric add or string
// concatenation), cond ? a : b, parentheses and printer.print(x).
//
//	expr    = concat [ "?" expr ":" expr ]
//	concat  = unary { "+" unary }
//	unary   = "!" unary | postfix
//	postfix = primary [ "." name "(" expr ")" ]
//	primary = string | number | "true" | "false" | "null" | name | "(" expr ")"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName
	tokString
	tokNumber
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func lex(src string) ([]token, error) {
	var toks []token
	runes := []rune(src)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '\'' || r == '"':
			var b strings.Builder
			j := i + 1
			for ; j < len(runes) && runes[j] != r; j++ {
				if runes[j] == '\\' && j+1 < len(runes) {
					j++
				}
				b.WriteRune(runes[j])
			}
			if j >= len(runes) {
				return nil, fmt.Errorf("%w: unterminated string at %d", ErrSyntax, i)
			}
			toks = append(toks, token{kind: tokString, text: b.String(), pos: i})
			i = j + 1
		case unicode.IsDigit(r):
			j := i
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			toks = append(toks, token{kind: tokNumber, text: string(runes[i:j]), pos: i})
			i = j
		case isNameStart(r):
			j := i
			for j < len(runes) && isNamePart(runes[j]) {
				j++
			}
			toks = append(toks, token{kind: tokName, text: string(runes[i:j]), pos: i})
			i = j
		case strings.ContainsRune("!+?:().", r):
			toks = append(toks, token{kind: tokPunct, text: string(r), pos: i})
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, r, i)
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(runes)}), nil
}

func isNameStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isNamePart(r rune) bool  { return isNameStart(r) || unicode.IsDigit(r) }

// node is a parsed expression.
type node interface {
	eval(vars map[string]any) (any, error)
}

type (
	literal struct{ value any }
	ident   struct{ name string }
	not     struct{ x node }
	plus    struct{ x, y node }
	cond    struct{ test, then, otherwise node }
	call    struct {
		recv   node
		method string
		arg    node
	}
)

type parser struct {
	toks []token
	pos  int
}

func parseExpr(src string) (node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, t.text, t.pos)
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) accept(punct string) bool {
	if t := p.peek(); t.kind == tokPunct && t.text == punct {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(punct string) error {
	if !p.accept(punct) {
		t := p.peek()
		return fmt.Errorf("%w: expected %q at %d", ErrSyntax, punct, t.pos)
	}
	return nil
}

func (p *parser) expr() (node, error) {
	test, err := p.concat()
	if err != nil {
		return nil, err
	}
	if !p.accept("?") {
		return test, nil
	}
	then, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	otherwise, err := p.expr()
	if err != nil {
		return nil, err
	}
	return cond{test: test, then: then, otherwise: otherwise}, nil
}

func (p *parser) concat() (node, error) {
	x, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.accept("+") {
		y, err := p.unary()
		if err != nil {
			return nil, err
		}
		x = plus{x: x, y: y}
	}
	return x, nil
}

func (p *parser) unary() (node, error) {
	if p.accept("!") {
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return not{x: x}, nil
	}
	return p.postfix()
}

func (p *parser) postfix() (node, error) {
	x, err := p.primary()
	if err != nil {
		return nil, err
	}
	if !p.accept(".") {
		return x, nil
	}
	t := p.next()
	if t.kind != tokName {
		return nil, fmt.Errorf("%w: expected method name at %d", ErrSyntax, t.pos)
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	arg, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return call{recv: x, method: t.text, arg: arg}, nil
}

func (p *parser) primary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokString:
		return literal{value: t.text}, nil
	case tokNumber:
		if n, err := strconv.ParseInt(t.text, 10, 64); err == nil {
			return literal{value: n}, nil
		}
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %q at %d", ErrSyntax, t.text, t.pos)
		}
		return literal{value: f}, nil
	case tokName:
		switch t.text {
		case "true":
			return literal{value: true}, nil
		case "false":
			return literal{value: false}, nil
		case "null", "nil":
			return literal{value: nil}, nil
		}
		return ident{name: t.text}, nil
	case tokPunct:
		if t.text == "(" {
			x, err := p.expr()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return x, nil
		}
	}
	if t.kind == tokEOF {
		return nil, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}
	return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, t.text, t.pos)
}

func (n literal) eval(map[string]any) (any, error) { return n.value, nil }

func (n ident) eval(vars map[string]any) (any, error) {
	v, ok := vars[n.name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariable, n.name)
	}
	return v, nil
}

func (n not) eval(vars map[string]any) (any, error) {
	v, err := n.x.eval(vars)
	if err != nil {
		return nil, err
	}
	return !truthy(v), nil
}

func (n plus) eval(vars map[string]any) (any, error) {
	x, err := n.x.eval(vars)
	if err != nil {
		return nil, err
	}
	y, err := n.y.eval(vars)
	if err != nil {
		return nil, err
	}
	if a, ok := x.(int64); ok {
		if b, ok := y.(int64); ok {
			return a + b, nil
		}
	}
	return Stringify(x) + Stringify(y), nil
}

func (n cond) eval(vars map[string]any) (any, error) {
	test, err := n.test.eval(vars)
	if err != nil {
		return nil, err
	}
	if truthy(test) {
		return n.then.eval(vars)
	}
	return n.otherwise.eval(vars)
}

func (n call) eval(vars map[string]any) (any, error) {
	recv, err := n.recv.eval(vars)
	if err != nil {
		return nil, err
	}
	printer, ok := recv.(format.Printer)
	if !ok || n.method != "print" {
		return nil, fmt.Errorf("%w: %s on %T", ErrUnsupportedCall, n.method, recv)
	}
	arg, err := n.arg.eval(vars)
	if err != nil {
		return nil, err
	}
	if arg == nil {
		return "", nil
	}
	s, err := printer.Print(arg)
	if err != nil {
		// Values the printer does not handle are shown as they are.
		return Stringify(arg), nil
	}
	return s, nil
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	default:
		return true
	}
}

// Stringify renders a variable for {name} substitution: nil is empty,
// strings and Stringers as themselves, everything else through fmt.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
