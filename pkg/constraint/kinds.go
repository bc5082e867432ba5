package constraint

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/csvbind/pkg/cellproc"
	"github.com/dmitrymomot/csvbind/pkg/format"
	"github.com/dmitrymomot/csvbind/pkg/seen"
)

// equals accepts values equal to one of the "values" literals.
func equals(a attrs, _ BuildOptions) (*check, error) {
	literals := append(a.anno.AttrList("value"), a.anno.AttrList("values")...)
	if len(literals) == 0 {
		return nil, a.fail("values", "", "at least one value is required", nil)
	}

	allowed := make([]any, 0, len(literals))
	printed := make([]string, 0, len(literals))
	for _, literal := range literals {
		v, err := a.f.Parse(strings.TrimSpace(literal))
		if err != nil {
			e := a.fail("values", literal, "", err)
			e.TypeName = a.f.TypeName()
			e.Pattern = a.f.Pattern()
			return nil, e
		}
		allowed = append(allowed, v)
		printed = append(printed, a.print(v))
	}

	vars := map[string]any{"values": strings.Join(printed, ", ")}
	return newCheck(a, vars, func(_ context.Context, v any, _ cellproc.Cell) (bool, map[string]any, error) {
		for _, want := range allowed {
			c, err := format.Compare(v, want)
			if err != nil {
				return false, nil, err
			}
			if c == 0 {
				return true, nil, nil
			}
		}
		return false, nil, nil
	}), nil
}

// unique rejects a value already produced by the column in this session.
func unique(a attrs, opts BuildOptions) (*check, error) {
	store := opts.Seen
	if store == nil {
		store = seen.NewMemoryStore()
	}
	table := opts.Table(a.field.Name)

	return newCheck(a, map[string]any{}, func(ctx context.Context, v any, cell cellproc.Cell) (bool, map[string]any, error) {
		key, err := text(a.f, v)
		if err != nil {
			return false, nil, err
		}
		first, dup, err := store.Seen(ctx, table, key, cell.RowNumber)
		if err != nil {
			return false, nil, err
		}
		if dup {
			return false, map[string]any{"duplicatedRowNumber": first}, nil
		}
		return true, nil, nil
	}), nil
}

// pattern requires the whole text of the value to match "regex".
func pattern(a attrs, _ BuildOptions) (*check, error) {
	expr, ok := a.anno.Attr("regex")
	if !ok || expr == "" {
		return nil, a.fail("regex", "", "attribute is required", nil)
	}
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		e := a.fail("regex", expr, "", err)
		e.TypeName = "regular expression"
		return nil, e
	}
	description, _ := a.anno.Attr("description")
	if description == "" {
		description = expr
	}

	vars := map[string]any{"regex": expr, "description": description}
	return newCheck(a, vars, func(_ context.Context, v any, _ cellproc.Cell) (bool, map[string]any, error) {
		s, err := text(a.f, v)
		if err != nil {
			return false, nil, err
		}
		return re.MatchString(s), nil, nil
	}), nil
}

func runeLength(a attrs, v any) (int, error) {
	s, err := text(a.f, v)
	if err != nil {
		return 0, err
	}
	return utf8.RuneCountInString(s), nil
}

func lengthBetween(a attrs, _ BuildOptions) (*check, error) {
	lo, ok, err := a.length("min")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, a.fail("min", "", "attribute is required", nil)
	}
	hi, ok, err := a.length("max")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, a.fail("max", "", "attribute is required", nil)
	}
	if lo > hi {
		return nil, a.fail("min", strconv.Itoa(lo),
			fmt.Sprintf("min (%d) must not be greater than max (%d)", lo, hi), ErrInvalidRange)
	}

	vars := map[string]any{"min": lo, "max": hi}
	return newCheck(a, vars, func(_ context.Context, v any, _ cellproc.Cell) (bool, map[string]any, error) {
		n, err := runeLength(a, v)
		if err != nil {
			return false, nil, err
		}
		return lo <= n && n <= hi, map[string]any{"length": n}, nil
	}), nil
}

func lengthExact(a attrs, _ BuildOptions) (*check, error) {
	literals := a.anno.AttrList("value")
	if len(literals) == 0 {
		return nil, a.fail("value", "", "at least one length is required", nil)
	}
	lengths := make([]int, 0, len(literals))
	printed := make([]string, 0, len(literals))
	for _, literal := range literals {
		n, err := strconv.Atoi(strings.TrimSpace(literal))
		if err != nil || n < 0 {
			e := a.fail("value", literal, "", err)
			e.TypeName = "non-negative int"
			return nil, e
		}
		lengths = append(lengths, n)
		printed = append(printed, strconv.Itoa(n))
	}

	vars := map[string]any{"lengths": strings.Join(printed, ", ")}
	return newCheck(a, vars, func(_ context.Context, v any, _ cellproc.Cell) (bool, map[string]any, error) {
		n, err := runeLength(a, v)
		if err != nil {
			return false, nil, err
		}
		for _, want := range lengths {
			if n == want {
				return true, nil, nil
			}
		}
		return false, map[string]any{"length": n}, nil
	}), nil
}

// lengthBound builds length_min (isMin) or length_max from attribute "value".
func lengthBound(isMin bool) stepBuilder {
	return func(a attrs, _ BuildOptions) (*check, error) {
		limit, ok, err := a.length("value")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, a.fail("value", "", "attribute is required", nil)
		}

		name := "max"
		if isMin {
			name = "min"
		}
		return newCheck(a, map[string]any{name: limit}, func(_ context.Context, v any, _ cellproc.Cell) (bool, map[string]any, error) {
			n, err := runeLength(a, v)
			if err != nil {
				return false, nil, err
			}
			extra := map[string]any{"length": n}
			if isMin {
				return n >= limit, extra, nil
			}
			return n <= limit, extra, nil
		}), nil
	}
}

// forbidWords rejects text containing any of "words".
func forbidWords(a attrs, _ BuildOptions) (*check, error) {
	words := a.anno.AttrList("words")
	if len(words) == 0 {
		return nil, a.fail("words", "", "at least one word is required", nil)
	}
	ignoreCase, err := a.boolean("ignore_case", false)
	if err != nil {
		return nil, err
	}

	return newCheck(a, map[string]any{}, func(_ context.Context, v any, _ cellproc.Cell) (bool, map[string]any, error) {
		s, err := text(a.f, v)
		if err != nil {
			return false, nil, err
		}
		if ignoreCase {
			s = strings.ToLower(s)
		}
		var found []string
		for _, w := range words {
			needle := w
			if ignoreCase {
				needle = strings.ToLower(w)
			}
			if strings.Contains(s, needle) {
				found = append(found, w)
			}
		}
		if len(found) == 0 {
			return true, nil, nil
		}
		return false, map[string]any{"words": strings.Join(found, ", ")}, nil
	}), nil
}
