package constraint

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/csvbind/pkg/cellproc"
	"github.com/dmitrymomot/csvbind/pkg/format"
)

var (
	numericTypes  = []string{"int", "int32", "int64", "float32", "float64"}
	temporalTypes = []string{"date", "datetime", "time"}
)

// Now is the clock behind the "now" literal of datetime bounds.
var Now = time.Now

func numberBounds(hasMin, hasMax bool) stepBuilder {
	return bounds(numericTypes, hasMin, hasMax)
}

func dateTimeBounds(hasMin, hasMax bool) stepBuilder {
	return bounds(temporalTypes, hasMin, hasMax)
}

// bound is one end of a range. A "now" literal on a temporal column is
// resolved on every check, truncated to the column precision.
type bound struct {
	value any
	now   bool
}

func (b bound) resolve(f format.Formatter) (any, error) {
	if !b.now {
		return b.value, nil
	}
	s, err := f.Print(Now())
	if err != nil {
		return nil, err
	}
	return f.Parse(s)
}

func readBound(a attrs, name string, temporal bool) (bound, error) {
	literal, ok := a.anno.Attr(name)
	if ok && temporal && strings.EqualFold(strings.TrimSpace(literal), "now") {
		return bound{now: true}, nil
	}
	v, err := a.requiredValue(name)
	if err != nil {
		return bound{}, err
	}
	return bound{value: v}, nil
}

func compareAny(a, b any) int {
	c, _ := format.Compare(a, b)
	return c
}

func bounds(types []string, hasMin, hasMax bool) stepBuilder {
	return func(a attrs, _ BuildOptions) (*check, error) {
		typeName := a.f.TypeName()
		if !slices.Contains(types, typeName) {
			return nil, a.fail("", "", fmt.Sprintf("not applicable to %s columns", typeName), nil)
		}
		temporal := slices.Contains(temporalTypes, typeName)

		inclusive, err := a.boolean("inclusive", true)
		if err != nil {
			return nil, err
		}
		vars := map[string]any{"inclusive": inclusive}

		var lo, hi bound
		if hasMin {
			if lo, err = readBound(a, "min", temporal); err != nil {
				return nil, err
			}
			vars["min"] = lo.value
		}
		if hasMax {
			if hi, err = readBound(a, "max", temporal); err != nil {
				return nil, err
			}
			vars["max"] = hi.value
		}
		if hasMin && hasMax && !lo.now && !hi.now {
			if _, err := NewRange(lo.value, hi.value, inclusive, compareAny); err != nil {
				minLiteral, _ := a.anno.Attr("min")
				return nil, a.fail("min", minLiteral,
					fmt.Sprintf("min (%s) must not be greater than max (%s)", a.print(lo.value), a.print(hi.value)),
					ErrInvalidRange)
			}
		}

		return newCheck(a, vars, func(_ context.Context, v any, _ cellproc.Cell) (bool, map[string]any, error) {
			var err error
			extra := map[string]any{}
			r := Range[any]{Inclusive: inclusive}
			if hasMin {
				if r.Min, err = lo.resolve(a.f); err != nil {
					return false, nil, err
				}
				if _, err := format.Compare(v, r.Min); err != nil {
					return false, nil, err
				}
				extra["min"] = r.Min
			}
			if hasMax {
				if r.Max, err = hi.resolve(a.f); err != nil {
					return false, nil, err
				}
				if _, err := format.Compare(v, r.Max); err != nil {
					return false, nil, err
				}
				extra["max"] = r.Max
			}

			switch {
			case hasMin && hasMax:
				return r.Contains(v, compareAny), extra, nil
			case hasMin:
				c := compareAny(v, r.Min)
				return c > 0 || inclusive && c == 0, extra, nil
			default:
				c := compareAny(v, r.Max)
				return c < 0 || inclusive && c == 0, extra, nil
			}
		}), nil
	}
}
