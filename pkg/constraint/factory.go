package constraint

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"strings"

	"github.com/dmitrymomot/csvbind/pkg/cellproc"
	"github.com/dmitrymomot/csvbind/pkg/column"
	"github.com/dmitrymomot/csvbind/pkg/format"
	"github.com/dmitrymomot/csvbind/pkg/seen"
)

// KeyPrefix prefixes the message key of every constraint kind.
const KeyPrefix = "csv.constraint."

// BuildOptions carries the build context shared by every factory.
type BuildOptions struct {
	// Case is the direction the chain is built for. Empty means read.
	Case column.BuildCase
	// IgnoreValidation omits constraints from write chains.
	IgnoreValidation bool
	// Groups selects annotations by group in Registry.Apply.
	Groups []string
	// Seen backs the unique constraint. A memory store is created when nil.
	Seen seen.Store
	// Scope namespaces unique tables, usually the mapping name.
	Scope  string
	Logger *slog.Logger
}

func (o BuildOptions) buildCase() column.BuildCase {
	if o.Case == "" {
		return column.Read
	}
	return o.Case
}

// Table names the unique table of field: scope, build case and field joined
// by "/". Read and write chains of one mapping never share a table.
func (o BuildOptions) Table(field string) string {
	t := string(o.buildCase()) + "/" + field
	if o.Scope != "" {
		t = o.Scope + "/" + t
	}
	return t
}

// Enabled reports whether anno produces a step for this build.
func (o BuildOptions) Enabled(anno column.Annotation) bool {
	c := o.buildCase()
	if c == column.Write && o.IgnoreValidation {
		return false
	}
	return anno.AppliesTo(c)
}

func (o BuildOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Factory appends the step for one annotation to a chain.
type Factory interface {
	Create(chain cellproc.Chain, anno column.Annotation, field column.Field, f format.Formatter, opts BuildOptions) (cellproc.Chain, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(chain cellproc.Chain, anno column.Annotation, field column.Field, f format.Formatter, opts BuildOptions) (cellproc.Chain, error)

func (fn FactoryFunc) Create(chain cellproc.Chain, anno column.Annotation, field column.Field, f format.Formatter, opts BuildOptions) (cellproc.Chain, error) {
	return fn(chain, anno, field, f, opts)
}

// stepBuilder builds the validator of one kind once the annotation is enabled.
type stepBuilder func(a attrs, opts BuildOptions) (*check, error)

// guarded wraps a stepBuilder with the enable check every kind shares.
func guarded(build stepBuilder) Factory {
	return FactoryFunc(func(chain cellproc.Chain, anno column.Annotation, field column.Field, f format.Formatter, opts BuildOptions) (cellproc.Chain, error) {
		if !opts.Enabled(anno) {
			opts.logger().Debug("constraint omitted",
				slog.String("field", field.Name),
				slog.String("kind", anno.Kind),
				slog.String("case", string(opts.Case)),
			)
			return chain, nil
		}
		c, err := build(attrs{anno: anno, field: field, f: f}, opts)
		if err != nil {
			return chain, err
		}
		return chain.Append(cellproc.Validate(c)), nil
	})
}

// check is the validator appended by every built-in kind.
type check struct {
	kind    string
	message string
	printer format.Printer
	vars    map[string]any
	test    func(ctx context.Context, v any, cell cellproc.Cell) (ok bool, extra map[string]any, err error)
}

func newCheck(a attrs, vars map[string]any, test func(ctx context.Context, v any, cell cellproc.Cell) (bool, map[string]any, error)) *check {
	return &check{
		kind:    a.anno.Kind,
		message: a.anno.Message,
		printer: a.f,
		vars:    vars,
		test:    test,
	}
}

func (c *check) Name() string { return c.kind }

// Validate skips empty values; required and optional steps own those.
func (c *check) Validate(ctx context.Context, v any, cell cellproc.Cell) error {
	if cellproc.IsEmpty(v) {
		return nil
	}
	ok, extra, err := c.test(ctx, v, cell)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	vars := make(map[string]any, len(c.vars)+len(extra))
	maps.Copy(vars, c.vars)
	maps.Copy(vars, extra)
	return &cellproc.ValidationError{
		Kind:           cellproc.KindValidation,
		Constraint:     c.kind,
		MessageKey:     KeyPrefix + c.kind,
		Message:        c.message,
		Variables:      vars,
		Printer:        c.printer,
		ValidatedValue: v,
	}
}

// attrs reads annotation attributes for one field.
type attrs struct {
	anno  column.Annotation
	field column.Field
	f     format.Formatter
}

func (a attrs) fail(attr, literal, reason string, err error) *AnnotationError {
	return &AnnotationError{
		Field:   a.field.Name,
		Kind:    a.anno.Kind,
		Attr:    attr,
		Literal: literal,
		Reason:  reason,
		Err:     err,
	}
}

// value parses attribute name through the field formatter.
func (a attrs) value(name string) (any, bool, error) {
	literal, ok := a.anno.Attr(name)
	if !ok {
		return nil, false, nil
	}
	v, err := a.f.Parse(strings.TrimSpace(literal))
	if err != nil {
		e := a.fail(name, literal, "", err)
		e.TypeName = a.f.TypeName()
		e.Pattern = a.f.Pattern()
		return nil, true, e
	}
	return v, true, nil
}

func (a attrs) requiredValue(name string) (any, error) {
	v, ok, err := a.value(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, a.fail(name, "", "attribute is required", nil)
	}
	return v, nil
}

// length reads a non-negative integer attribute. Lengths are plain integers
// regardless of the column pattern.
func (a attrs) length(name string) (int, bool, error) {
	literal, ok := a.anno.Attr(name)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(literal))
	if err != nil {
		e := a.fail(name, literal, "", err)
		e.TypeName = "int"
		return 0, true, e
	}
	if n < 0 {
		return 0, true, a.fail(name, literal, "length must not be negative", nil)
	}
	return n, true, nil
}

func (a attrs) boolean(name string, def bool) (bool, error) {
	v, err := a.anno.AttrBool(name, def)
	if err != nil {
		literal, _ := a.anno.Attr(name)
		e := a.fail(name, literal, "", err)
		e.TypeName = "bool"
		return false, e
	}
	return v, nil
}

// print renders v with the field formatter, falling back to %v.
func (a attrs) print(v any) string {
	if s, err := a.f.Print(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

// text is the representation length, pattern and word checks look at.
func text(f format.Printer, v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return f.Print(v)
}
