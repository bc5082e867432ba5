package mapping

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/dmitrymomot/csvbind/pkg/cellproc"
	"github.com/dmitrymomot/csvbind/pkg/column"
	"github.com/dmitrymomot/csvbind/pkg/constraint"
	"github.com/dmitrymomot/csvbind/pkg/format"
	"github.com/dmitrymomot/csvbind/pkg/logger"
	"github.com/dmitrymomot/csvbind/pkg/replacer"
	"github.com/dmitrymomot/csvbind/pkg/sanitizer"
	"github.com/dmitrymomot/csvbind/pkg/seen"
)

// Builder compiles definitions into bean mappings.
type Builder struct {
	registry      *constraint.Registry
	store         seen.Store
	logger        *slog.Logger
	groups        []string
	ignoreWrite   bool
	replaceTables map[string][]replacer.Rule
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithRegistry sets the constraint registry. Defaults to constraint.DefaultRegistry.
func WithRegistry(r *constraint.Registry) BuilderOption {
	return func(b *Builder) {
		if r != nil {
			b.registry = r
		}
	}
}

// WithSeenStore backs unique constraints. Defaults to an in-memory store
// shared by every mapping the builder produces.
func WithSeenStore(s seen.Store) BuilderOption {
	return func(b *Builder) {
		if s != nil {
			b.store = s
		}
	}
}

func WithLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger.OrDiscard(l)
	}
}

// WithGroups selects grouped annotations in addition to ungrouped ones.
func WithGroups(groups ...string) BuilderOption {
	return func(b *Builder) {
		b.groups = append(b.groups, groups...)
	}
}

// WithIgnoreWriteValidation omits constraints from write chains.
func WithIgnoreWriteValidation(ignore bool) BuilderOption {
	return func(b *Builder) {
		b.ignoreWrite = ignore
	}
}

// WithReplaceTable registers a named rule set usable from column conversions.
// Tables declared by a definition take precedence over builder tables.
func WithReplaceTable(name string, rules ...replacer.Rule) BuilderOption {
	return func(b *Builder) {
		b.replaceTables[name] = append(b.replaceTables[name], rules...)
	}
}

// NewBuilder returns a builder with the default registry and a memory store.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		registry:      constraint.DefaultRegistry(),
		logger:        logger.Discard(),
		replaceTables: make(map[string][]replacer.Rule),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.store == nil {
		b.store = seen.NewMemoryStore()
	}
	return b
}

// Build compiles def. Any invalid column aborts the build.
func (b *Builder) Build(def *Definition) (*BeanMapping, error) {
	if def == nil {
		return nil, fmt.Errorf("%w: nil definition", ErrInvalidDefinition)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	tables, err := b.compileTables(def)
	if err != nil {
		return nil, err
	}

	m := &BeanMapping{
		name:   def.Name,
		byName: make(map[string]*Column, len(def.Columns)),
		logger: b.logger,
	}
	for i, field := range def.Columns {
		field.Number = columnNumber(field, i)

		col, err := b.buildColumn(def.Name, field, tables)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", field.Name, err)
		}
		m.columns = append(m.columns, col)
		m.byName[field.Name] = col
		m.width = max(m.width, field.Number)

		b.logger.Debug("column compiled",
			logger.Component("mapping"),
			logger.Field(field.Name),
			logger.Column(field.Number),
			slog.Any("read", col.Read.Names()),
			slog.Any("write", col.Write.Names()),
		)
	}
	slices.SortFunc(m.columns, func(a, b *Column) int {
		return cmp.Compare(a.Field.Number, b.Field.Number)
	})

	return m, nil
}

func (b *Builder) compileTables(def *Definition) (map[string]*replacer.CharReplacer, error) {
	merged := maps.Clone(b.replaceTables)
	maps.Copy(merged, def.ReplaceTables)

	tables := make(map[string]*replacer.CharReplacer, len(merged))
	for name, rules := range merged {
		r, err := replacer.NewFromRules(rules...)
		if err != nil {
			return nil, fmt.Errorf("%w: replace table %q: %w", ErrInvalidDefinition, name, err)
		}
		tables[name] = r
	}
	return tables, nil
}

func (b *Builder) buildColumn(scope string, field column.Field, tables map[string]*replacer.CharReplacer) (*Column, error) {
	f, err := format.New(format.Spec{
		Type:        field.Type,
		Pattern:     field.Pattern,
		Locale:      field.Locale,
		Timezone:    field.Timezone,
		TrueValues:  field.TrueValues,
		FalseValues: field.FalseValues,
	})
	if err != nil {
		return nil, err
	}

	read, err := b.readChain(scope, field, f, tables)
	if err != nil {
		return nil, err
	}
	write, err := b.writeChain(scope, field, f)
	if err != nil {
		return nil, err
	}

	return &Column{Field: field, Formatter: f, Read: read, Write: write}, nil
}

func (b *Builder) readChain(scope string, field column.Field, f format.Formatter, tables map[string]*replacer.CharReplacer) (cellproc.Chain, error) {
	chain := cellproc.NewChain(field.Name, field.DisplayLabel())

	if field.Trim {
		chain = chain.Append(cellproc.Trim())
	}

	convs, err := conversions(field, tables)
	if err != nil {
		return chain, err
	}
	chain = chain.Append(convs...)

	if field.InputDefault != nil {
		def, err := f.Parse(*field.InputDefault)
		if err != nil {
			return chain, errors.Join(fmt.Errorf("%w: input default %q", ErrInvalidDefault, *field.InputDefault), err)
		}
		chain = chain.Append(cellproc.DefaultValue(def))
	}

	chain = chain.Append(presence(field), cellproc.Parse(f))

	return b.registry.Apply(chain, field, f, b.options(scope, column.Read))
}

func (b *Builder) writeChain(scope string, field column.Field, f format.Formatter) (cellproc.Chain, error) {
	chain := cellproc.NewChain(field.Name, field.DisplayLabel())

	if field.OutputDefault != nil {
		if _, err := f.Parse(*field.OutputDefault); err != nil {
			return chain, errors.Join(fmt.Errorf("%w: output default %q", ErrInvalidDefault, *field.OutputDefault), err)
		}
		chain = chain.Append(cellproc.DefaultValue(*field.OutputDefault))
	}

	chain = chain.Append(presence(field))

	chain, err := b.registry.Apply(chain, field, f, b.options(scope, column.Write))
	if err != nil {
		return chain, err
	}

	chain = chain.Append(cellproc.Format(f))
	if field.Trim {
		chain = chain.Append(cellproc.Trim())
	}
	return chain, nil
}

func (b *Builder) options(scope string, c column.BuildCase) constraint.BuildOptions {
	return constraint.BuildOptions{
		Case:             c,
		IgnoreValidation: b.ignoreWrite,
		Groups:           b.groups,
		Seen:             b.store,
		Scope:            scope,
		Logger:           b.logger,
	}
}

func presence(field column.Field) cellproc.Step {
	if field.Optional {
		return cellproc.Optional()
	}
	return cellproc.Required()
}

// conversions resolves the field's replace rules and named conversions.
// Inline rules run first, then conversions in declaration order.
func conversions(field column.Field, tables map[string]*replacer.CharReplacer) ([]cellproc.Step, error) {
	var steps []cellproc.Step

	if len(field.Replace) > 0 {
		r, err := replacer.NewFromRules(field.Replace...)
		if err != nil {
			return nil, err
		}
		steps = append(steps, cellproc.Convert("replace", r.Replace))
	}

	for _, name := range field.Conversions {
		if fn, ok := sanitizer.Lookup(name); ok {
			steps = append(steps, cellproc.Convert(name, fn))
			continue
		}
		if r, ok := tables[name]; ok {
			steps = append(steps, cellproc.Convert(name, r.Replace))
			continue
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownConversion, name)
	}
	return steps, nil
}
