package constraint

import (
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrymomot/csvbind/pkg/cellproc"
	"github.com/dmitrymomot/csvbind/pkg/column"
	"github.com/dmitrymomot/csvbind/pkg/format"
)

// Built-in annotation kinds.
const (
	KindNumberRange   = "number_range"
	KindNumberMin     = "number_min"
	KindNumberMax     = "number_max"
	KindDateTimeRange = "datetime_range"
	KindDateTimeMin   = "datetime_min"
	KindDateTimeMax   = "datetime_max"
	KindEquals        = "equals"
	KindUnique        = "unique"
	KindPattern       = "pattern"
	KindLengthBetween = "length_between"
	KindLengthExact   = "length_exact"
	KindLengthMax     = "length_max"
	KindLengthMin     = "length_min"
	KindForbidWords   = "forbid_words"
)

// Registry maps annotation kinds to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry holding every built-in kind.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(KindNumberRange, guarded(numberBounds(true, true)))
	r.MustRegister(KindNumberMin, guarded(numberBounds(true, false)))
	r.MustRegister(KindNumberMax, guarded(numberBounds(false, true)))
	r.MustRegister(KindDateTimeRange, guarded(dateTimeBounds(true, true)))
	r.MustRegister(KindDateTimeMin, guarded(dateTimeBounds(true, false)))
	r.MustRegister(KindDateTimeMax, guarded(dateTimeBounds(false, true)))
	r.MustRegister(KindEquals, guarded(equals))
	r.MustRegister(KindUnique, guarded(unique))
	r.MustRegister(KindPattern, guarded(pattern))
	r.MustRegister(KindLengthBetween, guarded(lengthBetween))
	r.MustRegister(KindLengthExact, guarded(lengthExact))
	r.MustRegister(KindLengthMax, guarded(lengthBound(false)))
	r.MustRegister(KindLengthMin, guarded(lengthBound(true)))
	r.MustRegister(KindForbidWords, guarded(forbidWords))
	return r
}

// Register adds a factory for kind. Kinds can be registered once.
func (r *Registry) Register(kind string, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[kind]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKind, kind)
	}
	r.factories[kind] = f
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(kind string, f Factory) {
	if err := r.Register(kind, f); err != nil {
		panic(err)
	}
}

// Lookup returns the factory for kind.
func (r *Registry) Lookup(kind string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return f, nil
}

// Kinds returns the registered kinds sorted by name.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.factories))
	for k := range r.factories {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Apply appends the steps of every field annotation selected by
// opts.Groups, in declaration order. The first error aborts the build.
func (r *Registry) Apply(chain cellproc.Chain, field column.Field, f format.Formatter, opts BuildOptions) (cellproc.Chain, error) {
	for _, anno := range field.AnnotationsByGroup("", opts.Groups...) {
		factory, err := r.Lookup(anno.Kind)
		if err != nil {
			return chain, &AnnotationError{Field: field.Name, Kind: anno.Kind, Err: err}
		}
		chain, err = factory.Create(chain, anno, field, f, opts)
		if err != nil {
			return chain, err
		}
	}
	return chain, nil
}
