package column

import (
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/csvbind/pkg/replacer"
)

// BuildCase selects the direction a chain is built for.
type BuildCase string

const (
	Read  BuildCase = "read"
	Write BuildCase = "write"
)

// Field describes one column.
type Field struct {
	Name     string `yaml:"name"`
	Label    string `yaml:"label"`
	Number   int    `yaml:"number"`
	Type     string `yaml:"type"`
	Pattern  string `yaml:"pattern"`
	Locale   string `yaml:"locale"`
	Timezone string `yaml:"timezone"`

	Optional bool `yaml:"optional"`
	Trim     bool `yaml:"trim"`

	// Defaults are literals in the field pattern, substituted for empty cells.
	InputDefault  *string `yaml:"input_default"`
	OutputDefault *string `yaml:"output_default"`

	// Conversions name text conversions applied on read, in order.
	Conversions []string        `yaml:"conversions"`
	Replace     []replacer.Rule `yaml:"replace"`

	TrueValues  []string `yaml:"true_values"`
	FalseValues []string `yaml:"false_values"`

	Constraints []Annotation `yaml:"constraints"`
}

// DisplayLabel is the label shown in messages: Label, or Name when unset.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// AnnotationsByGroup returns the annotations of the given kind (all kinds when
// kind is empty) that belong to one of groups, in declaration order.
// Annotations without groups belong to every group; an empty groups list
// selects annotations without groups only.
func (f Field) AnnotationsByGroup(kind string, groups ...string) []Annotation {
	var out []Annotation
	for _, a := range f.Constraints {
		if kind != "" && a.Kind != kind {
			continue
		}
		if !a.InGroups(groups) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Annotation is a declarative constraint attached to a field.
type Annotation struct {
	Kind    string      `yaml:"kind"`
	Message string      `yaml:"message"`
	Groups  []string    `yaml:"groups"`
	Cases   []BuildCase `yaml:"cases"`

	// Attrs keeps every other key of the annotation as a literal.
	Attrs map[string]any `yaml:",inline"`
}

// InGroups reports whether the annotation is active for groups.
func (a Annotation) InGroups(groups []string) bool {
	if len(a.Groups) == 0 {
		return true
	}
	for _, g := range groups {
		if slices.Contains(a.Groups, g) {
			return true
		}
	}
	return false
}

// AppliesTo reports whether the annotation is active for the build case.
// No cases means both.
func (a Annotation) AppliesTo(c BuildCase) bool {
	return len(a.Cases) == 0 || slices.Contains(a.Cases, c)
}

// Attr returns an attribute as text.
func (a Annotation) Attr(name string) (string, bool) {
	v, ok := a.Attrs[name]
	if !ok || v == nil {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	case int:
		return strconv.Itoa(s), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	default:
		return "", false
	}
}

// AttrBool returns a boolean attribute, or def when it is missing.
func (a Annotation) AttrBool(name string, def bool) (bool, error) {
	s, ok := a.Attr(name)
	if !ok {
		return def, nil
	}
	return strconv.ParseBool(strings.TrimSpace(s))
}

// AttrList returns a list attribute. A scalar becomes a one-element list.
func (a Annotation) AttrList(name string) []string {
	v, ok := a.Attrs[name]
	if !ok || v == nil {
		return nil
	}
	items, isList := v.([]any)
	if !isList {
		if s, ok := a.Attr(name); ok {
			return []string{s}
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		single := Annotation{Attrs: map[string]any{"v": item}}
		if s, ok := single.Attr("v"); ok {
			out = append(out, s)
		}
	}
	return out
}

// New returns an annotation of kind with string attributes given as
// alternating name, value pairs.
func New(kind string, attrs ...string) Annotation {
	a := Annotation{Kind: kind, Attrs: make(map[string]any, len(attrs)/2)}
	for i := 0; i+1 < len(attrs); i += 2 {
		a.Attrs[attrs[i]] = attrs[i+1]
	}
	return a
}

// WithMessage returns a copy of a with a message override.
func (a Annotation) WithMessage(message string) Annotation {
	a.Message = message
	return a
}

// WithList returns a copy of a with a list attribute.
func (a Annotation) WithList(name string, values ...string) Annotation {
	attrs := make(map[string]any, len(a.Attrs)+1)
	for k, v := range a.Attrs {
		attrs[k] = v
	}
	items := make([]any, len(values))
	for i, v := range values {
		items[i] = v
	}
	attrs[name] = items
	a.Attrs = attrs
	return a
}
