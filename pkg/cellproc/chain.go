package cellproc

import (
	"context"
	"errors"
	"slices"
)

// StepKind tags what a step does.
type StepKind string

const (
	StepTrim     StepKind = "trim"
	StepConvert  StepKind = "convert"
	StepDefault  StepKind = "default"
	StepOptional StepKind = "optional"
	StepRequired StepKind = "required"
	StepParse    StepKind = "parse"
	StepValidate StepKind = "validate"
	StepFormat   StepKind = "format"
)

// StepFunc transforms value. Returning done ends the chain with result.
type StepFunc func(ctx context.Context, value any, cell Cell) (result any, done bool, err error)

// Validator is a constraint checked by a validate step.
type Validator interface {
	Name() string
	Validate(ctx context.Context, value any, cell Cell) error
}

// Step is one operation of a chain.
type Step struct {
	Kind StepKind
	Name string
	// Validator is set for validate steps.
	Validator Validator
	Fn        StepFunc
}

// Chain is the ordered list of steps for one column and direction.
type Chain struct {
	field string
	label string
	steps []Step
}

// NewChain returns a chain for the named field.
func NewChain(field, label string, steps ...Step) Chain {
	return Chain{field: field, label: label, steps: slices.Clone(steps)}
}

// Append returns a new chain with steps added at the end.
func (c Chain) Append(steps ...Step) Chain {
	out := make([]Step, 0, len(c.steps)+len(steps))
	out = append(out, c.steps...)
	out = append(out, steps...)
	return Chain{field: c.field, label: c.label, steps: out}
}

// Field returns the name of the field the chain processes.
func (c Chain) Field() string { return c.field }

// Label returns the display label used in failures.
func (c Chain) Label() string { return c.label }

// Len returns the number of steps.
func (c Chain) Len() int { return len(c.steps) }

// Steps returns a copy of the steps.
func (c Chain) Steps() []Step {
	return slices.Clone(c.steps)
}

// Names returns the step names in execution order.
func (c Chain) Names() []string {
	names := make([]string, len(c.steps))
	for i, s := range c.steps {
		names[i] = s.Name
	}
	return names
}

// Has reports whether a step with name is part of the chain.
func (c Chain) Has(name string) bool {
	_, ok := c.Find(name)
	return ok
}

// Find returns the first step with name.
func (c Chain) Find(name string) (Step, bool) {
	for _, s := range c.steps {
		if s.Name == name {
			return s, true
		}
	}
	return Step{}, false
}

// Validators returns the constraints of the chain in order.
func (c Chain) Validators() []Validator {
	var out []Validator
	for _, s := range c.steps {
		if s.Validator != nil {
			out = append(out, s.Validator)
		}
	}
	return out
}

// Execute runs every step in order. The first failure stops the chain; a
// *ValidationError is completed with the cell, field and raw input.
func (c Chain) Execute(ctx context.Context, value any, cell Cell) (any, error) {
	raw := value

	for _, s := range c.steps {
		out, done, err := s.Fn(ctx, value, cell)
		if err != nil {
			return nil, c.enrich(err, s, raw, value, cell)
		}
		value = out
		if done {
			break
		}
	}

	return value, nil
}

func (c Chain) enrich(err error, s Step, raw, current any, cell Cell) error {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	if ve.Cell == (Cell{}) {
		ve.Cell = cell
	}
	if ve.Field == "" {
		ve.Field = c.field
	}
	if ve.Label == "" {
		ve.Label = c.label
	}
	if ve.Constraint == "" {
		ve.Constraint = s.Name
	}
	if ve.RawValue == nil {
		ve.RawValue = raw
	}
	if ve.ValidatedValue == nil {
		ve.ValidatedValue = current
	}
	return err
}
