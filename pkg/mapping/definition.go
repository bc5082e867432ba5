package mapping

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/csvbind/pkg/column"
	"github.com/dmitrymomot/csvbind/pkg/replacer"
)

// Definition describes the columns of one CSV layout.
type Definition struct {
	Name    string         `yaml:"name"`
	Columns []column.Field `yaml:"columns"`

	// ReplaceTables are named replacement rule sets that columns reference
	// from their conversions list.
	ReplaceTables map[string][]replacer.Rule `yaml:"replace_tables"`
}

// LoadDefinition decodes a YAML definition. Unknown field keys are rejected.
func LoadDefinition(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDefinition)
		}
		return nil, errors.Join(ErrInvalidDefinition, err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadDefinitionFile reads and decodes the definition at path.
func LoadDefinitionFile(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}
	defer f.Close()

	def, err := LoadDefinition(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Validate checks names and numbers for presence and uniqueness.
func (d *Definition) Validate() error {
	if len(d.Columns) == 0 {
		return fmt.Errorf("%w: no columns", ErrInvalidDefinition)
	}

	names := make(map[string]bool, len(d.Columns))
	numbers := make(map[int]string, len(d.Columns))
	for i, c := range d.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return fmt.Errorf("%w: column %d has no name", ErrInvalidDefinition, i+1)
		}
		if names[name] {
			return fmt.Errorf("%w: %w: name %q", ErrInvalidDefinition, ErrDuplicateColumn, name)
		}
		names[name] = true

		n := columnNumber(c, i)
		if n < 1 {
			return fmt.Errorf("%w: column %q: number must be positive", ErrInvalidDefinition, name)
		}
		if other, ok := numbers[n]; ok {
			return fmt.Errorf("%w: %w: %q and %q share number %d", ErrInvalidDefinition, ErrDuplicateColumn, other, name, n)
		}
		numbers[n] = name
	}
	return nil
}

// columnNumber is the declared 1-based number, or the position when unset.
func columnNumber(f column.Field, index int) int {
	if f.Number != 0 {
		return f.Number
	}
	return index + 1
}
