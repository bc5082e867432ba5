package column_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/csvbind/pkg/column"
)

func TestDisplayLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Price", column.Field{Name: "price", Label: "Price"}.DisplayLabel())
	assert.Equal(t, "price", column.Field{Name: "price"}.DisplayLabel())
}

func TestAnnotationsByGroup(t *testing.T) {
	t.Parallel()

	f := column.Field{
		Name: "qty",
		Constraints: []column.Annotation{
			column.New("number_min", "min", "1"),
			{Kind: "number_max", Groups: []string{"import"}, Attrs: map[string]any{"max": "10"}},
			column.New("number_max", "max", "100"),
		},
	}

	t.Run("ungrouped only without groups", func(t *testing.T) {
		got := f.AnnotationsByGroup("")
		require.Len(t, got, 2)
		assert.Equal(t, "number_min", got[0].Kind)
		assert.Equal(t, "number_max", got[1].Kind)
	})

	t.Run("keeps declaration order", func(t *testing.T) {
		got := f.AnnotationsByGroup("number_max", "import")
		require.Len(t, got, 2)
		v, _ := got[0].Attr("max")
		assert.Equal(t, "10", v)
	})
}

func TestAnnotationYAML(t *testing.T) {
	t.Parallel()

	src := `
kind: number_range
min: "1,000"
max: 1010
inclusive: false
message: ""
cases: [read]
values: [a, 2, true]
`
	var a column.Annotation
	require.NoError(t, yaml.Unmarshal([]byte(src), &a))

	assert.Equal(t, "number_range", a.Kind)
	assert.True(t, a.AppliesTo(column.Read))
	assert.False(t, a.AppliesTo(column.Write))

	v, ok := a.Attr("min")
	require.True(t, ok)
	assert.Equal(t, "1,000", v)

	v, ok = a.Attr("max")
	require.True(t, ok)
	assert.Equal(t, "1010", v)

	inclusive, err := a.AttrBool("inclusive", true)
	require.NoError(t, err)
	assert.False(t, inclusive)

	assert.Equal(t, []string{"a", "2", "true"}, a.AttrList("values"))

	_, ok = a.Attr("message")
	assert.False(t, ok, "known keys are not attributes")
}
