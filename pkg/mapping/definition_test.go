package mapping_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/csvbind/pkg/mapping"
)

func TestLoadDefinitionFile(t *testing.T) {
	t.Parallel()

	def, err := mapping.LoadDefinitionFile("testdata/products.yaml")
	require.NoError(t, err)

	assert.Equal(t, "products", def.Name)
	require.Len(t, def.Columns, 5)
	assert.Equal(t, "Price", def.Columns[2].Label)
	require.NotNil(t, def.Columns[2].InputDefault)
	assert.Equal(t, "0", *def.Columns[2].InputDefault)
	assert.Equal(t, []string{"dash", "upper"}, def.Columns[3].Conversions)
	assert.Len(t, def.ReplaceTables["dash"], 2)

	maxAttr, ok := def.Columns[2].Constraints[0].Attr("max")
	require.True(t, ok)
	assert.Equal(t, "10,000", maxAttr)
}

func TestLoadDefinitionErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "empty document",
			src:  "",
			want: "empty document",
		},
		{
			name: "no columns",
			src:  "name: empty\n",
			want: "no columns",
		},
		{
			name: "unknown field key",
			src:  "columns:\n  - name: a\n    colour: red\n",
			want: "colour",
		},
		{
			name: "missing name",
			src:  "columns:\n  - label: A\n",
			want: "column 1 has no name",
		},
		{
			name: "duplicate name",
			src:  "columns:\n  - name: a\n  - name: a\n",
			want: `name "a"`,
		},
		{
			name: "duplicate number",
			src:  "columns:\n  - name: a\n    number: 2\n  - name: b\n",
			want: "share number 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := mapping.LoadDefinition(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, mapping.ErrInvalidDefinition)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadDefinitionFileMissing(t *testing.T) {
	t.Parallel()

	_, err := mapping.LoadDefinitionFile("testdata/missing.yaml")
	assert.ErrorIs(t, err, mapping.ErrInvalidDefinition)
}
