package constraint_test

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/csvbind/pkg/constraint"
)

func TestRangeContains(t *testing.T) {
	t.Parallel()

	t.Run("inclusive accepts both ends", func(t *testing.T) {
		t.Parallel()
		r, err := constraint.NewRange(10, 20, true, cmp.Compare[int])
		require.NoError(t, err)

		assert.True(t, r.Contains(10, cmp.Compare[int]))
		assert.True(t, r.Contains(15, cmp.Compare[int]))
		assert.True(t, r.Contains(20, cmp.Compare[int]))
		assert.False(t, r.Contains(9, cmp.Compare[int]))
		assert.False(t, r.Contains(21, cmp.Compare[int]))
	})

	t.Run("exclusive rejects both ends", func(t *testing.T) {
		t.Parallel()
		r, err := constraint.NewRange(10, 20, false, cmp.Compare[int])
		require.NoError(t, err)

		assert.False(t, r.Contains(10, cmp.Compare[int]))
		assert.True(t, r.Contains(11, cmp.Compare[int]))
		assert.True(t, r.Contains(19, cmp.Compare[int]))
		assert.False(t, r.Contains(20, cmp.Compare[int]))
	})

	t.Run("single point", func(t *testing.T) {
		t.Parallel()
		r, err := constraint.NewRange("b", "b", true, cmp.Compare[string])
		require.NoError(t, err)
		assert.True(t, r.Contains("b", cmp.Compare[string]))
		assert.False(t, r.Contains("c", cmp.Compare[string]))
	})

	t.Run("min greater than max", func(t *testing.T) {
		t.Parallel()
		_, err := constraint.NewRange(2.5, 1.5, true, cmp.Compare[float64])
		require.ErrorIs(t, err, constraint.ErrInvalidRange)
	})
}
