package format_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/csvbind/pkg/format"
)

func TestLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		want    string
	}{
		{"yyyy-MM-dd", "2006-01-02"},
		{"yy/M/d", "06/1/2"},
		{"yyyy-MM-dd HH:mm:ss", "2006-01-02 15:04:05"},
		{"HH:mm:ss.SSS", "15:04:05.000"},
		{"yyyy'年'M'月'd'日'", "2006年1月2日"},
		{"EEE, d MMM yyyy hh:mm a", "Mon, 2 Jan 2006 03:04 PM"},
		{"yyyy-MM-dd'T'HH:mm:ssXXX", "2006-01-02T15:04:05Z07:00"},
		{"''yy''", "'06'"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := format.Layout(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unsupported letter", func(t *testing.T) {
		_, err := format.Layout("yyyy-QQ")
		require.ErrorIs(t, err, format.ErrInvalidPattern)
	})

	t.Run("unterminated quote", func(t *testing.T) {
		_, err := format.Layout("yyyy'x")
		require.ErrorIs(t, err, format.ErrInvalidPattern)
	})

	t.Run("fraction without separator", func(t *testing.T) {
		_, err := format.Layout("ssSSS")
		require.ErrorIs(t, err, format.ErrInvalidPattern)
	})
}

func TestDateTimeFormatter(t *testing.T) {
	t.Parallel()

	t.Run("short year pattern", func(t *testing.T) {
		f, err := format.NewDateTimeFormatter("date", "yy/M/d", "")
		require.NoError(t, err)

		v, err := f.Parse("16/2/29")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2016, 2, 29, 0, 0, 0, 0, time.UTC), v)

		s, err := f.Print(time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, "20/1/31", s)
	})

	t.Run("timezone", func(t *testing.T) {
		f, err := format.NewDateTimeFormatter("datetime", "yyyy-MM-dd HH:mm", "Asia/Tokyo")
		require.NoError(t, err)

		s, err := f.Print(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, "2020-01-01 09:00", s)
	})

	t.Run("strict calendar", func(t *testing.T) {
		f, err := format.NewDateTimeFormatter("date", "yyyy-MM-dd", "")
		require.NoError(t, err)

		_, err = f.Parse("2015-02-29")
		require.ErrorIs(t, err, format.ErrParse)
	})

	t.Run("unknown timezone", func(t *testing.T) {
		_, err := format.NewDateTimeFormatter("date", "yyyy-MM-dd", "Mars/Olympus")
		require.ErrorIs(t, err, format.ErrInvalidLocale)
	})
}
