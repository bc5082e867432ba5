package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/csvbind/pkg/sanitizer"
)

func TestStringConversions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fn       func(string) string
		input    string
		expected string
	}{
		{"trim spaces", sanitizer.Trim, "  hello world  ", "hello world"},
		{"trim tabs and newlines", sanitizer.Trim, "\t\nhello\n\t", "hello"},
		{"trim ideographic space", sanitizer.Trim, "　東京　", "東京"},
		{"trim whitespace only", sanitizer.Trim, " \t\n ", ""},
		{"lower", sanitizer.ToLower, "Hello World", "hello world"},
		{"upper", sanitizer.ToUpper, "Hello123!", "HELLO123!"},
		{"normalize whitespace", sanitizer.NormalizeWhitespace, "  a \t b\n\nc  ", "a b c"},
		{"normalize empty", sanitizer.NormalizeWhitespace, "", ""},
		{"remove control chars", sanitizer.RemoveControlChars, "a\x00b\x07c\td", "abc\td"},
		{"single line", sanitizer.SingleLine, "first\r\nsecond\nthird", "first second third"},
		{"keep digits", sanitizer.KeepDigits, "tel: 090-1234", "0901234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.fn(tt.input))
		})
	}
}

func TestWidthConversions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fn       func(string) string
		input    string
		expected string
	}{
		{"half width ascii", sanitizer.ToHalfWidth, "ＡＢＣ１２３", "ABC123"},
		{"half width keeps narrow", sanitizer.ToHalfWidth, "abc", "abc"},
		{"full width ascii", sanitizer.ToFullWidth, "abc", "ａｂｃ"},
		{"full width katakana", sanitizer.ToFullWidth, "ｱｲｳ", "アイウ"},
		{"fold ascii", sanitizer.Fold, "ＡＢＣ", "ABC"},
		{"fold katakana", sanitizer.Fold, "ｱｲｳ", "アイウ"},
		{"fold mixed", sanitizer.Fold, "Ｎｏ.ｱ", "No.ア"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.fn(tt.input))
		})
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	t.Run("known names", func(t *testing.T) {
		t.Parallel()

		for _, name := range sanitizer.Names() {
			fn, ok := sanitizer.Lookup(name)
			assert.True(t, ok, name)
			assert.NotNil(t, fn, name)
		}
	})

	t.Run("normalizes name", func(t *testing.T) {
		t.Parallel()

		fn, ok := sanitizer.Lookup(" Half-Width ")
		assert.True(t, ok)
		assert.Equal(t, "A1", fn("Ａ１"))
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()

		fn, ok := sanitizer.Lookup("rot13")
		assert.False(t, ok)
		assert.Nil(t, fn)
	})

	t.Run("names are sorted", func(t *testing.T) {
		t.Parallel()

		names := sanitizer.Names()
		assert.IsNonDecreasing(t, names)
		assert.Contains(t, names, sanitizer.NameFold)
		assert.Len(t, names, 10)
	})
}
