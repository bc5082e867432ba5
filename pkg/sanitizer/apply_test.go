package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/csvbind/pkg/sanitizer"
)

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		transforms []func(string) string
		expected   string
	}{
		{
			name:       "applies single transform",
			input:      "  hello  ",
			transforms: []func(string) string{sanitizer.Trim},
			expected:   "hello",
		},
		{
			name:  "applies transforms in sequence",
			input: "  HELLO   WORLD  ",
			transforms: []func(string) string{
				sanitizer.NormalizeWhitespace,
				sanitizer.ToLower,
			},
			expected: "hello world",
		},
		{
			name:  "combines width and whitespace conversions",
			input: " ＡＢＣ　　１２３ ",
			transforms: []func(string) string{
				sanitizer.Trim,
				sanitizer.NormalizeWhitespace,
				sanitizer.ToHalfWidth,
			},
			expected: "ABC 123",
		},
		{
			name:       "handles empty transforms slice",
			input:      "hello world",
			transforms: []func(string) string{},
			expected:   "hello world",
		},
		{
			name:       "handles empty input",
			input:      "",
			transforms: []func(string) string{sanitizer.Trim, sanitizer.ToUpper},
			expected:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := sanitizer.Apply(tt.input, tt.transforms...)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCompose(t *testing.T) {
	t.Parallel()

	t.Run("reusable pipeline", func(t *testing.T) {
		t.Parallel()

		clean := sanitizer.Compose(sanitizer.Trim, sanitizer.KeepDigits)
		assert.Equal(t, "0312345678", clean(" 03-1234-5678 "))
		assert.Equal(t, "42", clean("No. 42"))
	})

	t.Run("skips nil transforms", func(t *testing.T) {
		t.Parallel()

		clean := sanitizer.Compose(nil, sanitizer.ToUpper, nil)
		assert.Equal(t, "ABC", clean("abc"))
	})

	t.Run("no transforms is identity", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "same", sanitizer.Compose[string]()("same"))
	})
}
