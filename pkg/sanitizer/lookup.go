package sanitizer

import (
	"slices"
	"strings"
)

// Conversion names accepted by Lookup.
const (
	NameTrim                = "trim"
	NameNormalizeWhitespace = "normalize_whitespace"
	NameLower               = "lower"
	NameUpper               = "upper"
	NameHalfWidth           = "half_width"
	NameFullWidth           = "full_width"
	NameFold                = "fold"
	NameRemoveControlChars  = "remove_control_chars"
	NameSingleLine          = "single_line"
	NameKeepDigits          = "keep_digits"
)

var conversions = map[string]func(string) string{
	NameTrim:                Trim,
	NameNormalizeWhitespace: NormalizeWhitespace,
	NameLower:               ToLower,
	NameUpper:               ToUpper,
	NameHalfWidth:           ToHalfWidth,
	NameFullWidth:           ToFullWidth,
	NameFold:                Fold,
	NameRemoveControlChars:  RemoveControlChars,
	NameSingleLine:          SingleLine,
	NameKeepDigits:          KeepDigits,
}

// Lookup returns the conversion registered under name.
// Names are matched case-insensitively and "-" is accepted for "_".
func Lookup(name string) (func(string) string, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	fn, ok := conversions[key]
	return fn, ok
}

// Names lists the known conversion names in sorted order.
func Names() []string {
	names := make([]string, 0, len(conversions))
	for name := range conversions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
