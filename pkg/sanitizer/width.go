package sanitizer

import "golang.org/x/text/width"

// ToHalfWidth maps wide runes to their narrow forms: "ＡＢＣ" becomes "ABC"
// and "アイ" becomes "ｱｲ".
func ToHalfWidth(s string) string {
	return width.Narrow.String(s)
}

// ToFullWidth maps narrow runes to their wide forms: "ABC" becomes "ＡＢＣ".
func ToFullWidth(s string) string {
	return width.Widen.String(s)
}

// Fold canonicalizes width: full-width ASCII becomes narrow while
// half-width katakana becomes wide.
func Fold(s string) string {
	return width.Fold.String(s)
}
