// Package replacer implements a longest-match character replacer used to
// normalise CSV cell text before parsing (for example full-width to
// half-width conversion tables).
//
// Rules are registered as (word, replacement) pairs. Words made of a single
// rune are kept in a lookup table where the first registration for a rune
// wins. Longer words are kept in a list that Ready deduplicates and sorts by
// descending length, ties broken lexicographically, so that Replace always
// prefers the longest registered word at the current position.
//
// # Usage
//
//	r := replacer.New()
//	_ = r.Register("ｶﾞ", "ガ")
//	_ = r.Register("ｶ", "カ")
//	r.Ready()
//
//	r.Replace("ｶﾞｶ") // "ガカ"
//
// Ready must be called after the last Register and before the first
// Replace. After Ready the replacer is read-only and safe for concurrent use.
package replacer
