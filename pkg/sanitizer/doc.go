// Package sanitizer provides small string conversions applied to raw CSV
// cells before they are parsed.
//
// Every conversion is a plain func(string) string, so conversions combine
// freely with Apply and Compose:
//
//	clean := sanitizer.Compose(
//	    sanitizer.Trim,
//	    sanitizer.NormalizeWhitespace,
//	    sanitizer.ToHalfWidth,
//	)
//
//	clean(" ＡＢＣ　　１２３ ") // "ABC 123"
//
// Column definitions refer to conversions by name. Lookup resolves such a
// name to its function:
//
//	fn, ok := sanitizer.Lookup("half_width")
//
// Width conversions are backed by golang.org/x/text/width and handle the
// full-width ASCII and half-width katakana blocks commonly found in
// spreadsheets exported on Japanese systems.
//
// The package is stateless and safe for concurrent use.
package sanitizer
