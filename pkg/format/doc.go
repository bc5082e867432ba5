// Package format converts CSV cell text to typed values and back.
//
// A Formatter parses text into a value of one of the supported kinds and
// prints such a value back to text using a pattern. Patterns follow the
// familiar decimal ("#,##0.00") and date ("yyyy-MM-dd HH:mm:ss") notations so
// that the same literal can be used in mapping definitions, attribute values
// and generated messages.
//
// Number printing is locale aware through golang.org/x/text. Dates are
// converted to Go layouts once, when the formatter is built, so that an
// unsupported pattern fails before any row is processed.
//
// # Usage
//
//	f, err := format.New(format.Spec{Type: "int", Pattern: "#,###", Locale: "en"})
//	if err != nil {
//	    // invalid pattern or locale
//	}
//	v, _ := f.Parse("1,000") // int(1000)
//	s, _ := f.Print(1010)    // "1,010"
//
// Compare provides a total order over the value kinds produced by the
// formatters in this package.
package format
