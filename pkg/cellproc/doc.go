// Package cellproc runs the per-column processor chains.
//
// A Chain is an ordered list of tagged Steps (trim, convert, default,
// optional, required, parse, validate, format) executed by a single driver
// loop. Because the chain is data, its composition can be inspected with
// Names, Has and Find, which is how callers verify that a constraint was
// omitted rather than bypassed.
//
// Failures are reported as *ValidationError values carrying the cell
// coordinates, the field label, the raw and validated values, a message key,
// an optional message override, and the variables needed to render a
// localized message later. The driver fills in the coordinates, field and
// raw input, so steps only describe what went wrong.
//
// # Usage
//
//	chain := cellproc.NewChain("price", "Price",
//	    cellproc.Trim(),
//	    cellproc.Required(),
//	    cellproc.Parse(formatter),
//	    cellproc.Validate(rangeConstraint),
//	)
//	v, err := chain.Execute(ctx, " 1,000 ", cellproc.Cell{LineNumber: 2, RowNumber: 2, ColumnNumber: 1})
//
// Chains are immutable after construction and safe for concurrent use; any
// per-run state (such as seen values for uniqueness) lives outside the chain.
package cellproc
