// Package constraint turns declarative column annotations into validation
// steps of a cellproc.Chain.
//
// Each annotation kind has a Factory. A Factory parses the annotation
// attributes through the column formatter once, at build time, so a literal
// such as min: "1,000" is read with the same pattern the column uses. Bad
// literals and inconsistent bounds fail with *AnnotationError and abort the
// mapping build. At run time the appended step raises a
// *cellproc.ValidationError carrying the message key csv.constraint.<kind>,
// the optional message override and the template variables.
//
// A Registry maps kinds to factories:
//
//	reg := constraint.DefaultRegistry()
//	chain, err := reg.Apply(chain, field, formatter, constraint.BuildOptions{Case: column.Read})
//
// When an annotation is disabled for the build case the factory returns the
// chain unchanged, so the step is absent rather than skipped.
package constraint
