// Package message turns validation failures into localized text.
//
// A Resolver picks the template for a *cellproc.ValidationError: the
// annotation message override when it is not empty, else the bundle entry
// for the error message key, else csv.default, else the key itself. Bundle
// templates are wrapped in the csv.frame template, which adds the row,
// column and label; overrides are used as they are.
//
// Templates support two token forms:
//
//	{name}                      the variable, stringified
//	${printer.print(min)}       a small expression
//
// Expressions know literals, variable names, !, +, cond ? a : b,
// parentheses and one call: print on a variable that implements
// format.Printer. There is nothing else to call. A token that cannot be
// resolved stays in the output verbatim and is logged.
//
// Built-in English and Japanese bundles are embedded; LoadBundle layers a
// directory of user bundles over them.
package message
