// Package column describes how a record field maps to a CSV column.
//
// A Field carries the column position and label, the value type and its
// formatting pattern, read/write defaults, text conversions and an ordered
// list of constraint Annotations. Fields are plain data: they are decoded
// from mapping definitions and consumed by the chain builder, which never
// inspects Go struct tags or uses reflection.
package column
