// Package mapping binds CSV records to named, typed values.
//
// A Definition lists the columns of a file: their type, pattern, defaults,
// text conversions and constraints. The Builder compiles a Definition once
// into a BeanMapping holding one read chain and one write chain per column:
//
//	read:  trim, convert, default, optional|required, parse, constraints
//	write: default, optional|required, constraints, format, trim
//
// ReadRow and WriteRow run every column and collect at most one failure per
// column, in column order, as cellproc.ValidationErrors. Errors that are not
// validation failures, such as a wrong column count or a store outage, abort
// the row.
//
//	def, err := mapping.LoadDefinitionFile("products.yaml")
//	if err != nil {
//	    return err
//	}
//	m, err := mapping.NewBuilder(mapping.WithGroups("import")).Build(def)
//	if err != nil {
//	    return err
//	}
//
//	r := m.NewReader(file, mapping.WithHeader(true))
//	for {
//	    row, err := r.Read(ctx)
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    ...
//	}
package mapping
