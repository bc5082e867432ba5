package mapping

import "errors"

var (
	ErrInvalidDefinition = errors.New("invalid mapping definition")
	ErrDuplicateColumn   = errors.New("duplicate column")
	ErrUnknownConversion = errors.New("unknown conversion")
	ErrInvalidDefault    = errors.New("invalid default value")
	ErrColumnCount       = errors.New("unexpected number of columns")
	ErrHeaderMismatch    = errors.New("header does not match column labels")
	ErrFailedToReadCSV   = errors.New("failed to read csv record")
	ErrFailedToWriteCSV  = errors.New("failed to write csv record")
)
