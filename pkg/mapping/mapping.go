package mapping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/csvbind/pkg/cellproc"
	"github.com/dmitrymomot/csvbind/pkg/column"
	"github.com/dmitrymomot/csvbind/pkg/format"
	"github.com/dmitrymomot/csvbind/pkg/logger"
)

// Row holds the values of one record keyed by field name.
// Optional empty cells are present with a nil value.
type Row map[string]any

// Column is a compiled column: its field, formatter and both chains.
type Column struct {
	Field     column.Field
	Formatter format.Formatter
	Read      cellproc.Chain
	Write     cellproc.Chain
}

// BeanMapping is an immutable compiled definition. It is safe for
// concurrent use; unique constraints share state through the seen store
// of the session carried by ctx.
type BeanMapping struct {
	name    string
	columns []*Column
	byName  map[string]*Column
	width   int
	logger  *slog.Logger
}

func (m *BeanMapping) Name() string { return m.name }

// Width is the number of cells a record must have.
func (m *BeanMapping) Width() int { return m.width }

// Columns returns the columns ordered by number.
func (m *BeanMapping) Columns() []*Column {
	out := make([]*Column, len(m.columns))
	copy(out, m.columns)
	return out
}

// Column returns the column bound to the field name.
func (m *BeanMapping) Column(name string) (*Column, bool) {
	c, ok := m.byName[name]
	return c, ok
}

// Label returns the display label of the column with the 1-based number,
// or "" when no column has it.
func (m *BeanMapping) Label(columnNumber int) string {
	for _, c := range m.columns {
		if c.Field.Number == columnNumber {
			return c.Field.DisplayLabel()
		}
	}
	return ""
}

// Header returns the display labels laid out by column number.
func (m *BeanMapping) Header() []string {
	header := make([]string, m.width)
	for _, c := range m.columns {
		header[c.Field.Number-1] = c.Field.DisplayLabel()
	}
	return header
}

// CheckHeader compares a header record with the column labels. Surrounding
// whitespace and a leading byte order mark are ignored.
func (m *BeanMapping) CheckHeader(record []string) error {
	if len(record) != m.width {
		return fmt.Errorf("%w: %w: got %d, want %d", ErrHeaderMismatch, ErrColumnCount, len(record), m.width)
	}

	var mismatched []string
	for _, c := range m.columns {
		got := strings.TrimSpace(record[c.Field.Number-1])
		if c.Field.Number == 1 {
			got = strings.TrimPrefix(got, "\ufeff")
		}
		if want := c.Field.DisplayLabel(); got != want {
			mismatched = append(mismatched, fmt.Sprintf("column %d: got %q, want %q", c.Field.Number, got, want))
		}
	}
	if len(mismatched) > 0 {
		return fmt.Errorf("%w: %s", ErrHeaderMismatch, strings.Join(mismatched, "; "))
	}
	return nil
}

// ReadRow runs the read chain of every column over record. Validation
// failures are collected, one per column in column order, and returned as
// cellproc.ValidationErrors together with the partially filled row.
func (m *BeanMapping) ReadRow(ctx context.Context, record []string, lineNumber, rowNumber int) (Row, error) {
	if len(record) != m.width {
		return nil, fmt.Errorf("%w: line %d: got %d, want %d", ErrColumnCount, lineNumber, len(record), m.width)
	}

	row := make(Row, len(m.columns))
	var failures cellproc.ValidationErrors
	for _, c := range m.columns {
		cell := cellproc.Cell{LineNumber: lineNumber, RowNumber: rowNumber, ColumnNumber: c.Field.Number}

		v, err := c.Read.Execute(ctx, record[c.Field.Number-1], cell)
		if err != nil {
			var ve *cellproc.ValidationError
			if errors.As(err, &ve) {
				failures = append(failures, ve)
				continue
			}
			return nil, err
		}
		row[c.Field.Name] = v
	}

	if len(failures) > 0 {
		m.logger.DebugContext(ctx, "row rejected",
			logger.Component("mapping"),
			logger.Row(rowNumber),
			slog.Int("failures", len(failures)),
		)
		return row, failures
	}
	return row, nil
}

// WriteRow runs the write chain of every column over row and returns the
// record. Missing fields are treated as empty.
func (m *BeanMapping) WriteRow(ctx context.Context, row Row, rowNumber int) ([]string, error) {
	record := make([]string, m.width)
	var failures cellproc.ValidationErrors
	for _, c := range m.columns {
		cell := cellproc.Cell{LineNumber: rowNumber, RowNumber: rowNumber, ColumnNumber: c.Field.Number}

		v, err := c.Write.Execute(ctx, row[c.Field.Name], cell)
		if err != nil {
			var ve *cellproc.ValidationError
			if errors.As(err, &ve) {
				failures = append(failures, ve)
				continue
			}
			return nil, err
		}
		if v != nil {
			record[c.Field.Number-1] = fmt.Sprint(v)
		}
	}

	if len(failures) > 0 {
		return nil, failures
	}
	return record, nil
}
