package mapping

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
)

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithHeader treats the first record as a header. When check is set the
// header must match the column labels.
func WithHeader(check bool) ReaderOption {
	return func(r *Reader) {
		r.header = true
		r.checkHeader = check
	}
}

// WithComma sets the field delimiter.
func WithComma(c rune) ReaderOption {
	return func(r *Reader) {
		r.csv.Comma = c
	}
}

// WithLazyQuotes tolerates stray quotes in unquoted fields.
func WithLazyQuotes() ReaderOption {
	return func(r *Reader) {
		r.csv.LazyQuotes = true
	}
}

// Reader decodes records through a mapping.
type Reader struct {
	m           *BeanMapping
	csv         *csv.Reader
	header      bool
	checkHeader bool
	rows        int
}

// NewReader returns a reader of r. Row numbers count every record read,
// the header included, so they match what a spreadsheet shows.
func (m *BeanMapping) NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rd := &Reader{m: m, csv: cr}
	for _, opt := range opts {
		opt(rd)
	}
	return rd
}

// Read returns the next row, or io.EOF after the last one. A row with
// validation failures is returned along with cellproc.ValidationErrors and
// reading may continue.
func (r *Reader) Read(ctx context.Context) (Row, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := r.csv.Read()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			return nil, errors.Join(ErrFailedToReadCSV, err)
		}
		r.rows++
		line, _ := r.csv.FieldPos(0)

		if r.header && r.rows == 1 {
			if r.checkHeader {
				if err := r.m.CheckHeader(record); err != nil {
					return nil, err
				}
			}
			continue
		}

		return r.m.ReadRow(ctx, record, line, r.rows)
	}
}

// RowNumber is the number of records read so far.
func (r *Reader) RowNumber() int { return r.rows }

// Writer encodes rows through a mapping.
type Writer struct {
	m    *BeanMapping
	csv  *csv.Writer
	rows int
}

func (m *BeanMapping) NewWriter(w io.Writer) *Writer {
	return &Writer{m: m, csv: csv.NewWriter(w)}
}

// WriteHeader writes the column labels.
func (w *Writer) WriteHeader() error {
	if err := w.csv.Write(w.m.Header()); err != nil {
		return errors.Join(ErrFailedToWriteCSV, err)
	}
	w.rows++
	return nil
}

// Write encodes row. A row with validation failures is not written.
func (w *Writer) Write(ctx context.Context, row Row) error {
	record, err := w.m.WriteRow(ctx, row, w.rows+1)
	if err != nil {
		return err
	}
	if err := w.csv.Write(record); err != nil {
		return errors.Join(ErrFailedToWriteCSV, err)
	}
	w.rows++
	return nil
}

// Flush writes buffered data and reports any earlier write error.
func (w *Writer) Flush() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return errors.Join(ErrFailedToWriteCSV, err)
	}
	return nil
}
