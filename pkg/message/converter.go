package message

import (
	"github.com/dmitrymomot/csvbind/pkg/cellproc"
)

// LabelSource supplies the label of a column when a failure carries none.
type LabelSource interface {
	Label(columnNumber int) string
}

// Converter turns errors returned by chains and mappings into messages.
type Converter struct {
	resolver *Resolver
}

func NewConverter(r *Resolver) *Converter {
	return &Converter{resolver: r}
}

// Convert renders one failure. labels may be nil.
func (c *Converter) Convert(ve *cellproc.ValidationError, labels LabelSource) string {
	if ve.Label == "" && labels != nil {
		withLabel := *ve
		withLabel.Label = labels.Label(ve.ColumnNumber)
		ve = &withLabel
	}
	return c.resolver.Resolve(ve)
}

// ConvertAndFormat renders every ValidationError found in err, in the order
// they were raised. Identical failures are kept. Errors that are not
// validation failures yield no message.
func (c *Converter) ConvertAndFormat(err error, labels LabelSource) []string {
	failures := cellproc.ExtractValidationErrors(err)
	if len(failures) == 0 {
		return nil
	}
	out := make([]string, 0, len(failures))
	for _, ve := range failures {
		out = append(out, c.Convert(ve, labels))
	}
	return out
}
