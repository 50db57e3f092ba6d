package formatter

import (
	"fmt"
	"io"

	"github.com/penwyp/timet/internal/core/model"
)

// Formatter writes a report to w.
type Formatter interface {
	Format(w io.Writer, report model.Report) error
}

// Options carries the per-run settings formatters may need.
type Options struct {
	// TemplatePath is the resolved path of the user template.
	TemplatePath string
	// Width is the number of columns available to the table formatter.
	Width int
}

// New returns the formatter for output.
func New(output string, opts Options) (Formatter, error) {
	switch output {
	case model.OutputPlain, "":
		return NewPlainFormatter(), nil
	case model.OutputTable:
		return NewTableFormatter(opts.Width), nil
	case model.OutputJSON:
		return NewJSONFormatter(), nil
	case model.OutputTemplate:
		return NewTemplateFormatter(opts.TemplatePath)
	default:
		return nil, fmt.Errorf("unknown output format %q (want plain, table or json)", output)
	}
}
