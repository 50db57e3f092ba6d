package formatter

import (
	"bufio"
	"fmt"
	"io"

	"github.com/penwyp/timet/internal/core/model"
	"github.com/penwyp/timet/internal/util"
)

// PlainFormatter prints one "<name> <hours>t" line per project and a total line.
type PlainFormatter struct{}

// NewPlainFormatter creates a new instance of PlainFormatter.
func NewPlainFormatter() *PlainFormatter {
	return &PlainFormatter{}
}

func (f *PlainFormatter) Format(w io.Writer, report model.Report) error {
	bw := bufio.NewWriter(w)

	if report.Fagdag {
		fmt.Fprintln(bw, model.FagdagMarker)
	}
	for _, project := range report.Projects {
		fmt.Fprintf(bw, "%s %st\n", project.Name, util.FormatHours(project.Hours))
	}
	fmt.Fprintf(bw, "Totalt - %st\n", util.FormatHours(report.Total))

	return bw.Flush()
}
