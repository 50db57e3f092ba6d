package formatter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/timet/internal/core/model"
	"github.com/penwyp/timet/internal/core/period"
	"github.com/penwyp/timet/internal/util"
)

const (
	columnGap    = 2
	minNameWidth = 8
)

type TableFormatter struct {
	headers  []string
	maxWidth int
}

func NewTableFormatter(maxWidth int) *TableFormatter {
	return &TableFormatter{
		headers:  []string{"Prosjekt", "Timer"},
		maxWidth: maxWidth,
	}
}

func (f *TableFormatter) Format(w io.Writer, report model.Report) error {
	nameWidth, hoursWidth := f.calculateColumnWidths(report)
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s %d\n", period.NorwegianMonth(report.Month), report.Year)
	if report.Fagdag {
		fmt.Fprintln(bw, model.FagdagMarker)
	}
	fmt.Fprintln(bw)

	f.printRow(bw, f.headers[0], f.headers[1], nameWidth, hoursWidth)
	f.printSeparator(bw, nameWidth, hoursWidth)
	for _, project := range report.Projects {
		f.printRow(bw, project.Name, util.FormatHours(project.Hours), nameWidth, hoursWidth)
	}
	f.printSeparator(bw, nameWidth, hoursWidth)
	f.printRow(bw, "Totalt", util.FormatHours(report.Total), nameWidth, hoursWidth)

	return bw.Flush()
}

// calculateColumnWidths sizes the name column to its widest cell, shrinking it
// when the table would not fit in maxWidth.
func (f *TableFormatter) calculateColumnWidths(report model.Report) (int, int) {
	nameWidth := util.GetDisplayWidth(f.headers[0])
	hoursWidth := util.GetDisplayWidth(f.headers[1])

	for _, project := range report.Projects {
		nameWidth = max(nameWidth, util.GetDisplayWidth(project.Name))
		hoursWidth = max(hoursWidth, len(util.FormatHours(project.Hours)))
	}
	hoursWidth = max(hoursWidth, len(util.FormatHours(report.Total)))

	if f.maxWidth > 0 {
		available := f.maxWidth - hoursWidth - columnGap
		if nameWidth > available {
			nameWidth = max(available, minNameWidth)
		}
	}
	return nameWidth, hoursWidth
}

func (f *TableFormatter) printRow(w io.Writer, name, hours string, nameWidth, hoursWidth int) {
	if util.GetDisplayWidth(name) > nameWidth {
		name = util.TruncateToWidth(name, nameWidth)
	}
	fmt.Fprintf(w, "%s%s%s\n",
		util.PadString(name, nameWidth, true),
		strings.Repeat(" ", columnGap),
		util.PadString(hours, hoursWidth, false))
}

func (f *TableFormatter) printSeparator(w io.Writer, nameWidth, hoursWidth int) {
	fmt.Fprintf(w, "%s%s%s\n",
		strings.Repeat("─", nameWidth),
		strings.Repeat(" ", columnGap),
		strings.Repeat("─", hoursWidth))
}
