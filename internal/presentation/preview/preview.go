package preview

import (
	"context"
	"fmt"
	"io"

	"github.com/penwyp/timet/internal/core/model"
	"github.com/penwyp/timet/internal/util"
)

// Template is a formatter that can re-read its template file.
type Template interface {
	Path() string
	Reload() error
	Format(w io.Writer, report model.Report) error
}

// Run re-renders report through tmpl every time the template file changes,
// until ctx is cancelled. The report is not refetched.
func Run(ctx context.Context, tmpl Template, report model.Report, out, errOut io.Writer) error {
	fw, err := NewFileWatcher(tmpl.Path())
	if err != nil {
		return err
	}
	defer fw.Close()

	util.LogInfo("Watching template for changes", util.F("path", tmpl.Path()))
	fmt.Fprintf(errOut, "Watching %s for changes, press Ctrl+C to stop\n", tmpl.Path())

	render := func() error {
		if err := tmpl.Reload(); err != nil {
			return err
		}
		fmt.Fprintln(out)
		return tmpl.Format(out, report)
	}
	onError := func(err error) {
		util.LogWarn("Template preview failed", util.F("error", err.Error()))
		fmt.Fprintf(errOut, "Error: %v\n", err)
	}

	return fw.Run(ctx, render, onError)
}
