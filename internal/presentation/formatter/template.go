package formatter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/penwyp/timet/internal/core/model"
	"github.com/penwyp/timet/internal/core/period"
)

// ErrTemplate wraps failures to load, parse or execute the user template.
var ErrTemplate = errors.New("template error")

// TemplateFormatter renders a report through a user-supplied text/template.
//
// The template sees a map with the keys hours (sorted project summaries with
// Name and Hours), total, fagdag, month and year, and may call
// norwegian_month to turn a month number into its Norwegian name.
type TemplateFormatter struct {
	path string
	tmpl *template.Template
}

// NewTemplateFormatter loads and parses the template at path.
func NewTemplateFormatter(path string) (*TemplateFormatter, error) {
	f := &TemplateFormatter{path: path}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the template file this formatter renders.
func (f *TemplateFormatter) Path() string {
	return f.path
}

// Reload reads and parses the template file again.
func (f *TemplateFormatter) Reload() error {
	if f.path == "" {
		return fmt.Errorf("%w: no template path configured", ErrTemplate)
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("%w: failed to read %s: %w", ErrTemplate, f.path, err)
	}

	tmpl, err := template.New(filepath.Base(f.path)).
		Funcs(templateFuncs()).
		Option("missingkey=error").
		Parse(string(data))
	if err != nil {
		return fmt.Errorf("%w: failed to parse %s: %w", ErrTemplate, f.path, err)
	}

	f.tmpl = tmpl
	return nil
}

// Format executes the template into a buffer and writes it to w only when
// execution succeeds, so a failing template prints nothing.
func (f *TemplateFormatter) Format(w io.Writer, report model.Report) error {
	var buf bytes.Buffer
	if err := f.tmpl.Execute(&buf, templateContext(report)); err != nil {
		return fmt.Errorf("%w: failed to render %s: %w", ErrTemplate, f.path, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"norwegian_month": period.NorwegianMonth,
	}
}

func templateContext(report model.Report) map[string]interface{} {
	hours := report.Projects
	if hours == nil {
		hours = []model.ProjectSummary{}
	}
	return map[string]interface{}{
		"hours":  hours,
		"total":  report.Total,
		"fagdag": report.Fagdag,
		"month":  report.Month,
		"year":   report.Year,
	}
}
