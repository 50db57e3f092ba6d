package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/penwyp/timet/internal/config"
	"github.com/penwyp/timet/internal/core/model"
	"github.com/penwyp/timet/internal/core/period"
	"github.com/penwyp/timet/internal/data/aggregator"
	"github.com/penwyp/timet/internal/data/client"
	"github.com/penwyp/timet/internal/presentation/formatter"
	"github.com/penwyp/timet/internal/presentation/preview"
	"github.com/penwyp/timet/internal/util"
)

// Runner executes one report: resolve, fetch, aggregate, render.
type Runner struct {
	config *Config
	out    io.Writer
	errOut io.Writer

	// newSource builds the entry source once the endpoint is known.
	newSource func(url, key string) EntrySource
}

// settings are the effective values after merging overrides with the config file.
type settings struct {
	url          string
	key          string
	templatePath string
}

func New(cfg *Config, out, errOut io.Writer) *Runner {
	r := &Runner{
		config: cfg,
		out:    out,
		errOut: errOut,
	}
	r.newSource = func(url, key string) EntrySource {
		opts := []client.Option{client.WithTimeout(cfg.Timeout)}
		if cfg.UserAgent != "" {
			opts = append(opts, client.WithUserAgent(cfg.UserAgent))
		}
		return client.NewClient(url, key, opts...)
	}
	return r
}

func (r *Runner) Run(ctx context.Context) error {
	startTime := time.Now()

	if err := r.config.Validate(); err != nil {
		return err
	}

	// Phase 1: resolve period and settings
	p, err := period.Resolve(r.config.Month, r.config.Year, r.config.now())
	if err != nil {
		return err
	}
	s, err := r.resolveSettings()
	if err != nil {
		return err
	}
	output := r.chooseOutput(s)
	if r.config.Watch && output != model.OutputTemplate {
		return errors.New("--watch needs a template (set \"template\" in the config or pass --template)")
	}
	util.LogDebug("Resolved report settings",
		util.F("period", p.String()), util.F("output", output), util.F("template", s.templatePath))

	f, err := formatter.New(output, formatter.Options{
		TemplatePath: s.templatePath,
		Width:        r.config.Width,
	})
	if err != nil {
		return err
	}

	// Phase 2: fetch
	fetchStart := time.Now()
	entries, err := r.newSource(s.url, s.key).FetchEntries(ctx, p.Year, p.Month)
	if err != nil {
		return err
	}
	util.LogDebug(fmt.Sprintf("Fetch duration: %v, entries: %d", time.Since(fetchStart), len(entries)))

	// Phase 3: aggregate
	aggregateStart := time.Now()
	rep := aggregator.Summarize(entries, p, r.config.Fagdag)
	util.LogDebug(fmt.Sprintf("Aggregate duration: %v, projects: %d", time.Since(aggregateStart), len(rep.Projects)))

	// Phase 4: render
	var buf bytes.Buffer
	if err := f.Format(&buf, rep); err != nil {
		return err
	}
	if _, err := buf.WriteTo(r.out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	util.LogDebug(fmt.Sprintf("Total duration: %v", time.Since(startTime)))

	if r.config.Watch {
		return preview.Run(ctx, f.(preview.Template), rep, r.out, r.errOut)
	}
	return nil
}

// resolveSettings merges overrides with the config file. The file is only
// read when an override leaves the url or key unset; if it is missing then,
// nothing is fetched.
func (r *Runner) resolveSettings() (settings, error) {
	s := settings{
		url:          r.config.URL,
		key:          r.config.APIKey,
		templatePath: r.config.TemplatePath,
	}
	if s.url != "" && s.key != "" {
		util.LogDebug("Using url and key from overrides, skipping config file")
		return s, nil
	}

	cfg, err := config.Load(r.config.ConfigPath)
	if err != nil {
		return settings{}, err
	}
	util.LogDebug("Loaded config", util.F("path", r.config.ConfigPath))

	if s.url == "" {
		s.url = cfg.URL
	}
	if s.key == "" {
		s.key = cfg.Key
	}
	if s.templatePath == "" {
		s.templatePath = cfg.TemplatePath(filepath.Dir(r.config.ConfigPath))
	}
	return s, nil
}

// chooseOutput lets an explicit output win, then a configured template, then plain.
func (r *Runner) chooseOutput(s settings) string {
	if r.config.Output != "" {
		return r.config.Output
	}
	if s.templatePath != "" {
		return model.OutputTemplate
	}
	return model.OutputPlain
}
