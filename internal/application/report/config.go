package report

import (
	"errors"
	"time"

	"github.com/penwyp/timet/internal/core/model"
)

// Config contains everything the report command resolved from flags and environment.
type Config struct {
	// Config file location
	ConfigPath string

	// Overrides for the config file; empty means "use the file"
	URL          string
	APIKey       string
	TemplatePath string

	// Reporting period; nil means "current UTC month/year"
	Month *int
	Year  *int

	// Rendering
	Fagdag bool
	Output string // plain, table, json; empty picks template or plain
	Watch  bool
	Width  int

	// Transport
	Timeout   time.Duration
	UserAgent string

	// Now is the clock used for period defaults
	Now func() time.Time
}

// Validate checks flag combinations that can be rejected before any I/O.
func (c *Config) Validate() error {
	switch c.Output {
	case "", model.OutputPlain, model.OutputTable, model.OutputJSON:
	default:
		return errors.New("output must be one of plain, table, json")
	}
	if c.Watch && c.Output != "" {
		return errors.New("--watch only works with template output")
	}
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	return nil
}

func (c *Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
