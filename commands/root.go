package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/penwyp/timet/internal/application/report"
	"github.com/penwyp/timet/internal/config"
	"github.com/penwyp/timet/internal/core/model"
	"github.com/penwyp/timet/internal/util"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X github.com/penwyp/timet/commands.version=..."
var version = "dev"

type rootOptions struct {
	// Logging related
	debug     bool
	logFile   string
	logFormat string

	// Config file
	configPath string
	initConfig bool

	// Reporting period
	month int
	year  int

	// Endpoint overrides
	apiKey  string
	baseURL string
	timeout time.Duration

	// Output related
	fagdag       bool
	outputFormat string
	templatePath string
	watch        bool

	completions string
}

// NewRootCmd builds the timet command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "timet [flags]",
		Short: "Summarise a month of logged hours per project",
		Long: `timet fetches your time entries for one month, sums the hours per project and
prints them, most hours first.

The endpoint and API key are read from timet.json in your user config directory
(create it with --init), or from --url/TIMET_URL and --api-key/TIMET_KEY.
If the config names a template, the summary is rendered through it instead.

Examples:
  timet --init                       # Create the config file
  timet                              # This month
  timet -m 2                         # February this year
  timet -m 12 -y 2023 --fagdag       # December 2023 with a fagdag line
  timet --output table               # Aligned table
  timet --template report.tmpl --watch  # Re-render while editing a template`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts)
		},
	}

	flags := rootCmd.Flags()

	// Reporting period
	flags.IntVarP(&opts.month, "month", "m", 0,
		"Month to get the time entries for (1-12), defaults to this month")
	flags.IntVarP(&opts.year, "year", "y", 0,
		"Year to get the time entries for, defaults to this year")

	// Config
	flags.BoolVarP(&opts.initConfig, "init", "i", false,
		"Create a new config file")
	flags.StringVar(&opts.configPath, "config", "",
		"Config file path (default <user config dir>/timet.json)")

	// Endpoint overrides
	flags.StringVar(&opts.apiKey, "api-key", "",
		"API key, overrides the config file (env "+model.EnvAPIKey+")")
	flags.StringVar(&opts.baseURL, "url", "",
		"Time entry endpoint, overrides the config file (env "+model.EnvURL+")")
	flags.DurationVar(&opts.timeout, "timeout", 0,
		"Request timeout (0 = wait forever)")

	// Output configuration
	flags.BoolVarP(&opts.fagdag, "fagdag", "f", false,
		"Add a fagdag line to the output")
	flags.StringVarP(&opts.outputFormat, "output", "o", "",
		"Output format (plain, table, json); defaults to the template if one is configured, else plain")
	flags.StringVar(&opts.templatePath, "template", "",
		"Template file, overrides the config file")
	flags.BoolVarP(&opts.watch, "watch", "w", false,
		"Re-render the template whenever it changes")
	flags.StringVar(&opts.completions, "completions", "",
		"Print shell completions (bash, zsh, fish, powershell) and exit")

	// System and debugging
	flags.BoolVar(&opts.debug, "debug", false,
		"Enable debug logging to stderr")
	flags.StringVar(&opts.logFile, "log-file", "",
		"Append logs to this file")
	flags.StringVar(&opts.logFormat, "log-format", string(util.FormatText),
		"Log format (text, json)")

	rootCmd.AddCommand(newManCmd(rootCmd))

	return rootCmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

func runRoot(cmd *cobra.Command, opts *rootOptions) error {
	if opts.completions != "" {
		return writeCompletions(cmd.Root(), cmd.OutOrStdout(), opts.completions)
	}

	if err := initLogging(cmd, opts); err != nil {
		return err
	}
	defer util.CloseLogger()

	configPath, err := resolveConfigPath(opts.configPath)
	if err != nil {
		return err
	}

	if opts.initConfig {
		return runInit(cmd.OutOrStdout(), configPath)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		util.LogWarn("Failed to load .env", util.F("error", err.Error()))
	}

	cfg := &report.Config{
		ConfigPath:   configPath,
		URL:          firstNonEmpty(opts.baseURL, os.Getenv(model.EnvURL)),
		APIKey:       firstNonEmpty(opts.apiKey, os.Getenv(model.EnvAPIKey)),
		TemplatePath: opts.templatePath,
		Fagdag:       opts.fagdag,
		Output:       opts.outputFormat,
		Watch:        opts.watch,
		Width:        outputWidth(cmd.OutOrStdout()),
		Timeout:      opts.timeout,
		UserAgent:    "timet/" + version,
	}
	if cmd.Flags().Changed("month") {
		cfg.Month = &opts.month
	}
	if cmd.Flags().Changed("year") {
		cfg.Year = &opts.year
	}
	if cfg.TemplatePath != "" {
		cfg.TemplatePath = expandPath(cfg.TemplatePath)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.watch {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
	}

	return report.New(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr()).Run(ctx)
}

func runInit(out io.Writer, configPath string) error {
	result, err := config.Init(configPath)
	if err != nil {
		return err
	}

	switch result {
	case config.AlreadyExists:
		util.LogInfo("Config file already exists", util.F("path", configPath))
		fmt.Fprintf(out, "Config file already exists at %s\n", configPath)
	default:
		util.LogInfo("Created config file", util.F("path", configPath))
		fmt.Fprintf(out, "Created config file at %s\n", configPath)
	}
	return nil
}

func initLogging(cmd *cobra.Command, opts *rootOptions) error {
	format, err := util.ParseLogFormat(opts.logFormat)
	if err != nil {
		return err
	}

	logLevel := "info"
	var console io.Writer
	if opts.debug {
		logLevel = "debug"
		console = cmd.ErrOrStderr()
	}

	logFile := ""
	if opts.logFile != "" {
		logFile = expandPath(opts.logFile)
	}
	return util.InitLogger(logLevel, logFile, console, format)
}

func resolveConfigPath(flagValue string) (string, error) {
	if flagValue != "" {
		return expandPath(flagValue), nil
	}
	return config.DefaultPath()
}

// outputWidth is the terminal width when writing to a file descriptor, otherwise unlimited.
func outputWidth(out io.Writer) int {
	if f, ok := out.(*os.File); ok {
		return util.TerminalWidth(f)
	}
	return 0
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
