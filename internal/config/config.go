package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
)

// FileName is the name of the config file inside the user config directory.
const FileName = "timet.json"

// Placeholder values written by Init.
const (
	PlaceholderURL = "https://httpstatusdogs.com"
	PlaceholderKey = "key_goes_here"
)

var (
	// ErrConfigMissing means no config file exists at the expected path.
	ErrConfigMissing = errors.New("config file not found")
	// ErrConfigInvalid means the config file exists but cannot be used.
	ErrConfigInvalid = errors.New("invalid config file")
)

// Config is the persisted per-user configuration.
type Config struct {
	URL      string  `json:"url"`
	Key      string  `json:"key"`
	Template *string `json:"template"`
}

// InitResult reports what Init did.
type InitResult int

const (
	Created InitResult = iota
	AlreadyExists
)

func (r InitResult) String() string {
	switch r {
	case Created:
		return "created"
	case AlreadyExists:
		return "already exists"
	default:
		return "unknown"
	}
}

// DefaultPath returns <user config dir>/timet.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(dir, FileName), nil
}

// Default returns the placeholder config written on first run.
func Default() Config {
	return Config{
		URL: PlaceholderURL,
		Key: PlaceholderKey,
	}
}

// Init writes the placeholder config to path unless a file is already there.
func Init(path string) (InitResult, error) {
	if _, err := os.Stat(path); err == nil {
		return AlreadyExists, nil
	} else if !os.IsNotExist(err) {
		return 0, fmt.Errorf("failed to check config file %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := sonic.MarshalIndent(Default(), "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config: %w", err)
	}

	// O_EXCL so a file created between Stat and here is never clobbered.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if os.IsExist(err) {
			return AlreadyExists, nil
		}
		return 0, fmt.Errorf("failed to create config file: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		return 0, fmt.Errorf("failed to write config file: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("failed to write config file: %w", err)
	}

	return Created, nil
}

// Load reads and validates the config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s (run with --init to create one)", ErrConfigMissing, path)
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg *Config
	if err := sonic.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrConfigInvalid, path, err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w %s: expected a JSON object", ErrConfigInvalid, path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrConfigInvalid, path, err)
	}

	return cfg, nil
}

// Validate checks that the mandatory fields are present.
func (c *Config) Validate() error {
	if c.URL == "" {
		return errors.New(`"url" is required`)
	}
	if c.Key == "" {
		return errors.New(`"key" is required`)
	}
	return nil
}

// TemplatePath resolves the configured template against configDir.
// It returns "" when no template is configured.
func (c *Config) TemplatePath(configDir string) string {
	if c.Template == nil || *c.Template == "" {
		return ""
	}
	return ResolveTemplatePath(*c.Template, configDir)
}

// ResolveTemplatePath joins relative template paths onto configDir.
func ResolveTemplatePath(template, configDir string) string {
	if filepath.IsAbs(template) {
		return template
	}
	return filepath.Join(configDir, template)
}
