package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/lugassawan/lintargs/internal/manifest"
	toml "github.com/pelletier/go-toml/v2"
)

// FileName is the config file name used by lintargs.
const FileName = ".lintargs.toml"

type Config struct {
	Compiler     string   `toml:"compiler"`
	CompilerArgs []string `toml:"compiler_args,omitempty"`
	Manifest     string   `toml:"manifest"`
	Concurrency  int      `toml:"concurrency,omitempty"`
	FailFast     bool     `toml:"fail_fast,omitempty"`

	Env map[string]string `toml:"env,omitempty"`
}

// Validation error messages for config fields.
const (
	ErrMsgEmptyCompiler       = "compiler must not be empty"
	ErrMsgEmptyManifest       = "manifest must not be empty"
	ErrMsgNegativeConcurrency = "concurrency must not be negative"
)

// Validate checks that required config fields are present.
func (c *Config) Validate() error {
	var errs []error
	if c.Compiler == "" {
		errs = append(errs, errors.New(ErrMsgEmptyCompiler))
	}
	if c.Manifest == "" {
		errs = append(errs, errors.New(ErrMsgEmptyManifest))
	}
	if c.Concurrency < 0 {
		errs = append(errs, errors.New(ErrMsgNegativeConcurrency))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

type ctxKey struct{}

func DefaultConfig() *Config {
	return &Config{
		Compiler: "rustc",
		Manifest: manifest.DefaultFileName,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config not found: %w (run 'lintargs init' first)", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path, falling back to DefaultConfig when the file does
// not exist. Any other failure is returned.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

func Save(path string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the stored config, or DefaultConfig when none is set.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(ctxKey{}).(*Config)
	if cfg == nil {
		return DefaultConfig()
	}
	return cfg
}
