package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/functree"
	"github.com/aretw0/functree/internal/config"
	"github.com/aretw0/functree/internal/logging"
	"github.com/aretw0/functree/pkg/domain"
	"github.com/aretw0/functree/pkg/grammar"
)

// Options contains the settings shared by every command.
// Empty fields fall back to the config file, then to the defaults.
type Options struct {
	ConfigPath  string
	PresetsPath string
	Preset      string
	Namespace   string
	LogLevel    string
	// Stderr receives the logs (os.Stderr when nil).
	Stderr io.Writer
}

// Env is the resolved runtime of a command.
type Env struct {
	Config   config.Config
	Registry *grammar.Registry
	Logger   *slog.Logger
}

// Setup loads the config file, applies the flag overrides, builds the logger
// and registers the custom presets. The selected preset must exist.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if opts.PresetsPath != "" {
		cfg.PresetsFile = opts.PresetsPath
	}
	if opts.Preset != "" {
		cfg.Preset = opts.Preset
	}
	if opts.Namespace != "" {
		cfg.Namespace = opts.Namespace
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	logger := logging.NewWithWriter(stderr, level)

	registry := grammar.NewRegistry()
	if cfg.PresetsFile != "" {
		names, err := registry.LoadFile(cfg.PresetsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load presets: %w", err)
		}
		logger.Debug("presets loaded", "file", cfg.PresetsFile, "names", names)
	}

	if _, err := registry.Lookup(cfg.Preset); err != nil {
		return nil, err
	}

	return &Env{Config: cfg, Registry: registry, Logger: logger}, nil
}

// Service returns a Service bound to the env's registry, namespace and logger.
func (e *Env) Service(hooks ...domain.GenerationHooks) *functree.Service {
	return functree.NewService(e.Registry, e.generatorOptions(hooks...)...)
}

func (e *Env) generatorOptions(hooks ...domain.GenerationHooks) []functree.Option {
	opts := []functree.Option{
		functree.WithRegistry(e.Registry),
		functree.WithNamespace(e.Config.Namespace),
		functree.WithLogger(e.Logger),
	}
	for _, h := range hooks {
		opts = append(opts, functree.WithHooks(h))
	}
	return opts
}
