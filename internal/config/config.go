package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/functree/pkg/adapters/file"
	"github.com/aretw0/functree/pkg/adapters/redis"
	"github.com/aretw0/functree/pkg/domain"
	"github.com/aretw0/functree/pkg/grammar"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config is the content of a functree.yaml (or .json) file.
type Config struct {
	Preset      string       `mapstructure:"preset"`
	Namespace   string       `mapstructure:"namespace"`
	LogLevel    string       `mapstructure:"log_level"`
	PresetsFile string       `mapstructure:"presets_file"`
	Server      ServerConfig `mapstructure:"server"`
	Corpus      CorpusConfig `mapstructure:"corpus"`
	Redis       RedisConfig  `mapstructure:"redis"`
}

// ServerConfig configures the HTTP and MCP (SSE) listeners.
type ServerConfig struct {
	Port    int `mapstructure:"port"`
	MCPPort int `mapstructure:"mcp_port"`
}

// CorpusConfig configures the file corpus store.
type CorpusConfig struct {
	Dir string `mapstructure:"dir"`
}

// RedisConfig configures the Redis corpus store.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Preset:    grammar.PresetGeneral,
		Namespace: domain.DefaultNamespace,
		LogLevel:  "info",
		Server: ServerConfig{
			Port:    8080,
			MCPPort: 8081,
		},
		Corpus: CorpusConfig{
			Dir: file.DefaultDir,
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: redis.DefaultPrefix,
		},
	}
}

// Load reads path (YAML, or JSON when the extension is .json) over the defaults.
// An empty path returns the defaults. Relative presets_file and corpus.dir paths
// set in the file are resolved against the directory of the config file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := make(map[string]any)
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	if cfg.PresetsFile != "" && !filepath.IsAbs(cfg.PresetsFile) {
		cfg.PresetsFile = filepath.Join(filepath.Dir(path), cfg.PresetsFile)
	}
	if _, set := raw["corpus"]; set && cfg.Corpus.Dir != "" && !filepath.IsAbs(cfg.Corpus.Dir) {
		cfg.Corpus.Dir = filepath.Join(filepath.Dir(path), cfg.Corpus.Dir)
	}
	return cfg, nil
}

// Decode applies raw settings on top of cfg. Unknown keys are errors and
// durations may be written as strings such as "24h".
func Decode(raw map[string]any, cfg *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		TagName:          "mapstructure",
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := redis.ValidateTTL(cfg.Redis.TTL); err != nil {
		return fmt.Errorf("invalid config: redis.ttl: %w", err)
	}
	return nil
}
