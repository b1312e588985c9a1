// Package config resolves runtime settings from defaults, an optional YAML
// file and WBS_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath  string        `yaml:"db_path"`
	HTTP    HTTPConfig    `yaml:"http"`
	Engine  EngineConfig  `yaml:"engine"`
	Logging LoggingConfig `yaml:"logging"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type EngineConfig struct {
	// LatencyMs delays every mutation before it touches the store.
	LatencyMs int `yaml:"latency_ms"`
}

type LoggingConfig struct {
	UseCases bool   `yaml:"use_cases"`
	Level    string `yaml:"level"`
}

// DefaultConfig keeps all state under ~/.wbs.
func DefaultConfig() Config {
	return Config{
		DBPath:  filepath.Join(baseDir(), "wbs.db"),
		HTTP:    HTTPConfig{Addr: "127.0.0.1:8080"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Latency is the configured artificial mutation delay.
func (c Config) Latency() time.Duration {
	return time.Duration(c.Engine.LatencyMs) * time.Millisecond
}

// Load reads the YAML file named by WBS_CONFIG, or ~/.wbs/config.yaml when
// unset, then applies environment overrides. A missing default file is not an
// error; a missing explicit one is.
func Load() (Config, error) {
	path, explicit := os.Getenv("WBS_CONFIG"), true
	if path == "" {
		path, explicit = filepath.Join(baseDir(), "config.yaml"), false
	}

	cfg, err := LoadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg = DefaultConfig()
		} else {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto DefaultConfig.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Engine.LatencyMs < 0 {
		return cfg, fmt.Errorf("config %s: engine.latency_ms must be >= 0", path)
	}
	return cfg, nil
}

// applyEnv overrides file values. Unparseable values are ignored.
func applyEnv(cfg *Config) {
	if v := os.Getenv("WBS_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("WBS_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("WBS_LATENCY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Engine.LatencyMs = n
		}
	}
	if v := os.Getenv("WBS_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Logging.UseCases = b
		}
	}
	if v := os.Getenv("WBS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wbs"
	}
	return filepath.Join(home, ".wbs")
}
