package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"pubsubd/internal/common/fsutil"
)

// Sink names accepted in Subscription.Sink.
const (
	SinkLog    = "log"
	SinkRecord = "record"
)

// Subscription binds an event to a built-in sink at startup.
type Subscription struct {
	Event string `json:"event" yaml:"event" toml:"event"`
	Sink  string `json:"sink" yaml:"sink" toml:"sink"`
}

// CORS configures the optional CORS middleware.
type CORS struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

// Config holds runtime parameters for the daemon.
// Zero values mean "unspecified" and are replaced by Defaults.
type Config struct {
	Name          string         `json:"name" yaml:"name" toml:"name"`
	Addr          string         `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel      string         `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat     string         `json:"log_format" yaml:"log_format" toml:"log_format"`
	RecordLimit   int            `json:"record_limit" yaml:"record_limit" toml:"record_limit"`
	MaxBodyBytes  int64          `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	CORS          CORS           `json:"cors" yaml:"cors" toml:"cors"`
	Subscriptions []Subscription `json:"subscriptions" yaml:"subscriptions" toml:"subscriptions"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml. A leading ~ is expanded.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse json: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, cfg.Validate()
}

// Validate checks subscription entries.
func (c Config) Validate() error {
	for i, s := range c.Subscriptions {
		if strings.TrimSpace(s.Event) == "" {
			return fmt.Errorf("subscriptions[%d]: empty event", i)
		}
		switch s.Sink {
		case SinkLog, SinkRecord:
		default:
			return fmt.Errorf("subscriptions[%d]: unknown sink %q", i, s.Sink)
		}
	}
	return nil
}
