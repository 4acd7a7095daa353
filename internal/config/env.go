package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides, e.g. PUBSUBD_ADDR.
const EnvPrefix = "PUBSUBD_"

// envKey maps PUBSUBD_CORS_ENABLED to cors.enabled and PUBSUBD_LOG_LEVEL to
// log_level.
func envKey(s string) string {
	k := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if strings.HasPrefix(k, "cors_") {
		k = "cors." + strings.TrimPrefix(k, "cors_")
	}
	return k
}

// ApplyEnv overlays PUBSUBD_* environment variables onto cfg. List values
// (cors origins/methods/headers) are comma separated.
func ApplyEnv(cfg *Config) error {
	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	setStr := func(key string, dst *string) {
		if k.Exists(key) {
			*dst = k.String(key)
		}
	}
	setStr("name", &cfg.Name)
	setStr("addr", &cfg.Addr)
	setStr("log_level", &cfg.LogLevel)
	setStr("log_format", &cfg.LogFormat)

	if k.Exists("record_limit") {
		n, err := strconv.Atoi(k.String("record_limit"))
		if err != nil {
			return fmt.Errorf("%sRECORD_LIMIT: %w", EnvPrefix, err)
		}
		cfg.RecordLimit = n
	}
	if k.Exists("max_body_bytes") {
		n, err := strconv.ParseInt(k.String("max_body_bytes"), 10, 64)
		if err != nil {
			return fmt.Errorf("%sMAX_BODY_BYTES: %w", EnvPrefix, err)
		}
		cfg.MaxBodyBytes = n
	}
	if k.Exists("cors.enabled") {
		b, err := strconv.ParseBool(k.String("cors.enabled"))
		if err != nil {
			return fmt.Errorf("%sCORS_ENABLED: %w", EnvPrefix, err)
		}
		cfg.CORS.Enabled = b
	}
	if k.Exists("cors.origins") {
		cfg.CORS.Origins = SplitCSV(k.String("cors.origins"))
	}
	if k.Exists("cors.methods") {
		cfg.CORS.Methods = SplitCSV(k.String("cors.methods"))
	}
	if k.Exists("cors.headers") {
		cfg.CORS.Headers = SplitCSV(k.String("cors.headers"))
	}
	return nil
}

// SplitCSV splits a comma separated list, trimming blanks and dropping empty
// items.
func SplitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
