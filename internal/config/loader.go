package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults
//  2. file (YAML) if PREPDECK_CONFIG is set
//  3. env (prefix PREPDECK_)
func Load() (*Config, error) {
	base := Defaults()

	k := koanf.New(".")

	if path := os.Getenv("PREPDECK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: PREPDECK_HTTP_ADDR, PREPDECK_DB_DRIVER, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("PREPDECK_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "prepdeck_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("http_addr must not be empty")
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return nil, errors.New("db_driver must be sqlite or postgres")
	}
	if cfg.PaperSize <= 0 {
		cfg.PaperSize = Defaults().PaperSize
	}
	return &cfg, nil
}
