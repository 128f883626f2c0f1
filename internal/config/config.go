// Package config holds process configuration for the gateway.
package config

type Config struct {
	// HTTPAddr is the listen address, e.g. ":8080".
	HTTPAddr string `koanf:"http_addr"`

	// DBDriver selects "sqlite" or "postgres"; DBDSN may be empty for the
	// driver default.
	DBDriver string `koanf:"db_driver"`
	DBDSN    string `koanf:"db_dsn"`

	// AuthSecret signs locally issued JWTs.
	AuthSecret string `koanf:"auth_secret"`

	// PaperSize caps the number of questions in one question paper.
	PaperSize int `koanf:"paper_size"`

	// CORSOrigins lists allowed browser origins.
	CORSOrigins []string `koanf:"cors_origins"`

	// RequestTimeoutSec bounds a single request end to end.
	RequestTimeoutSec int `koanf:"request_timeout_sec"`

	EnableMetrics bool `koanf:"enable_metrics"`
}

// Defaults returns the baseline configuration before file/env layering.
func Defaults() *Config {
	return &Config{
		HTTPAddr:          ":8080",
		DBDriver:          "sqlite",
		DBDSN:             "",
		AuthSecret:        "prepdeck-dev-secret",
		PaperSize:         10,
		CORSOrigins:       []string{"http://localhost:3000"},
		RequestTimeoutSec: 30,
		EnableMetrics:     true,
	}
}
