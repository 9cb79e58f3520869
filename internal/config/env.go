package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables recognized by the client. They match the names
// the server's own tooling documents.
const (
	EnvServerURL = "GPTME_SERVER_URL"
	EnvToken     = "GPTME_SERVER_TOKEN"
	EnvModel     = "MODEL"
	EnvTimeout   = "GPTME_TIMEOUT"
)

// LoadDotEnv loads a .env file from the working directory when present.
// Missing files are not an error; existing environment wins over .env.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// applyEnvOverrides layers environment variables over a loaded config.
func applyEnvOverrides(cfg Config) Config {
	if v := os.Getenv(EnvServerURL); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.DefaultModel = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.TimeoutSeconds = secs
		}
	}
	return cfg
}
