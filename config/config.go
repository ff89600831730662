package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration holds the static settings the application needs to run.
// Everything comes from environment variables, optionally loaded from a
// config/env/<GO_ENV>.env file.
type Configuration struct {
	Address          string `env:"ADDRESS" envDefault:":3000"`        // Listen address of the back-office server
	BackendBaseURL   string `env:"BACKEND_BASE_URL,required"`         // Base URL of the REST backend (e.g. http://panel.codelabbenin.com)
	RequestTimeout   int    `env:"REQUEST_TIMEOUT" envDefault:"15"`   // Timeout for outgoing backend calls (seconds)
	SessionTTL       int    `env:"SESSION_TTL" envDefault:"30"`       // Idle lifetime of a mounted session (minutes)
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`       // logrus level: debug, info, warn, error
	LogDir           string `env:"LOG_DIR" envDefault:"logs"`         // Directory for rotated log files
	CORS_Origins     string `env:"CORS_ORIGINS" envDefault:"*"`       // Allowed origins, comma separated (* = all)
	RateLimit_Max    int    `env:"RATE_LIMIT_MAX" envDefault:"100"`   // Max requests per window (0 = disabled)
	RateLimit_Window int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"` // Rate limit window (seconds)
}

// getEnvPath returns the path of the env file for the current environment.
func getEnvPath() string {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// fmt.Printf because the logger may not be initialized yet here
		fmt.Printf("unable to determine working directory: %v\n", err)
		return ""
	}

	// Walk up until a config/env directory is found.
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", goEnv))
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig reads the configuration from the environment, loading the env
// file for the current GO_ENV first when one exists.
func NewConfig() (*Configuration, error) {
	if envPath := getEnvPath(); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return nil, fmt.Errorf("failed to load env file %s: %w", envPath, err)
			}
		}
	}

	cfg := &Configuration{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}
