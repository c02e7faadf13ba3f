package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// BackendURLEnvVar overrides the configured backend base URL when set,
// so deployments can point the app at staging vs production without
// editing the config file.
const BackendURLEnvVar = "CLARITY_BACKEND_URL"

const defaultBackendURL = "http://localhost:8080"

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Backend struct {
		BaseURL               string `yaml:"baseUrl"`
		RequestTimeoutSeconds int    `yaml:"requestTimeoutSeconds"`
	} `yaml:"backend"`

	Ticker struct {
		IntervalMs int `yaml:"intervalMs"`
	} `yaml:"ticker"`

	Session struct {
		TTLMinutes int `yaml:"ttlMinutes"`
	} `yaml:"session"`
}

// LoadConfig reads the configuration file and applies environment
// overrides and defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if env := os.Getenv(BackendURLEnvVar); env != "" {
		cfg.Backend.BaseURL = env
	}
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = defaultBackendURL
	}
	// The UI historically configured the URL with a trailing slash;
	// endpoint paths below always start with one.
	cfg.Backend.BaseURL = strings.TrimRight(cfg.Backend.BaseURL, "/")

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Backend.RequestTimeoutSeconds == 0 {
		cfg.Backend.RequestTimeoutSeconds = 30
	}
	if cfg.Ticker.IntervalMs == 0 {
		cfg.Ticker.IntervalMs = 3000
	}
	if cfg.Session.TTLMinutes == 0 {
		cfg.Session.TTLMinutes = 30
	}

	return &cfg, nil
}
