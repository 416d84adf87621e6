// Package config loads client configuration from an optional YAML file with
// environment variable overrides. Precedence: defaults, then file, then env.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Backend
	APIBaseURL  string        `yaml:"api_base_url"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	// Session
	SessionFile string `yaml:"session_file"`

	// Dashboard windows
	RecentLimit int           `yaml:"recent_limit"`
	YearsBack   int           `yaml:"years_back"`
	MonthsBack  int           `yaml:"months_back"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`

	// Chart output
	ChartWidth  int    `yaml:"chart_width"`
	ChartHeight int    `yaml:"chart_height"`
	ChartOutDir string `yaml:"chart_out_dir"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

func defaults() *Config {
	return &Config{
		APIBaseURL:  "http://localhost:3000",
		HTTPTimeout: 15 * time.Second,
		SessionFile: defaultSessionFile(),
		RecentLimit: 3,
		YearsBack:   3,
		MonthsBack:  6,
		CacheTTL:    30 * time.Second,
		ChartWidth:  800,
		ChartHeight: 400,
		ChartOutDir: "./charts",
		LogLevel:    "info",
	}
}

// Load builds the configuration. A config file named by CONFIG_FILE is
// required to exist; the default file path is used only when present.
func Load() (*Config, error) {
	cfg := defaults()

	path := os.Getenv("CONFIG_FILE")
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// Optional file, nothing to overlay.
		default:
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg.APIBaseURL = getEnv("API_BASE_URL", cfg.APIBaseURL)
	cfg.HTTPTimeout = getEnvDuration("HTTP_TIMEOUT", cfg.HTTPTimeout)
	cfg.SessionFile = getEnv("SESSION_FILE", cfg.SessionFile)
	cfg.RecentLimit = getEnvInt("RECENT_LIMIT", cfg.RecentLimit)
	cfg.YearsBack = getEnvInt("YEARS_BACK", cfg.YearsBack)
	cfg.MonthsBack = getEnvInt("MONTHS_BACK", cfg.MonthsBack)
	cfg.CacheTTL = getEnvDuration("CACHE_TTL", cfg.CacheTTL)
	cfg.ChartWidth = getEnvInt("CHART_WIDTH", cfg.ChartWidth)
	cfg.ChartHeight = getEnvInt("CHART_HEIGHT", cfg.ChartHeight)
	cfg.ChartOutDir = getEnv("CHART_OUT_DIR", cfg.ChartOutDir)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if parsed, err := url.Parse(c.APIBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s': %v", c.APIBaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API base URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	} else if parsed.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s': missing host", c.APIBaseURL))
	}

	if c.HTTPTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at least 1 second", c.HTTPTimeout))
	} else if c.HTTPTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at most 5 minutes", c.HTTPTimeout))
	}

	if c.SessionFile == "" {
		errors = append(errors, "session file path cannot be empty")
	}

	if c.RecentLimit < 1 || c.RecentLimit > 50 {
		errors = append(errors, fmt.Sprintf("invalid recent limit %d: must be between 1 and 50", c.RecentLimit))
	}
	if c.YearsBack < 1 || c.YearsBack > 50 {
		errors = append(errors, fmt.Sprintf("invalid years window %d: must be between 1 and 50", c.YearsBack))
	}
	if c.MonthsBack < 1 || c.MonthsBack > 120 {
		errors = append(errors, fmt.Sprintf("invalid months window %d: must be between 1 and 120", c.MonthsBack))
	}
	if c.CacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must not be negative", c.CacheTTL))
	}

	if c.ChartWidth < 200 || c.ChartWidth > 4000 {
		errors = append(errors, fmt.Sprintf("invalid chart width %d: must be between 200 and 4000", c.ChartWidth))
	}
	if c.ChartHeight < 150 || c.ChartHeight > 4000 {
		errors = append(errors, fmt.Sprintf("invalid chart height %d: must be between 150 and 4000", c.ChartHeight))
	}
	if c.ChartOutDir == "" {
		errors = append(errors, "chart output directory cannot be empty")
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	isValidLevel := false
	for _, level := range validLevels {
		if strings.EqualFold(c.LogLevel, level) {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func defaultConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".utangku", "config.yaml")
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.utangku/session"
	}
	return filepath.Join(home, ".utangku", "session")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
