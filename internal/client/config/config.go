package config

import (
	"os"
	"time"
)

const (
	DefaultAPIBaseURL = "https://shigezane-admin-functions.azurewebsites.net/api"
	EnvAPIBaseURL     = "SHIGEZANE_API_BASE_URL"
)

// Config holds runtime settings for the admin console.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	LogLevel       string
	SessionDB      string
	ExportDir      string

	// Query cache tuning.
	StaleTime  time.Duration
	GCTime     time.Duration
	RetryDelay time.Duration

	// UploadConcurrency bounds parallel gallery uploads.
	UploadConcurrency int
}

var getenv = os.Getenv

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	if v := getenv(EnvAPIBaseURL); v != "" {
		c.APIBaseURL = v
	}
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "info"
	c.SessionDB = "shigezane.db"
	c.ExportDir = "."
	c.StaleTime = 10 * time.Minute
	c.GCTime = 15 * time.Minute
	c.RetryDelay = time.Second
	c.UploadConcurrency = 4
}

// LoadConfig applies defaults, then the JSON file, then flags. It panics
// on an unreadable config file or malformed flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
