package config

import (
	"encoding/json"
	"os"

	"github.com/miy4x/shigezane-admin/internal/flagx"
	"github.com/miy4x/shigezane-admin/internal/timex"
)

// JsonConfig is the on-disk form of Config. Absent fields keep the value
// from the previous source.
type JsonConfig struct {
	APIBaseURL        string         `json:"api_base_url"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
	LogLevel          string         `json:"log_level"`
	SessionDB         string         `json:"session_db"`
	ExportDir         string         `json:"export_dir"`
	StaleTime         timex.Duration `json:"stale_time"`
	GCTime            timex.Duration `json:"gc_time"`
	RetryDelay        timex.Duration `json:"retry_delay"`
	UploadConcurrency int            `json:"upload_concurrency"`
}

// parseJson overlays cfg with the file named by -c/-config, if any.
// Read and decode errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.SessionDB, jc.SessionDB)
	setString(&cfg.ExportDir, jc.ExportDir)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.StaleTime.Duration > 0 {
		cfg.StaleTime = jc.StaleTime.Duration
	}
	if jc.GCTime.Duration > 0 {
		cfg.GCTime = jc.GCTime.Duration
	}
	if jc.RetryDelay.Duration > 0 {
		cfg.RetryDelay = jc.RetryDelay.Duration
	}
	if jc.UploadConcurrency > 0 {
		cfg.UploadConcurrency = jc.UploadConcurrency
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
