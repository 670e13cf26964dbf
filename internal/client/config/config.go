package config

import "time"

// Config holds runtime settings for the Internova CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend HTTP API.
//   - DatabasePath: path of the local SQLite database file.
//   - CacheTTL: freshness window of the in-memory cache.
//   - RefreshInterval: how often the background watcher polls the backend.
//
// Units: CacheTTL and RefreshInterval are time.Durations.
type Config struct {
	ServerEndpointAddr string
	DatabasePath       string
	CacheTTL           time.Duration
	RefreshInterval    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.DatabasePath = "internova.db"
	c.CacheTTL = 30 * time.Second
	c.RefreshInterval = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
