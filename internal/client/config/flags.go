package config

import (
	"flag"
	"os"
	"time"

	"github.com/internova/internova/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend HTTP API (default from Config)
//	-d string   path of the local SQLite database file (default from Config)
//	-t int      cache freshness window in seconds (default from Config)
//	-r int      background refresh interval in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the backend API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local database file")
	cacheTTL := fs.Int("t", int(cfg.CacheTTL.Seconds()), "cache freshness window (in seconds)")
	refreshInterval := fs.Int("r", int(cfg.RefreshInterval.Seconds()), "background refresh interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.CacheTTL = time.Duration(*cacheTTL) * time.Second
	cfg.RefreshInterval = time.Duration(*refreshInterval) * time.Second
}
