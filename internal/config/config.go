// Package config loads daemon configuration, following the teacher's
// cmd/ccoind flag-parsing shape (flat struct, flag.StringVar/IntVar
// calls, no env/file layering beyond flag defaults).
package config

import "flag"

// Config holds the poold daemon's configuration.
type Config struct {
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	UseMemoryStore bool

	TreeDepth   int
	HistorySize int

	OwnerSeed string
	TokenSeed string

	LogLevel string

	DataDir string
}

// Parse reads configuration from command-line flags.
func Parse() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.DBHost, "db-host", "localhost", "PostgreSQL host")
	flag.IntVar(&cfg.DBPort, "db-port", 5432, "PostgreSQL port")
	flag.StringVar(&cfg.DBUser, "db-user", "shieldpool", "PostgreSQL user")
	flag.StringVar(&cfg.DBPassword, "db-password", "", "PostgreSQL password")
	flag.StringVar(&cfg.DBName, "db-name", "shieldpool", "PostgreSQL database name")
	flag.BoolVar(&cfg.UseMemoryStore, "memory-store", false, "use the in-memory descriptor store instead of PostgreSQL")

	flag.IntVar(&cfg.TreeDepth, "tree-depth", 20, "accumulator depth")
	flag.IntVar(&cfg.HistorySize, "history-size", 100, "rolling root history size")

	flag.StringVar(&cfg.OwnerSeed, "owner-seed", "owner", "seed the initial pool owner handle is derived from")
	flag.StringVar(&cfg.TokenSeed, "token-seed", "token", "seed the pool's token identity handle is derived from")

	flag.StringVar(&cfg.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.StringVar(&cfg.DataDir, "data-dir", "./data", "data directory")

	flag.Parse()
	return cfg
}
