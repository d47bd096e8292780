// Package config parses command-line configuration for the recipe app.
package config

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Birkbeck/mobile-computing-project-sabbas16/internal/db"
)

// Config holds the application settings.
type Config struct {
	DBPath  string
	LogPath string
	Debug   bool
	Splash  time.Duration
	Workers int
}

// LogFileName is the log file created next to the database by default.
const LogFileName = "culinary.log"

// Parse reads flags from args (without the program name).
func Parse(name string, args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.DBPath, "db", db.DefaultDBPath(), "recipes database file")
	fs.StringVar(&cfg.LogPath, "log", "", "log file (default: next to the database; \"-\" disables logging)")
	fs.BoolVar(&cfg.Debug, "debug", false, "log debug messages")
	fs.DurationVar(&cfg.Splash, "splash", 2*time.Second, "splash screen duration")
	fs.IntVar(&cfg.Workers, "workers", 2, "background write workers")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.DBPath == "" {
		return Config{}, errors.New("database path must not be empty")
	}
	if cfg.Workers < 1 {
		return Config{}, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.Splash < 0 {
		return Config{}, fmt.Errorf("splash duration must not be negative, got %s", cfg.Splash)
	}

	switch cfg.LogPath {
	case "":
		cfg.LogPath = filepath.Join(filepath.Dir(cfg.DBPath), LogFileName)
	case "-":
		cfg.LogPath = ""
	}
	return cfg, nil
}
