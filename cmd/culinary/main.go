// Command culinary is a terminal recipe book backed by a local SQLite file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Birkbeck/mobile-computing-project-sabbas16/internal/app"
	"github.com/Birkbeck/mobile-computing-project-sabbas16/internal/config"
	"github.com/Birkbeck/mobile-computing-project-sabbas16/internal/db"
	"github.com/Birkbeck/mobile-computing-project-sabbas16/internal/logging"
	"github.com/Birkbeck/mobile-computing-project-sabbas16/internal/writer"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "culinary:", err)
		os.Exit(1)
	}
}

// run opens the store and runs the TUI until the user quits. Queued writes
// are flushed before the store is closed.
func run(args []string) error {
	cfg, err := config.Parse("culinary", args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	logger, err := logging.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("db", cfg.DBPath),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, cfg.DBPath, db.WithLogger(logger.Named("db")))
	if err != nil {
		logger.Error("open store", zap.Error(err))
		return err
	}
	defer store.Close()

	writes := writer.New(store, cfg.Workers, logger.Named("writer"))
	defer writes.Close()

	model := app.New(store, writes, app.Options{
		Splash: cfg.Splash,
		Logger: logger.Named("app"),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("tui", zap.Error(err))
		return err
	}

	logger.Info("shutdown complete")
	return nil
}
