// Package main is the entry point for the tripdash command-line dashboard.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/familytrip/tripboard/internal/cli"
	"github.com/familytrip/tripboard/internal/config"
)

func main() {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		logLevel = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg, err := config.LoadClient()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(cfg, logger).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
