// Command reconciler reconciles the owner's property ledger against the
// property manager's records, mortgage statements and rent platform payments.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rentledger/reconciler/config"
	"github.com/rentledger/reconciler/internal/commands"
)

func main() {
	// Load .env file if present; real env vars take precedence.
	_ = godotenv.Load()

	setupLogging(config.Load().Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := commands.NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func setupLogging(cfg config.LoggingConfig) {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
