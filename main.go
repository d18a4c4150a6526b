package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ellavondegurechaff/packengine/cmd"
	"github.com/ellavondegurechaff/packengine/internal/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	slog.SetDefault(slog.New(logger.New(logger.Options{Level: slog.LevelInfo, Color: true})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.NewRootCommand(version, commit).ExecuteContext(ctx); err != nil {
		slog.Error("Command failed",
			slog.String("type", "sys"),
			slog.Any("error", err))
		stop()
		os.Exit(1)
	}
}
