package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/lmittmann/tint"

	"github.com/andrsk/aquarium-server/internal/app"
	"github.com/andrsk/aquarium-server/internal/config"
)

func main() {
	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, nil)
	if config.Development() {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level: slog.LevelDebug,
		})
	}
	logger := slog.New(handler)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := app.New(logger).Start(ctx); err != nil {
		logger.Error("failed to start", slog.Any("error", err))
		os.Exit(1)
	}
}
