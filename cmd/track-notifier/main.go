package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/BearBump/ParcelDesk/config"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.LoadConfig(os.Getenv("configPath"))
	if err != nil {
		panic(fmt.Sprintf("config parse error, %v", err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = runNotifier(ctx, cfg, defaultNotifierFactories(), opsHTTPOpts{httpAddr: cfg.ParcelDesk.NotifierHTTPAddr})
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("track-notifier stopped", "error", err.Error())
		os.Exit(1)
	}
}
