package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fjod/go_shop/internal/app"
	"github.com/fjod/go_shop/internal/config"
	"github.com/fjod/go_shop/internal/console"
	"github.com/fjod/go_shop/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("shop", logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Stderr: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("shop stopped", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := app.NewContainer(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to start shop: %w", err)
	}
	defer container.Close()

	if len(container.Customers) == 0 {
		return errors.New("no customers registered")
	}

	shell := console.NewShell(container.Shop, container.Customers[0], os.Stdin, os.Stdout, log)
	return shell.Run(ctx)
}
