package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adda-Baaj/login-apitest/internal/app"
	"github.com/Adda-Baaj/login-apitest/internal/config"
	"github.com/Adda-Baaj/login-apitest/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "apitest failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	log.InfoObj("apitest starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	suite, err := app.NewSuite(cfg, log)
	if err != nil {
		log.ErrorObj("failed to initialize suite", "error", err.Error())
		return err
	}
	defer suite.Close()

	sum, err := suite.Run(ctx)
	fmt.Printf("%d scenarios, %d passed, %d failed\n", sum.Total, sum.Passed, sum.Failed)
	if err != nil {
		return fmt.Errorf("suite run: %w", err)
	}
	return nil
}
