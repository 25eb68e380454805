// Package main is the entry point for the envlight SDL player.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/envlight/internal/config"
	"github.com/Faultbox/envlight/internal/logger"
	"github.com/Faultbox/envlight/internal/player"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== envlight player ===")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p, err := player.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to start player", zap.Error(err))
		os.Exit(1)
	}
	defer p.Close()

	if err := p.Run(ctx); err != nil {
		logger.Error("player error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("player closed normally")
}
