package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/swap-terminal/internal/app"
	"github.com/rovshanmuradov/swap-terminal/internal/config"
	"github.com/rovshanmuradov/swap-terminal/internal/logger"
)

func main() {
	configPath := flag.String("config", "configs/config.json", "path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logCfg := logger.DefaultConfig()
	logCfg.LogFile = cfg.LogFile
	logCfg.Development = cfg.DebugLogging

	log, logBuf, err := logger.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("Starting swap terminal")

	runner := app.NewRunner(cfg, log, logBuf)
	if err := runner.Run(context.Background()); err != nil {
		log.Error("Terminal exited with error", zap.Error(err))
		_ = logger.Sync(log)
		os.Exit(1)
	}

	log.Info("Swap terminal stopped")
}
