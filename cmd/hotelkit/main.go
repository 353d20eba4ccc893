package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/squaredbusinessman/hotelkit/internal/app"
	"github.com/squaredbusinessman/hotelkit/internal/config"
	"github.com/squaredbusinessman/hotelkit/internal/logger"
)

func main() {
	// грузим конфиг
	cfg, args, err := config.Load(os.Args[1:])
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// валидируем загруженный конфиг
	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = logger.Log.Sync() }()

	// autosave живёт до Ctrl-C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, logger.Log, args, os.Stdout); err != nil {
		logger.Log.Debug("command failed", zap.Error(err))
		_, _ = fmt.Fprintln(os.Stderr, err)

		code := 1
		if errors.Is(err, app.ErrUsage) {
			code = 2
		}
		stop()
		_ = logger.Log.Sync()
		os.Exit(code)
	}
}
