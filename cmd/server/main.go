package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/finance-tracker-be/internal/backend"
	"github.com/hongminglow/finance-tracker-be/internal/config"
	applog "github.com/hongminglow/finance-tracker-be/internal/log"
	"github.com/hongminglow/finance-tracker-be/internal/server"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := applog.New(applog.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Component: applog.ComponentApp})
	applog.SetDefault(logger)

	ctx := context.Background()
	store, err := backend.Open(ctx, cfg)
	if err != nil {
		logger.Error("init storage", "backend", cfg.DataBackend, applog.FieldError, err)
		os.Exit(1)
	}
	defer store.Close()

	srv := server.New(cfg, store, logger)

	go func() {
		logger.Info("finance tracker listening", "address", cfg.HTTPAddress(), "backend", cfg.DataBackend, "base_path", cfg.APIBasePath)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", applog.FieldError, err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", applog.FieldError, err)
	}
	logger.Info("server stopped")
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
