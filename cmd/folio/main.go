package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"folio/internal/config"
	httpx "folio/internal/http"
	"folio/internal/kv"
	"folio/internal/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("config load failed", "error", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		logging.Fatal("store init failed", "backend", cfg.KVBackend, "error", err)
	}

	r := httpx.NewRouter(cfg, store)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("listening", "addr", cfg.HTTPAddr, "backend", cfg.KVBackend, "base_path", cfg.BasePath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server failed", "error", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func openStore(cfg config.Config) (kv.Store, error) {
	switch cfg.KVBackend {
	case config.BackendMemory:
		return kv.NewMemory(), nil
	case config.BackendRedis:
		return kv.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case config.BackendPostgres:
		return kv.NewPostgres(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.KVBackend)
	}
}
