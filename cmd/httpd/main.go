// Package main serves the crawler over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"aacrawler/internal/api"
	"aacrawler/internal/config"
	"aacrawler/internal/crawler"
	"aacrawler/internal/logger"
	"aacrawler/internal/metrics"
	"aacrawler/internal/normalizer"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	addr := flag.String("addr", "", "Listen address (overrides config)")

	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Resolve(*configFile)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v\n", err)
	}

	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	l := logger.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.NewMetrics()
	client, err := crawler.NewClientFromConfig(cfg, crawler.WithLogger(l), crawler.WithRecorder(m))
	if err != nil {
		log.Fatalf("❌ Failed to create client: %v\n", err)
	}
	server := api.NewServer(client, normalizer.NewProcessor(cfg.Crawler.SummaryLength), m.Handler(), l, Version)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		l.Info("HTTP server listening", "addr", srv.Addr, "config", cfg.String())

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("HTTP server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error("HTTP server shutdown failed", "error", err)
	}

	l.Info("HTTP server stopped")
}
