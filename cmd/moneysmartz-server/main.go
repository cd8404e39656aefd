package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/errgroup"

	"github.com/appengine-ltd/money-smartz/internal/game"
	"github.com/appengine-ltd/money-smartz/internal/metrics"
	"github.com/appengine-ltd/money-smartz/internal/server"
	"github.com/appengine-ltd/money-smartz/internal/storage/sqlite"
	"github.com/appengine-ltd/money-smartz/pkg/logging"
)

func main() {
	logging.Setup()

	port := getEnv("PORT", "8080")
	dbPath := getEnv("DB_PATH", "data/moneysmartz.db")

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "path", dbPath)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.New(reg)

	srv := server.New(store, metrics.Handler(reg), game.WithObserver(collector))
	httpServer := &fasthttp.Server{
		Handler:      srv.Handler(),
		Name:         "moneysmartz",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "port", port)
		return httpServer.ListenAndServe(":" + port)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		return httpServer.Shutdown()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// getEnv returns the environment variable value or a fallback.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
