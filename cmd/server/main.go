package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"memberlist/internal/member/handler"
	membermetrics "memberlist/internal/member/metrics"
	"memberlist/internal/member/service"
	"memberlist/internal/member/store"
	"memberlist/internal/platform/config"
	"memberlist/internal/platform/httpserver"
	"memberlist/internal/platform/logger"
	"memberlist/internal/platform/metrics"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	memberStore, cleanup, err := newStore(cfg)
	if err != nil {
		log.Error("failed to set up store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	httpMetrics := metrics.New()
	memberService := service.NewService(memberStore,
		service.WithMetrics(membermetrics.New()),
	)

	router := chi.NewRouter()
	handler.New(memberService, log, httpMetrics).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting memberlist", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

// newStore selects the persistence backend: PostgreSQL when DATABASE_URL is
// set, the in-memory store otherwise.
func newStore(cfg config.Server) (store.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		return store.NewInMemory(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return store.NewPostgres(db), func() { _ = db.Close() }, nil
}
