package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"udcf/internal/audit"
	auditHandler "udcf/internal/audit/handler"
	consentHandler "udcf/internal/consent/handler"
	consentService "udcf/internal/consent/service"
	consentStore "udcf/internal/consent/store"
	"udcf/internal/decision"
	decisionHandler "udcf/internal/decision/handler"
	"udcf/internal/platform/config"
	"udcf/internal/platform/database"
	"udcf/internal/platform/health"
	"udcf/internal/platform/logger"
	"udcf/internal/platform/metrics"
	"udcf/internal/policy"
	"udcf/internal/stats"
	statsHandler "udcf/internal/stats/handler"
	httptransport "udcf/internal/transport/http"
)

// main wires dependencies and owns the server lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing udcf",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
	)

	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Without a configured database the service runs on in-memory stores.
	// Useful for local development; state does not survive a restart.
	var (
		consents consentService.Store
		trail    audit.Store
	)
	if pool != nil {
		consents = consentStore.NewPostgres(pool.DB())
		trail = audit.NewPostgres(pool.DB())
		log.Info("using postgres-backed stores")
	} else {
		consents = consentStore.New()
		trail = audit.NewInMemoryStore()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	m := metrics.New()

	consentSvc := consentService.NewService(consents, log, consentService.WithMetrics(m))
	trailLog := audit.NewLog(trail, audit.WithMetrics(m), audit.WithLogger(log))
	decisionSvc := decision.NewService(consentSvc, policy.NewEngine(), trailLog, log, decision.WithMetrics(m))
	statsSvc := stats.NewService(trailLog)

	healthHandler := health.New(cfg.Environment)
	if pool != nil {
		healthHandler.RegisterCheck("database", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return pool.Health(ctx)
		})
	}

	router := httptransport.NewRouter(httptransport.Handlers{
		Decision: decisionHandler.New(decisionSvc, log),
		Consent:  consentHandler.New(consentSvc, log),
		Audit:    auditHandler.New(trailLog, log),
		Stats:    statsHandler.New(statsSvc, log),
		Health:   healthHandler,
	}, log, m, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	if err := pool.Close(); err != nil {
		log.Error("failed to close database pool", "error", err)
	}

	log.Info("server stopped")
}
