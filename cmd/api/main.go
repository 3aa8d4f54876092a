package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/analytics"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/config"
	v1 "github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/handler/v1"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/nudge"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/repository/postgres"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/risk"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/service"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/pkg/auth"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/pkg/database"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/pkg/logger"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/pkg/metrics"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/pkg/tracer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "wellscore: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log, cfg.App)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracer.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}

	m := metrics.NewCollector("wellscore", prometheus.DefaultRegisterer)

	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("getting underlying sql.DB: %w", err)
	}
	defer sqlDB.Close()

	loc, err := cfg.Analytics.Location()
	if err != nil {
		return fmt.Errorf("loading analytics timezone: %w", err)
	}
	defaultPeriod, err := analytics.ParsePeriod(cfg.Analytics.DefaultPeriod)
	if err != nil {
		return fmt.Errorf("ANALYTICS_DEFAULT_PERIOD: %w", err)
	}
	riskEngine, err := risk.NewEngine()
	if err != nil {
		return err
	}

	jwtManager := auth.NewJWTManager(cfg.JWT)
	auditSvc := service.NewAuditService(postgres.NewAuditRepository(db, m), m, log.Named("audit"))
	authSvc := service.NewAuthService(postgres.NewUserRepository(db, m), jwtManager, auditSvc, log.Named("auth"))
	healthSvc := service.NewBodyCompositionService(
		postgres.NewReadingRepository(db, m),
		postgres.NewScoreRepository(db, m),
		service.Engines{
			Risk: riskEngine,
			Nudges: nudge.NewGenerator(nudge.Standards{
				Weight:  cfg.Scoring.WeightStandard,
				BMI:     cfg.Scoring.BMIStandard,
				BodyFat: cfg.Scoring.BodyFatStandard,
			}),
			Analytics:     analytics.NewEngine(analytics.Options{Location: loc}),
			DefaultPeriod: defaultPeriod,
		},
		auditSvc,
		m,
		log.Named("health"),
	)

	router := v1.NewRouter(v1.RouterDeps{
		Config:   cfg,
		Log:      log.Named("http"),
		Metrics:  m,
		Gatherer: prometheus.DefaultGatherer,
		Tokens:   jwtManager,
		Auth:     authSvc,
		Health:   healthSvc,
		Ping:     sqlDB.PingContext,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown", zap.Error(err))
	}
	auditSvc.Shutdown(shutdownCtx)
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Error("tracer shutdown", zap.Error(err))
	}

	log.Info("shutdown complete", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	return nil
}
