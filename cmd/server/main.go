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

	"github.com/ErlanBelekov/league-manager/config"
	"github.com/ErlanBelekov/league-manager/internal/auth"
	"github.com/ErlanBelekov/league-manager/internal/clock"
	"github.com/ErlanBelekov/league-manager/internal/email"
	"github.com/ErlanBelekov/league-manager/internal/health"
	"github.com/ErlanBelekov/league-manager/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/league-manager/internal/log"
	"github.com/ErlanBelekov/league-manager/internal/metrics"
	httptransport "github.com/ErlanBelekov/league-manager/internal/transport/http"
	"github.com/ErlanBelekov/league-manager/internal/transport/http/handler"
	"github.com/ErlanBelekov/league-manager/internal/usecase"
	"github.com/ErlanBelekov/league-manager/internal/validate"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := ctxlog.New(cfg.Env, cfg.SlogLevel(), os.Stdout)

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DBConnectAttempts, logger)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	gameRepo := postgres.NewGameRepository(pool)

	// Auth
	hasher := auth.NewBcryptHasher(0)
	codec := auth.NewTokenCodec([]byte(cfg.JWTSecret), cfg.TokenTTL, clock.New())
	policy := auth.DefaultPolicy()
	if !cfg.AdminOverride {
		policy = auth.NewPolicy()
	}

	notifier := email.NewNotifier(email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger), logger)

	authUsecase, err := usecase.NewAuthUsecase(userRepo, hasher, codec)
	if err != nil {
		stop()
		log.Fatalf("auth: %v", err)
	}
	userUsecase := usecase.NewUserUsecase(userRepo, hasher, policy, notifier)
	teamUsecase := usecase.NewTeamUsecase(teamRepo, userRepo, policy, validate.TeamRules{EnforceRoles: cfg.EnforceTeamRoles})
	gameUsecase := usecase.NewGameUsecase(gameRepo, teamRepo, userRepo, policy)

	handlers := httptransport.Handlers{
		Auth:  handler.NewAuthHandler(authUsecase, userUsecase, logger),
		Users: handler.NewUserHandler(userUsecase, logger),
		Teams: handler.NewTeamHandler(teamUsecase, logger),
		Games: handler.NewGameHandler(gameUsecase, logger),
	}

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer,
		health.Ping("postgres", pool),
		health.Dependency{
			Name:  "schema",
			Check: func(ctx context.Context) error { return postgres.SchemaReady(ctx, pool) },
		},
	)

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httptransport.NewRouter(logger, cfg.CORSAllowedOrigins, codec, userRepo, handlers),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	if err := postgres.SchemaReady(ctx, pool); err != nil {
		logger.Warn("database not ready", "error", err)
	}

	go func() {
		logger.Info("server started", "port", cfg.Port, "admin_override", cfg.AdminOverride)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}
