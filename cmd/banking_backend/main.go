package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/banking_backoffice_app/internal/core/services"
	"github.com/SscSPs/banking_backoffice_app/internal/dto"
	"github.com/SscSPs/banking_backoffice_app/internal/handlers"
	"github.com/SscSPs/banking_backoffice_app/internal/middleware"
	"github.com/SscSPs/banking_backoffice_app/internal/platform/config"
	"github.com/SscSPs/banking_backoffice_app/internal/platform/metrics"
	"github.com/SscSPs/banking_backoffice_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/banking_backoffice_app/internal/scheduler"
	"github.com/SscSPs/banking_backoffice_app/migrations"
	"github.com/SscSPs/banking_backoffice_app/pkg/database"
)

// @title Banking Backoffice API
// @version 1.0
// @description Ledger core of the banking back-office.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{MaxConns: cfg.DBMaxConns})
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool)

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, migrations.FS, logger); err != nil {
		return err
	}

	m := metrics.New()
	container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), m)

	var locker scheduler.Locker = scheduler.NewLocalLocker()
	if rdb := database.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); rdb != nil {
		defer rdb.Close()
		locker = scheduler.NewRedisLocker(rdb, "")
	}
	jobs := scheduler.New(locker, cfg.JobLockTTL, m, logger)
	for _, job := range container.Jobs {
		if err := jobs.Register(job); err != nil {
			return err
		}
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v, time.Now); err != nil {
			return err
		}
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.RequestMetrics(m))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Pagination", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	handlers.RegisterRoutes(r, cfg, container, m)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		jobs.Start(gctx)
		<-gctx.Done()

		logger.Info("Shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serverErr := srv.Shutdown(shutdownCtx)
		return errors.Join(serverErr, jobs.Stop(shutdownCtx))
	})

	return g.Wait()
}
