package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	auditrepo "github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/users"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/logging"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, logger *zap.Logger, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT. SIGKILL can't be caught.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server", zap.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	// Background work stops after in-flight requests have drained.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	logger.Info("server exiting")
}

func Run(cfg *config.Config, version string) {
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, version)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Flusher(logger)()

	gin.SetMode(cfg.HTTP.GinMode)
	logger.Info("starting bookshelf", zap.String("database", cfg.Database.Path))

	db, err := database.NewDatabase(cfg.Database.Path,
		database.WithLogger(logging.NewGormLogger(logger, cfg.Database.LogLevel)))
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database", zap.Error(err))
		}
	}()

	userRepo := users.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	auditRepo := auditrepo.NewRepository(db.DB)

	var auditService *audit.Service
	if cfg.Audit.Enabled {
		auditService = audit.NewService(auditRepo, logger)
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var auditScheduler *scheduler.AuditCleanupScheduler
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg, logger)
		if err != nil {
			logger.Fatal("failed to initialize task queue", zap.Error(err))
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				logger.Error("error closing task client", zap.Error(err))
			}
		}()

		taskClient.Register(tasks.NewCleanupAuditEventsQueue(auditRepo, logger))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		if cfg.Audit.Enabled {
			auditScheduler = scheduler.NewAuditCleanupScheduler(
				taskClient, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays, logger)
			if err := auditScheduler.Start(taskCtx); err != nil {
				logger.Error("audit cleanup disabled", zap.Error(err))
				auditScheduler = nil
			}
		}
	} else if cfg.Audit.Enabled {
		logger.Warn("task queue disabled, old audit events will not be cleaned up")
	}

	routerCfg := http_controllers.RouterConfig{
		Users:              userRepo,
		Books:              bookRepo,
		Owners:             userRepo,
		Audit:              auditRepo,
		Database:           db,
		AuditService:       auditService,
		AuditRetentionDays: cfg.Audit.RetentionDays,
		Logger:             logger,
		Version:            version,
	}
	if taskClient != nil {
		routerCfg.TaskClient = taskClient
	}
	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if auditScheduler != nil {
			auditScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
		if auditService != nil {
			auditService.Wait()
		}
	}

	Serve(router, cfg, logger, onShutdown)
}
