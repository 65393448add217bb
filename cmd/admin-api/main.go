// @title Academy Admin API
// @version 1.0
// @description Administration API of a tutoring academy: students, teachers, notices and homepage popups.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/academy-admin-api/api/swagger"
	"github.com/noah-isme/academy-admin-api/internal/fixtures"
	"github.com/noah-isme/academy-admin-api/internal/handler"
	internalmiddleware "github.com/noah-isme/academy-admin-api/internal/middleware"
	"github.com/noah-isme/academy-admin-api/internal/models"
	"github.com/noah-isme/academy-admin-api/internal/repository"
	"github.com/noah-isme/academy-admin-api/internal/router"
	"github.com/noah-isme/academy-admin-api/internal/service"
	"github.com/noah-isme/academy-admin-api/pkg/cache"
	"github.com/noah-isme/academy-admin-api/pkg/config"
	"github.com/noah-isme/academy-admin-api/pkg/logger"
)

type sessionStore interface {
	Save(ctx context.Context, session models.Session) error
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) (bool, error)
	Ping(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions, closeSessions, err := openSessions(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to open session store", zap.Error(err))
	}
	defer closeSessions()

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	validate := validator.New()
	loc := cfg.Location()
	params := service.RecordManagerParams{
		Validator: validate,
		Logger:    logr,
		Metrics:   metrics,
		Location:  loc,
	}

	stores := fixtures.NewStores(cfg.Fixtures.Seed)
	students := service.NewStudentService(stores.Students, params)
	teachers := service.NewTeacherService(stores.Teachers, params)
	notices := service.NewNoticeService(stores.Notices, params)
	popups := service.NewPopupService(stores.Popups, params)

	auth, err := service.NewAuthService(sessions, validate, logr, metrics, service.AuthConfig{
		AdminID:     cfg.Admin.ID,
		Password:    cfg.Admin.Password,
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.Session.TTL,
		Issuer:      cfg.JWT.Issuer,
	})
	if err != nil {
		logr.Fatal("failed to init auth", zap.Error(err))
	}

	dashboard := service.NewDashboardService(service.DashboardServiceParams{
		Students: students,
		Teachers: teachers,
		Notices:  notices,
		Popups:   popups,
		Logger:   logr,
	})
	exports := service.NewExportService(students, teachers, cfg.Export.PDFFontPath, logr)

	engine := router.New(router.Options{
		Config:  cfg,
		Logger:  logr,
		Metrics: metrics,
		Guard:   internalmiddleware.SessionGuard(auth),
	}, router.Handlers{
		Auth:      handler.NewAuthHandler(auth),
		Dashboard: handler.NewDashboardHandler(dashboard),
		Students:  handler.NewStudentHandler(students, exports),
		Teachers:  handler.NewTeacherHandler(teachers, exports),
		Notices:   handler.NewNoticeHandler(notices),
		Popups:    handler.NewPopupHandler(popups),
		Public:    handler.NewPublicHandler(notices, popups, cfg.APIPrefix),
		Metrics:   handler.NewMetricsHandler(metrics, sessions),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "session_store", cfg.Session.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

func openSessions(ctx context.Context, cfg *config.Config, logr *zap.Logger) (sessionStore, func(), error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewRedisSessionRepository(client, cfg.Session.TTL, logr)
		return repo, func() {
			if err := repo.Close(); err != nil {
				logr.Warn("failed to close redis", zap.Error(err))
			}
		}, nil
	case config.SessionStoreMemory, "":
		return repository.NewMemorySessionRepository(cfg.Session.TTL), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}
