package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"casedesk-backend/config"
	"casedesk-backend/handlers"
	"casedesk-backend/logger"
	"casedesk-backend/metrics"
	"casedesk-backend/notification"
	"casedesk-backend/repository"
	"casedesk-backend/service"
	"casedesk-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(envFiles *[]string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API.

Examples:
  casedesk serve
  casedesk serve --addr :9090 --env-file prod.env`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, *envFiles, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to :$PORT)")
	return cmd
}

func runServe(cmd *cobra.Command, envFiles []string, addr string) error {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(logger.Config{Env: cfg.LogEnv, Level: cfg.LogLevel, ServiceName: cfg.AppName})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	if cfg.LogEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := buildServer(ctx, cfg, log)
	if err != nil {
		return err
	}
	if addr != "" {
		srv.Addr = addr
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("stopped")
	return nil
}

// buildServer wires storage, services and the router into an http.Server.
func buildServer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*http.Server, error) {
	fileStorage, err := storage.NewStorage(ctx, cfg.StorageConfig())
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.Info("storage initialized", logger.Component("storage"), zap.String("type", cfg.StorageType))

	m := metrics.New()
	store := repository.NewStore()
	notifier := notification.NewLogNotifier(log.Named("notify"))
	issuer := service.NewTokenIssuer(cfg.SecretKey, cfg.AppName, cfg.AccessTTL(), cfg.RefreshTTL(), time.Now)

	authService := service.NewAuthService(
		service.WithAuthStore(store),
		service.WithTokenIssuer(issuer),
		service.WithDefaultAdminEmail(cfg.DefaultAdminEmail),
		service.WithRevokeOnRefresh(cfg.RevokeOnRefresh),
		service.WithAuthMetrics(m),
	)

	if cfg.DefaultAdminPassword != "" {
		bootCtx := logger.ToContext(ctx, log)
		created, err := authService.EnsureDefaultAdmin(bootCtx, cfg.DefaultAdminPassword)
		if err != nil {
			return nil, fmt.Errorf("ensure default admin: %w", err)
		}
		if created {
			log.Info("default admin created", logger.Email(cfg.DefaultAdminEmail))
		}
	}

	router := handlers.NewRouter(handlers.Services{
		Auth: authService,
		Profiles: service.NewProfileService(
			service.WithProfileRepository(store.Profiles),
			service.WithAlertSettingsRepository(store.Alerts),
		),
		Disputes: service.NewDisputeService(
			service.WithDisputeRepository(store.Disputes),
			service.WithDisputeNotifier(notifier),
			service.WithDisputeMetrics(m),
		),
		Litigation: service.NewLitigationService(
			service.WithLitigationRepository(store.Litigation),
			service.WithLitigationNotifier(notifier),
			service.WithLitigationMetrics(m),
		),
		Admin: service.NewAdminService(service.WithAdminStore(store)),
		Files: service.NewFileService(
			service.WithStorage(fileStorage),
			service.WithFileDisputeRepository(store.Disputes),
			service.WithFileMetrics(m),
		),
		Courses: service.NewCourseService(service.WithCourseRepository(store.Courses)),
	}, handlers.RouterConfig{
		Logger:              log.Named("http"),
		Metrics:             m,
		AuthRateLimitPerSec: cfg.AuthRateLimitPerSec,
		AuthRateLimitBurst:  cfg.AuthRateLimitBurst,
		MaxMultipartMemory:  cfg.MaxMultipartMemory(),
	})

	return &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}, nil
}
