package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	httpctx "github.com/dtroode/archia-server/internal/api/http/context"
	"github.com/dtroode/archia-server/internal/api/http/handler"
	"github.com/dtroode/archia-server/internal/api/http/router"
	httpserver "github.com/dtroode/archia-server/internal/api/http/server"
	"github.com/dtroode/archia-server/internal/config"
	"github.com/dtroode/archia-server/internal/logger"
	"github.com/dtroode/archia-server/internal/metrics"
	"github.com/dtroode/archia-server/internal/model"
	"github.com/dtroode/archia-server/internal/repository/postgres"
	"github.com/dtroode/archia-server/internal/server"
	"github.com/dtroode/archia-server/internal/service"
	"github.com/dtroode/archia-server/internal/storage/minio"
	"github.com/dtroode/archia-server/internal/telemetry"
	"github.com/dtroode/archia-server/internal/token"
)

func newServeCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewConfig(rootOpts.envFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	log := logger.NewWithFormat(cfg.LogLevel, cfg.LogFormat, os.Stdout).With("service", cfg.ServiceName)
	writeVersion(os.Stdout)

	if cfg.Tracing.Enabled {
		tp, err := telemetry.InitTracing(ctx, telemetry.Options{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRate:  cfg.Tracing.SampleRate,
			Insecure:    cfg.Tracing.Insecure,
		})
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				log.Error("failed to flush traces", "error", err)
			}
		}()
	}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN, postgres.Options{
		QueryTimeout: cfg.Database.QueryTimeout,
		MaxConns:     cfg.Database.MaxConns,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	var archive model.Storage
	if cfg.Storage.Enabled {
		client, err := minio.New(ctx, minio.Options{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			return err
		}
		archive = client
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	userRepo := postgres.NewUserRepository(db)
	storyRepo := postgres.NewStoryRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)

	sessionService := service.NewSession(token.NewJWT(cfg.Session.Secret, cfg.ServiceName), sessionRepo, cfg.Session.TTL, log)
	authService := service.NewAuth(userRepo, sessionService, cfg.Auth.BcryptCost, m, log)
	storyService := service.NewStory(storyRepo, archive, m, log)
	engagementService := service.NewEngagement(storyRepo, m, log)

	health := handler.NewHealth(db)

	gin.SetMode(gin.ReleaseMode)
	engine := router.New(router.Dependencies{
		AuthService:       authService,
		SessionResolver:   sessionService,
		StoryService:      storyService,
		EngagementService: engagementService,
		ContextManager:    httpctx.NewManager(),
		Health:            health,
		Metrics:           m,
		Gatherer:          registry,
		ServiceName:       cfg.ServiceName,
		Logger:            log,
	}).Register()

	srv := httpserver.NewHTTPServer(engine, cfg.Addr())

	var sl model.SecurityLayer = server.NewPlainListener()
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	}

	startErr := make(chan error, 1)
	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		log.Info("starting server", "address", s.Address(), "tls", cfg.HTTP.EnableHTTPS)
		startErr <- s.Start(sl)
	}(srv)

	select {
	case <-ctx.Done():
		log.Info("received interruption signal, shutting down")
	case err := <-startErr:
		if err != nil {
			return err
		}
		return errors.New("server stopped unexpectedly")
	}

	health.SetShuttingDown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	log.Info("shutdown complete")
	return nil
}
