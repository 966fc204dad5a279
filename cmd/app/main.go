package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/attendly/backend/internal/api/http"
	"github.com/attendly/backend/internal/cache"
	"github.com/attendly/backend/internal/config"
	"github.com/attendly/backend/internal/db"
	"github.com/attendly/backend/internal/queue/asynqserver"
	"github.com/attendly/backend/internal/queue/client"
	"github.com/attendly/backend/internal/repository"
	"github.com/attendly/backend/internal/scheduler"
	"github.com/attendly/backend/internal/server"
	"github.com/attendly/backend/internal/service"
	"github.com/attendly/backend/internal/worker"
	"github.com/attendly/backend/pkg/auth"
	"github.com/attendly/backend/pkg/email/smtp"
	"github.com/attendly/backend/pkg/hash"
	"github.com/attendly/backend/pkg/logger"
	"github.com/attendly/backend/pkg/otp"
	"github.com/attendly/backend/pkg/signature"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	appLogger := logger.SetupLogger(cfg.Env, cfg.LogLevel)
	defer appLogger.Sync() //nolint:errcheck

	logger.Info("starting backend api", zap.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		logger.Error("mysql connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			logger.Error("error when closing mysql", zap.Error(err))
		}
	}()
	logger.Info("mysql connection done")

	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		logger.Error("redis connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer redisClient.Close()
	logger.Info("redis connection done")

	hasher := hash.NewBcryptHasher(cfg.Auth.BcryptCost)

	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil {
		logger.Error("smtp sender creation failed", zap.Error(err))
		return
	}

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		logger.Error("auth manager creation err", zap.Error(err))
		return
	}

	otpGenerator := otp.NewRandomGenerator()

	clientKey := ""
	if cfg.Signature.Enabled {
		clientKey, err = signature.LoadOrCreateKey(cfg.Signature.KeyFile)
		if err != nil {
			logger.Error("client key init failed", zap.Error(err))
			return
		}
	}

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL)
	services := service.NewServices(service.Deps{
		Config:       cfg,
		Hasher:       hasher,
		TokenManager: tokenManager,
		OtpGenerator: otpGenerator,
		Repos:        repos,
	})
	handlers := apiHttp.NewHandlers(services, tokenManager, cfg, redisClient, clientKey)

	// Background email queue
	workers := worker.NewWorkers(worker.Deps{
		EmailProvider: emailSender,
		Config:        cfg,
	})

	asynqClient := asynq.NewClient(asynqserver.RedisOptions(cfg.Cache))
	resetClient := client.SetClient(asynqClient)
	defer resetClient()
	defer asynqClient.Close()

	queueServer, queueMux := asynqserver.New(cfg.Cache, workers)
	if err := queueServer.Start(queueMux); err != nil {
		logger.Error("asynq server start failed", zap.Error(err))
		return
	}
	logger.Info("queue server started")

	// Scheduled jobs
	jobs, err := scheduler.New(repos, cfg)
	if err != nil {
		logger.Error("scheduler init failed", zap.Error(err))
		return
	}
	schedulerCtx, cancelScheduler := context.WithCancel(context.Background())
	defer cancelScheduler()
	if err := jobs.Start(schedulerCtx); err != nil {
		logger.Error("scheduler start failed", zap.Error(err))
		return
	}

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		logger.Error("failed to stop server", zap.Error(err))
	}

	jobs.Stop()
	cancelScheduler()
	queueServer.Shutdown()

	logger.Info("app stopped")
}
