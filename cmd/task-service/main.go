package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/taskboard/taskboard/internal/api/http"
	"github.com/taskboard/taskboard/internal/api/http/handlers"
	"github.com/taskboard/taskboard/internal/client"
	"github.com/taskboard/taskboard/internal/config"
	"github.com/taskboard/taskboard/internal/events"
	"github.com/taskboard/taskboard/internal/observability"
	"github.com/taskboard/taskboard/internal/persistence"
	"github.com/taskboard/taskboard/internal/repository"
	"github.com/taskboard/taskboard/internal/service"
	"github.com/taskboard/taskboard/internal/worker"
)

func main() {
	cfg, err := config.Load("task-service")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Name)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	var sink service.ActivitySink
	if cfg.Activity.WebhookURL != "" {
		sink = client.NewWebhookClient(cfg.Activity.WebhookURL, cfg.Services.CallTimeout(), logger)
	}
	worker.StartActivityWorker(service.NewActivityService(dispatcher, logger, sink))

	taskService := service.NewTaskService(service.TaskDependencies{
		TaskRepo:   repository.NewTaskRepository(redis.Client),
		Users:      client.NewUserClient(cfg.Services.UserBaseURL, cfg.Services.CallTimeout(), logger),
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	app := httptransport.NewServer(cfg.App.Name, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterTaskRoutes(app, httptransport.TaskRouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis, metrics),
		Tasks:  handlers.NewTasksHandler(taskService),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("user_service", cfg.Services.UserBaseURL))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
