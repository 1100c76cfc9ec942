package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"driveshare/api"
	"driveshare/config"
	"driveshare/pkg/logger"
	"driveshare/pkg/notifier"
	"driveshare/service"
	"driveshare/storage/postgres"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	pgStore, err := postgres.New(context.Background(), cfg, log)
	if err != nil {
		log.Error("failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pgStore.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		// Idempotency degrades gracefully without redis; the booking
		// guard itself lives in postgres.
		log.Warning("redis unreachable, idempotency middleware disabled", logger.Error(err))
		redisClient = nil
	}

	tgNotifier, err := notifier.New(cfg.TelegramBotToken, log)
	if err != nil {
		log.Error("failed to initialize telegram notifier", logger.Error(err))
		os.Exit(1)
	}

	svc := service.New(pgStore, tgNotifier, log)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go svc.Order().RunPendingExpiry(workerCtx, cfg.PendingHoldTTL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.AppPort),
		Handler:      api.NewServer(svc, log).Router(cfg, redisClient),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server starting", logger.Int("port", cfg.AppPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server startup failed", logger.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("shutting down server...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", logger.Error(err))
	}

	log.Info("server exiting")
}
