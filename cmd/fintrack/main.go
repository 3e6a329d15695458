package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/amqp"
	"fintrack/internal/cache"
	"fintrack/internal/config"
	"fintrack/internal/conversation"
	"fintrack/internal/log"
	"fintrack/internal/report"
	"fintrack/internal/services"
	"fintrack/internal/storage"
	"fintrack/internal/telegram"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.ComponentApp, log.ParseLevel(os.Getenv("LOG_LEVEL")))
	log.SetDefault(logger)

	logger.Info("Starting fintrack bot")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// The AMQP publisher is optional: without it transactions are still
	// recorded locally and the worker's periodic sweep picks them up.
	var publisher services.ExportPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - transactions will not be exported")
	}

	transactions := services.NewTransactionService(repo, publisher)
	stats := services.NewStatsService(repo)

	machine := conversation.NewMachine(transactions, cfg.ConversationTTL)

	// Sweep abandoned conversation state so it does not linger past its TTL.
	cacheManager := cache.NewManager()
	cacheManager.Register(machine.StateCache())
	cacheManager.StartCleanup(time.Minute)
	defer cacheManager.Stop()

	renderer := report.NewRenderer(cfg.Currency)

	bot, err := telegram.New(cfg.BotToken, machine, stats, repo, renderer, cfg.HistoryLimit, logger.WithComponent(log.ComponentBot))
	if err != nil {
		logger.Error("Failed to initialize Telegram bot", log.FieldError, err)
		os.Exit(1)
	}

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	if err := bot.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("Bot stopped with error", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Bot stopped")
}
