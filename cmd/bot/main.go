package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/infra/config"
	idb "homework_status_bot/internal/infra/database"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/memory"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup runs before exit.
func run() int {
	fmt.Println("Homework Status Bot starting...")

	// Nothing below talks to the network until the configuration is complete.
	cfg, err := config.Load()
	if err != nil {
		log.Printf("FATAL: Отсутствует обязательная переменная окружения: %v", err)
		return 1
	}

	baseLogger, logCloser := logger.New(cfg)
	defer logCloser.Close()
	mainLogger := baseLogger.WithField("component", "main")
	mainLogger.WithFields(logrus.Fields{
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
		"interval":    cfg.RetryInterval.String(),
	}).Info("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stateRepo, closeState, err := newStateRepository(ctx, cfg, mainLogger)
	if err != nil {
		mainLogger.WithError(err).Error("Could not initialize poll state storage")
		return 1
	}
	defer closeState()

	botLogger := baseLogger.WithField("component", "telebot")
	bot, err := telegram.NewBot(telegram.Settings{
		Token: cfg.BotToken,
		Poll:  cfg.BotCommandsEnabled,
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := botLogger.WithError(err)
			if c != nil && c.Chat() != nil {
				entry = entry.WithField("chat_id", c.Chat().ID)
			}
			entry.Error("Telegram bot error")
		},
	})
	if err != nil {
		mainLogger.WithError(err).Error("Could not create Telegram bot")
		return 1
	}

	notifier := app.NewTelegramNotifier(
		telegram.NewTelebotAdapter(bot),
		cfg.ChatID,
		baseLogger.WithField("component", "notifier"),
	)
	apiClient := practicum.NewClient(cfg.Endpoint, cfg.APIToken, cfg.HTTPTimeout, baseLogger.WithField("component", "practicum"))

	pollService := app.NewPollService(app.PollServiceConfig{
		Endpoint:            apiClient.Endpoint(),
		EmptyAdvancesCursor: cfg.EmptyAdvancesCursor,
	}, apiClient, notifier, stateRepo, baseLogger.WithField("component", "poll"))
	if err := pollService.Resume(ctx); err != nil {
		mainLogger.WithError(err).Warn("Could not resume poll state, starting from now")
	}

	if cfg.BotCommandsEnabled {
		telegram.RegisterBotCommands(ctx, bot, cfg.ChatID, stateRepo, botLogger)
		go bot.Start()
		mainLogger.Info("Bot command handlers registered, long polling started")
	}

	pollScheduler := scheduler.NewPollScheduler(pollService, cfg.RetryInterval, baseLogger.WithField("component", "scheduler"))
	pollScheduler.Run(ctx) // blocks until SIGINT/SIGTERM

	mainLogger.Info("Shutting down application...")
	if cfg.BotCommandsEnabled {
		bot.Stop()
	}
	mainLogger.Info("Application shut down gracefully.")
	return 0
}

// newStateRepository picks Postgres when DATABASE_URL is set, memory otherwise.
func newStateRepository(ctx context.Context, cfg *config.AppConfig, l *logrus.Entry) (homework.StateRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		l.Info("Using in-memory poll state")
		return memory.NewStateRepository(), func() {}, nil
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := idb.NewPostgresConnection(connCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	repo := idb.NewPostgresStateRepository(db)
	if err := repo.EnsureSchema(connCtx); err != nil {
		db.Close()
		return nil, nil, err
	}
	l.Info("Using PostgreSQL poll state")
	return repo, func() { db.Close() }, nil
}
