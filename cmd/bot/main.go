package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	domainTelegram "homework_status_bot/internal/domain/telegram"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
)

// telegramFactory builds the transport once credentials are known to be present.
type telegramFactory func(token string) (domainTelegram.Client, error)

func newTelegramClient(token string) (domainTelegram.Client, error) {
	bot, err := telegram.NewBot(token, "")
	if err != nil {
		return nil, err
	}
	return telegram.NewTelebotAdapter(bot), nil
}

func main() {
	fmt.Println("Homework Status Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		logger.Named("main").WithError(err).Fatal("Program stopped: could not load configuration")
	}

	logFile, err := logger.Init(cfg)
	if err != nil {
		logger.Named("main").WithError(err).Fatal("Program stopped: could not initialize logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, newTelegramClient)
	stop()
	if err != nil {
		// Fatal skips deferred calls, so the log file is closed by the process exit.
		logger.Named("main").WithError(err).WithField("severity", "critical").Fatal("Program stopped")
	}
	_ = logFile.Close()
}

// run checks credentials, greets the chat and polls until ctx is cancelled.
// Nothing is sent when a credential is missing.
func run(ctx context.Context, cfg *config.AppConfig, newClient telegramFactory) error {
	mainLogger := logger.Named("main")

	if err := cfg.CheckCredentials(); err != nil {
		return err
	}

	mainLogger.WithFields(logrus.Fields{
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
		"endpoint":    cfg.Endpoint,
		"schedule":    cfg.PollSchedule,
	}).Info("Configuration loaded")

	schedule, err := cfg.Schedule()
	if err != nil {
		return err
	}

	tc, err := newClient(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("create telegram client: %w", err)
	}

	notifier := app.NewNotifier(tc, cfg.TelegramChatID, logger.Named("notifier"))
	client := practicum.NewClient(&http.Client{}, cfg.Endpoint, cfg.PracticumToken, logger.Named("practicum"))
	poller := app.NewPoller(client, notifier, logger.Named("poller"), time.Now())

	poller.Greet()

	pollScheduler := scheduler.NewPollScheduler(schedule, poller.Poll, logger.Named("scheduler"))
	if err := pollScheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("poll scheduler: %w", err)
	}
	mainLogger.Info("Application shut down gracefully.")
	return nil
}
