package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"

	"homework_status_bot/internal/domain/failure"
)

const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken string `envconfig:"PRACTICUM_TOKEN"`
	TelegramToken  string `envconfig:"TELEGRAM_TOKEN"`
	TelegramChatID string `envconfig:"TELEGRAM_CHAT_ID"`

	Endpoint     string `envconfig:"PRACTICUM_ENDPOINT" default:"https://practicum.yandex.ru/api/user_api/homework_statuses/" validate:"required,url"`
	PollSchedule string `envconfig:"POLL_SCHEDULE" default:"@every 10m" validate:"required"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"debug" validate:"omitempty,oneof=trace debug info warn warning error"`
	LogFile      string `envconfig:"LOG_FILE" default:"program.log"`
	Environment  string `envconfig:"ENVIRONMENT" default:"development"`
}

// Load reads configuration from environment variables and .env file (if present).
// Credentials are not checked here so that the log file can be opened first;
// callers must run CheckCredentials before using them.
func Load() (*AppConfig, error) {
	// godotenv.Load does not override variables that are already set.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Environment = strings.ToLower(cfg.Environment)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := cfg.Schedule(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// CheckCredentials verifies the three secrets the bot cannot run without.
func (c *AppConfig) CheckCredentials() error {
	required := []struct {
		name  string
		value string
	}{
		{"PRACTICUM_TOKEN", c.PracticumToken},
		{"TELEGRAM_TOKEN", c.TelegramToken},
		{"TELEGRAM_CHAT_ID", c.TelegramChatID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &failure.Error{
				Kind:  failure.KindMissingCredential,
				Op:    "config.Load",
				Field: r.name,
				Msg:   r.name + " is not set",
			}
		}
	}
	return nil
}

// Schedule parses PollSchedule into a cron schedule.
func (c *AppConfig) Schedule() (cron.Schedule, error) {
	s, err := cron.ParseStandard(c.PollSchedule)
	if err != nil {
		return nil, fmt.Errorf("invalid POLL_SCHEDULE %q: %w", c.PollSchedule, err)
	}
	return s, nil
}
