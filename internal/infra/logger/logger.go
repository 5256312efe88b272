// internal/infra/logger/logger.go
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance
var Log = logrus.New()

// Init configures the global logger from application configuration.
// Output goes to stdout and, when cfg.LogFile is set, to that file (truncated).
// The returned closer releases the log file.
func Init(cfg *config.AppConfig) (io.Closer, error) {
	var closer io.Closer = nopCloser{}
	out := io.Writer(os.Stdout)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", cfg.LogFile, err)
		}
		out = io.MultiWriter(os.Stdout, f)
		closer = f
	}
	Log.SetOutput(out)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		Log.Warnf("Invalid log level '%s', defaulting to 'debug'. Error: %v", cfg.LogLevel, err)
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(level)
	}

	if cfg.Environment == "production" || cfg.Environment == "staging" {
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			DisableColors:   true, // shared with the log file
		})
	}

	Log.Debugf("Log level set to: %s", Log.GetLevel().String())
	return closer, nil
}

// Named returns an entry tagged with the component name.
func Named(name string) *logrus.Entry {
	return Log.WithField("logger", name)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
