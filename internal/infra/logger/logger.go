// internal/infra/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"homework_status_bot/internal/infra/config"
)

// New builds the application logger from configuration. It writes to stdout
// and, when cfg.LogFile is set, to a size-rotated file. The returned closer
// releases the file and must be called on shutdown.
func New(cfg *config.AppConfig) (*logrus.Logger, io.Closer) {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg *config.AppConfig, stdout io.Writer) (*logrus.Logger, io.Closer) {
	log := logrus.New()

	var closer io.Closer = nopCloser{}
	out := stdout
	if cfg.LogFile != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(stdout, file)
		closer = file
	}
	log.SetOutput(out)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.LogLevel, err)
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetLevel(level)
	}

	env := strings.ToLower(cfg.Environment)
	if env == "production" || env == "staging" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			DisableColors:   cfg.LogFile != "", // keep escape codes out of the file
		})
	}

	log.Debugf("Log level set to: %s", log.GetLevel().String())
	return log, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
