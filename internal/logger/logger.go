// Package logger holds the process-wide logrus logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// Init builds the global logger. An empty level falls back to LOG_LEVEL and
// then to "warn", so reports on stdout stay clean by default. LOG_FORMAT=json
// or format "json" selects the JSON formatter.
func Init(level, format string) *logrus.Logger {
	return InitTo(os.Stderr, level, format)
}

// InitTo is Init with an explicit output.
func InitTo(w io.Writer, level, format string) *logrus.Logger {
	log := logrus.New()

	if level == "" {
		level = os.Getenv("LOG_LEVEL")
		if level == "" {
			level = "warn"
		}
	}
	if lvl, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(logrus.WarnLevel)
		log.WithField("invalid_level", level).Warn("Invalid log level, using WARN")
	}

	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	if strings.ToLower(format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	log.SetOutput(w)
	Logger = log
	return log
}

// Get returns the global logger, creating a default one on first use.
func Get() *logrus.Logger {
	if Logger == nil {
		return Init("", "")
	}
	return Logger
}

// WithComponent tags log lines with the emitting package.
func WithComponent(name string) *logrus.Entry {
	return Get().WithField("component", name)
}
