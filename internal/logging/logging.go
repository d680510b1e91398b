// Package logging holds the process-wide logrus logger and the adapters that
// route gin and gorm output through it.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/bookjournal/internal/config"
)

// Log is the shared application logger. Setup reconfigures it in place.
var Log = newLogger()

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)
	return logger
}

// Setup applies level and format from configuration to Log.
// Unknown levels fall back to info.
func Setup(cfg config.Log) *logrus.Logger {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		Log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return Log
}
