package util

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide structured logger.
var Log = logrus.New()

// InitLogger configures Log with JSON output and the given level name.
func InitLogger(level string) {
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.JSONFormatter{})

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	Log.SetLevel(logLevel)
}

// LogError logs an error with context
func LogError(message string, err error) {
	if err != nil {
		Log.WithError(err).Error(message)
	}
}

// LogInfo logs an informational message
func LogInfo(message string) {
	Log.Info(message)
}
