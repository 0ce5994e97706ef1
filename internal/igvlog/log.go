// Package igvlog is a thin printf-style facade over logrus so callers
// are not coupled to a particular logging backend.
package igvlog

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

// Setup configures the process-wide logger. level is one of debug,
// info, warn, error (case-insensitive); anything else keeps the
// default of info.
func Setup(level string) {
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	}
}

func Debug(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

func Info(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

func Warn(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

func Error(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}
