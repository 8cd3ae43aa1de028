package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

const (
	serviceName = "nexa-api"
	prodEnv     = "production"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// Tests and tools that never reach main still get a usable logger.
func init() {
	InitLogger()
}

// InitLogger rebuilds the global logger from NEXA_ENV and LOG_LEVEL. It is
// called again from main after the .env files are loaded.
func InitLogger() {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)

	env := os.Getenv("NEXA_ENV")
	if env == prodEnv {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	Log = logger.WithFields(
		logrus.Fields{"service": serviceName, "is_development": env != prodEnv},
	)
}
