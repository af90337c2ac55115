package util

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

// RequestIDKey is the gin context key holding the per-request id.
const RequestIDKey = "request_id"

// Log is the application logger.
var Log = newLogger("info")

func newLogger(level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// InitLogger resets the level of the application logger; unknown levels fall back to info.
func InitLogger(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.WithField("level", level).Warn("unknown log level, using info")
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}

// NewGormLogger routes gorm's query log through Log.
func NewGormLogger() logger.Interface {
	level := logger.Warn
	if Log.IsLevelEnabled(logrus.DebugLevel) {
		level = logger.Info
	}
	return logger.New(Log, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}
