package logging

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// GormLevel maps a config string to a gorm log level. Unknown values
// fall back to Warn.
func GormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// NewGormLogger returns a gorm logger that writes through zap's std-log bridge.
func NewGormLogger(logger *zap.Logger, level string) gormlogger.Interface {
	stdLog, err := zap.NewStdLogAt(logger.Named("gorm"), zapcore.InfoLevel)
	if err != nil {
		stdLog = zap.NewStdLog(logger.Named("gorm"))
	}
	return gormlogger.New(stdLog, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  GormLevel(level),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
