package gorm

import (
	"strings"

	"gorm.io/gorm/logger"
)

// ParseLogLevel maps a configured level name to a GORM log level; unknown
// names mean warn.
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info", "debug":
		return logger.Info
	default:
		return logger.Warn
	}
}
