// Package logger provides leveled logging for the pipeline. It wraps the
// standard log package with level filtering so the per-window fetch chatter
// can be silenced in scheduled runs and enabled when debugging locally.
package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// Level represents a logging level
type Level int

const (
	// DebugLevel logs per-window and per-page detail; disabled in scheduled runs.
	DebugLevel Level = iota
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs degraded-but-continuing conditions, like a disabled lens.
	WarnLevel
	// ErrorLevel logs failures that abort the run.
	ErrorLevel
)

var defaultLogger *Logger

// Logger provides leveled logging
type Logger struct {
	level  Level
	logger *log.Logger
}

// Init initializes the default logger with the specified level and format
func Init(level string, format string) {
	flags := log.LstdFlags | log.Lmicroseconds
	if strings.ToLower(format) == "text" {
		flags |= log.Lshortfile
	}

	defaultLogger = &Logger{
		level:  parseLevel(level),
		logger: log.New(os.Stderr, "", flags),
	}
}

func parseLevel(raw string) Level {
	switch strings.ToLower(raw) {
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Debug logs a message at DebugLevel
func Debug(format string, args ...interface{}) {
	output(DebugLevel, "[DEBUG] "+format, args...)
}

// Info logs a message at InfoLevel
func Info(format string, args ...interface{}) {
	output(InfoLevel, "[INFO] "+format, args...)
}

// Warn logs a message at WarnLevel
func Warn(format string, args ...interface{}) {
	output(WarnLevel, "[WARN] "+format, args...)
}

// Error logs a message at ErrorLevel
func Error(format string, args ...interface{}) {
	output(ErrorLevel, "[ERROR] "+format, args...)
}

// Fatal logs a message and exits with a nonzero status
func Fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf("[FATAL] "+format, args...)
	if defaultLogger != nil {
		_ = defaultLogger.logger.Output(2, msg)
	} else {
		log.Print(msg)
	}
	os.Exit(1)
}

func output(level Level, format string, args ...interface{}) {
	if defaultLogger == nil || defaultLogger.level > level {
		return
	}
	_ = defaultLogger.logger.Output(3, fmt.Sprintf(format, args...))
}
