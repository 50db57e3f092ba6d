package util

import (
	"io"
	"sync"
)

var (
	globalLogger LoggerInterface
	loggerOnce   sync.Once
)

// InitLogger initializes the global logger instance. Only the first call has any effect.
func InitLogger(logLevel, logFile string, console io.Writer, format LogFormat) error {
	var err error
	loggerOnce.Do(func() {
		var l *Logger
		l, err = NewLogger(logLevel, logFile, console, format)
		if err == nil {
			globalLogger = l
		}
	})
	return err
}

// CloseLogger flushes and closes the global logger outputs.
func CloseLogger() {
	if globalLogger != nil {
		_ = globalLogger.Close()
	}
}

// LogInfo convenience functions for logging
func LogInfo(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.Info(msg, fields...)
	}
}

func LogInfof(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Infof(format, args...)
	}
}

func LogDebug(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.Debug(msg, fields...)
	}
}

func LogDebugf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Debugf(format, args...)
	}
}

func LogWarn(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.Warn(msg, fields...)
	}
}

func LogWarnf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Warnf(format, args...)
	}
}

func LogError(msg string, fields ...Field) {
	if globalLogger != nil {
		globalLogger.Error(msg, fields...)
	}
}

func LogErrorf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Errorf(format, args...)
	}
}
