// logger.go: package file logger and the gorm-to-slog bridge
package datastore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cvsuagritech/agrisight-go/internal/logging"
	gormlogger "gorm.io/gorm/logger"
)

var (
	logger         *slog.Logger
	loggerOnce     sync.Once
	closeLogger    func() error
	logFilePath    = "logs/datastore.log"
	serviceName    = "datastore"
	slowQueryMinMs = 200 * time.Millisecond
)

// getLogger returns the shared package logger, creating the file logger on
// first use. Falls back to the service logger when the log file cannot be
// opened (read-only filesystem, tests).
func getLogger() *slog.Logger {
	loggerOnce.Do(func() {
		var err error
		logger, closeLogger, err = logging.NewFileLogger(logFilePath, serviceName, slog.LevelInfo)
		if err != nil || logger == nil {
			logger = logging.ForService(serviceName)
			closeLogger = func() error { return nil }
			logger.Warn("failed to open datastore log file, using standard logging", "error", err)
		}
	})
	return logger
}

// SetLogger pins the package logger, bypassing file logger creation. Used by
// tests that must not touch the log directory or global configuration.
func SetLogger(l *slog.Logger) {
	loggerOnce.Do(func() {})
	logger = l
	closeLogger = func() error { return nil }
}

// CloseLogger releases the file logger. Called on shutdown.
func CloseLogger() error {
	if closeLogger != nil {
		return closeLogger()
	}
	return nil
}

// slogGormLogger adapts the package slog logger to gorm's logger interface.
type slogGormLogger struct {
	l     *slog.Logger
	level gormlogger.LogLevel
}

func newGormLogger(debug bool) gormlogger.Interface {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}
	return &slogGormLogger{l: getLogger(), level: level}
}

func (g *slogGormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *slogGormLogger) Info(_ context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Info {
		g.l.Info(fmt.Sprintf(msg, args...))
	}
}

func (g *slogGormLogger) Warn(_ context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Warn {
		g.l.Warn(fmt.Sprintf(msg, args...))
	}
}

func (g *slogGormLogger) Error(_ context.Context, msg string, args ...any) {
	if g.level >= gormlogger.Error {
		g.l.Error(fmt.Sprintf(msg, args...))
	}
}

func (g *slogGormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	switch {
	case err != nil && !isNotFound(err) && g.level >= gormlogger.Error:
		g.l.Error("query failed", "error", err, "sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	case elapsed > slowQueryMinMs && g.level >= gormlogger.Warn:
		g.l.Warn("slow query", "sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	case g.level >= gormlogger.Info:
		g.l.Debug("query", "sql", sql, "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	}
}
