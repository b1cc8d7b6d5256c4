// Package logger builds the process-wide logrus logger from LogConfig.
package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"storefront/internal/config"
)

type ctxKey string

// RequestIDKey carries the request ID through context.Context.
const RequestIDKey ctxKey = "request_id"

// New returns a logger writing to stdout and, when cfg.File is set, to a
// size-rotated file. Format "json" emits JSON lines; anything else uses the
// text formatter with full timestamps.
func New(cfg config.LogConfig) *logrus.Logger {
	var w io.Writer = os.Stdout
	if cfg.File != "" {
		w = io.MultiWriter(os.Stdout, RotatingFile(cfg))
	}
	return NewWithWriter(cfg, w)
}

// RotatingFile returns the lumberjack writer for cfg.File. Old files are
// gzip-compressed.
func RotatingFile(cfg config.LogConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
}

// NewWithWriter is New with an explicit output.
func NewWithWriter(cfg config.LogConfig, w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)

	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(cfg.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	}
	return l
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// WithContext returns an entry tagged with the request ID found in ctx, if any.
func WithContext(ctx context.Context, l logrus.FieldLogger) *logrus.Entry {
	entry := l.WithFields(logrus.Fields{})
	if ctx == nil {
		return entry
	}
	if rid, ok := ctx.Value(RequestIDKey).(string); ok && rid != "" {
		entry = entry.WithField("request_id", rid)
	}
	return entry
}

// ContextWithRequestID stores id for WithContext.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
