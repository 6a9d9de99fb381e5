// Package logger builds the zap-backed logr.Logger used by the CLI.
package logger

import (
	"context"
	"errors"
	"io"
	"strings"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field names shared by every log line.
const (
	TimeStampKey  = "timestamp"
	MessageKey    = "message"
	CommandKey    = "command"
	SubCommandKey = "sub_command"
)

type contextKey struct{}

// New returns a JSON logger writing to w. Level follows zap: -1 is debug,
// 0 is info. logr V(1) maps to zap debug.
func New(w io.Writer, level int8) (logr.Logger, func()) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = TimeStampKey
	encoderCfg.MessageKey = MessageKey

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(zapcore.Level(level)),
	)
	zl := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	return zapr.NewLogger(zl), func() { sync(zl) }
}

// Level maps the --debug flag to a zap level.
func Level(debug bool) int8 {
	if debug {
		return int8(zapcore.DebugLevel)
	}
	return int8(zapcore.InfoLevel)
}

// WithLogger attaches l to ctx.
func WithLogger(ctx context.Context, l logr.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger attached to ctx, or a discard logger.
func FromContext(ctx context.Context) logr.Logger {
	if l, ok := ctx.Value(contextKey{}).(logr.Logger); ok {
		return l
	}
	return logr.Discard()
}

func sync(zl *zap.Logger) {
	if err := zl.Sync(); err != nil && !isIgnorableSyncError(err) {
		zl.Warn("failed to sync logger", zap.Error(err))
	}
}

// isIgnorableSyncError returns true for common Sync errors on pipes/TTYs.
func isIgnorableSyncError(err error) bool {
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EIO) || errors.Is(err, syscall.EBADF) {
		return true
	}
	return strings.Contains(err.Error(), "The handle is invalid")
}
