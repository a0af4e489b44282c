// Package zaplogger implements ports.Logger on top of zap for JSON log output.
package zaplogger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/user/framesampler/pkg/ports"
)

// Logger adapts a zap.SugaredLogger to ports.Logger.
// Messages are formatted with fmt; the untranslated key is kept in the "msg_key" field.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New builds a JSON logger writing to stderr at the given level.
// LevelQuiet yields a logger that drops everything.
func New(level ports.LogLevel) (*Logger, error) {
	if level == ports.LevelQuiet {
		return Wrap(zap.NewNop()), nil
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(toZapLevel(level))
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	z, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return Wrap(z), nil
}

// Wrap adapts an existing zap logger.
func Wrap(z *zap.Logger) *Logger {
	return &Logger{sugar: z.Sugar()}
}

func toZapLevel(level ports.LogLevel) zapcore.Level {
	switch level {
	case ports.LevelDebug:
		return zapcore.DebugLevel
	case ports.LevelWarn:
		return zapcore.WarnLevel
	case ports.LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.sugar.Debugw(fmt.Sprintf(msg, args...), "msg_key", msg)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.sugar.Infow(fmt.Sprintf(msg, args...), "msg_key", msg)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.sugar.Warnw(fmt.Sprintf(msg, args...), "msg_key", msg)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.sugar.Errorw(fmt.Sprintf(msg, args...), "msg_key", msg)
}

// WithComponent returns a logger carrying a "component" field.
func (l *Logger) WithComponent(component string) ports.Logger {
	return &Logger{sugar: l.sugar.With("component", component)}
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

var _ ports.Logger = (*Logger)(nil)
