package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging surface passed to components. It also satisfies
// resty.Logger so the HTTP session reports through the same sink.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})

	Debugf(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

// ZapLogger adapts a zap SugaredLogger to Logger. A zero or nil ZapLogger
// discards entries.
type ZapLogger struct {
	s *zap.SugaredLogger
}

// New builds a JSON zap logger writing to stdout at the given level.
func New(level string) *ZapLogger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter is New with an explicit sink.
func NewWithWriter(level string, w io.Writer) *ZapLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(zapcore.Lock(zapcore.AddSync(w))),
		ParseLevel(level),
	)

	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
	return &ZapLogger{s: l.Sugar()}
}

// ParseLevel maps config strings to zap levels, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Sync flushes any buffered entries.
func (z *ZapLogger) Sync() error {
	if !z.ok() {
		return nil
	}
	return z.s.Sync()
}

func (z *ZapLogger) ok() bool { return z != nil && z.s != nil }

func (z *ZapLogger) InfoObj(msg, key string, obj interface{}) {
	if !z.ok() {
		return
	}
	z.s.Desugar().Info(msg, zap.Any(key, obj))
}

func (z *ZapLogger) DebugObj(msg, key string, obj interface{}) {
	if !z.ok() {
		return
	}
	z.s.Desugar().Debug(msg, zap.Any(key, obj))
}

func (z *ZapLogger) WarnObj(msg, key string, obj interface{}) {
	if !z.ok() {
		return
	}
	z.s.Desugar().Warn(msg, zap.Any(key, obj))
}

func (z *ZapLogger) ErrorObj(msg, key string, obj interface{}) {
	if !z.ok() {
		return
	}
	z.s.Desugar().Error(msg, zap.Any(key, obj))
}

func (z *ZapLogger) Debugf(format string, v ...interface{}) {
	if z.ok() {
		z.s.Debugf(format, v...)
	}
}

func (z *ZapLogger) Warnf(format string, v ...interface{}) {
	if z.ok() {
		z.s.Warnf(format, v...)
	}
}

func (z *ZapLogger) Errorf(format string, v ...interface{}) {
	if z.ok() {
		z.s.Errorf(format, v...)
	}
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) InfoObj(string, string, interface{})  {}
func (NopLogger) DebugObj(string, string, interface{}) {}
func (NopLogger) WarnObj(string, string, interface{})  {}
func (NopLogger) ErrorObj(string, string, interface{}) {}
func (NopLogger) Debugf(string, ...interface{})        {}
func (NopLogger) Warnf(string, ...interface{})         {}
func (NopLogger) Errorf(string, ...interface{})        {}

// Ensure returns log, or a NopLogger when log is nil.
func Ensure(log Logger) Logger {
	if log == nil {
		return NopLogger{}
	}
	return log
}
