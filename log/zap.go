package log

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"moul.io/zapfilter"
)

type (
	Field  = zap.Field
	Level  = zapcore.Level
	Option = zap.Option
)

const (
	DebugLevel  Level = zap.DebugLevel
	InfoLevel   Level = zap.InfoLevel
	WarnLevel   Level = zap.WarnLevel
	ErrorLevel  Level = zap.ErrorLevel
	DPanicLevel Level = zap.DPanicLevel
	PanicLevel  Level = zap.PanicLevel
	FatalLevel  Level = zap.FatalLevel
)

// function aliases for zap field constructors
var (
	Skip       = zap.Skip
	Binary     = zap.Binary
	Bool       = zap.Bool
	Duration   = zap.Duration
	Float64    = zap.Float64
	Float32    = zap.Float32
	Int        = zap.Int
	Int32      = zap.Int32
	Int64      = zap.Int64
	Uint       = zap.Uint
	Uint32     = zap.Uint32
	Uint64     = zap.Uint64
	String     = zap.String
	Stringer   = zap.Stringer
	Time       = zap.Time
	Any        = zap.Any
	ErrorField = zap.Error

	WithCaller    = zap.WithCaller
	AddStacktrace = zap.AddStacktrace
	AddCallerSkip = zap.AddCallerSkip
)

func ParseLevel(text string) (Level, error) {
	return zapcore.ParseLevel(text)
}

// Logger is a thin wrapper around zap.Logger.
// Loggers are cheap to copy via Named/WithOptions.
type Logger struct {
	l     *zap.Logger
	s     *zap.SugaredLogger
	level Level
}

func (l *Logger) Debug(msg string, fields ...Field) { l.l.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.l.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.l.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.l.Error(msg, fields...) }
func (l *Logger) Panic(msg string, fields ...Field) { l.l.Panic(msg, fields...) }
func (l *Logger) Fatal(msg string, fields ...Field) { l.l.Fatal(msg, fields...) }

func (l *Logger) Debugf(template string, args ...any) { l.s.Debugf(template, args...) }
func (l *Logger) Infof(template string, args ...any)  { l.s.Infof(template, args...) }
func (l *Logger) Warnf(template string, args ...any)  { l.s.Warnf(template, args...) }
func (l *Logger) Errorf(template string, args ...any) { l.s.Errorf(template, args...) }
func (l *Logger) Fatalf(template string, args ...any) { l.s.Fatalf(template, args...) }

func (l *Logger) Debugw(msg string, keysAndValues ...any) { l.s.Debugw(msg, keysAndValues...) }
func (l *Logger) Infow(msg string, keysAndValues ...any)  { l.s.Infow(msg, keysAndValues...) }
func (l *Logger) Warnw(msg string, keysAndValues ...any)  { l.s.Warnw(msg, keysAndValues...) }
func (l *Logger) Errorw(msg string, keysAndValues ...any) { l.s.Errorw(msg, keysAndValues...) }

func (l *Logger) Level() Level { return l.level }

func (l *Logger) Sync() error { return l.l.Sync() }

// Named adds a new path segment to the logger's name. Filter rules
// from the log config match against this name.
func (l *Logger) Named(name string) *Logger {
	ret := &Logger{l: l.l.Named(name), level: l.level}
	ret.s = ret.l.Sugar()
	return ret
}

func (l *Logger) WithOptions(opts ...Option) *Logger {
	ret := &Logger{l: l.l.WithOptions(opts...), level: l.level}
	ret.s = ret.l.Sugar()
	return ret
}

// New creates a Logger writing JSON output to writer.
// Messages below level are dropped unless filter rules say otherwise.
func New(writer io.Writer, level Level, opts ...Option) *Logger {
	if writer == nil {
		panic("the writer is nil")
	}
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(cfg.EncoderConfig),
		zapcore.AddSync(writer),
		level,
	)
	ret := &Logger{l: zap.New(core, opts...), level: level}
	ret.s = ret.l.Sugar()
	return ret
}

// DevLogger creates a Logger with console output for development use.
func DevLogger(writer io.Writer, level Level, opts ...Option) *Logger {
	if writer == nil {
		panic("the writer is nil")
	}
	cfg := zap.NewDevelopmentConfig()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg.EncoderConfig),
		zapcore.AddSync(writer),
		level,
	)
	ret := &Logger{l: zap.New(core, opts...), level: level}
	ret.s = ret.l.Sugar()
	return ret
}

// WithFilters wraps the logger core with zapfilter rules,
// for example "debug:pipeline.* info:*".
func WithFilters(rules string) Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapfilter.NewFilteringCore(core, zapfilter.MustParseRules(rules))
	})
}

type ctxKey struct{}

// AddToContext stores the logger in the context.
func AddToContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// GetFromContext returns the logger stored in the context or the
// default logger if none is present.
func GetFromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return Default()
}

var std = New(os.Stderr, InfoLevel)

func Default() *Logger { return std }

// ResetDefault replaces the default logger. The package level log
// functions are bound to the new logger.
func ResetDefault(l *Logger) {
	std = l
	Debug = std.Debug
	Info = std.Info
	Warn = std.Warn
	Error = std.Error
	Panic = std.Panic
	Fatal = std.Fatal
	Debugf = std.Debugf
	Infof = std.Infof
	Warnf = std.Warnf
	Errorf = std.Errorf
	Fatalf = std.Fatalf
	Debugw = std.Debugw
	Infow = std.Infow
	Warnw = std.Warnw
	Errorw = std.Errorw
}

var (
	Debug  = std.Debug
	Info   = std.Info
	Warn   = std.Warn
	Error  = std.Error
	Panic  = std.Panic
	Fatal  = std.Fatal
	Debugf = std.Debugf
	Infof  = std.Infof
	Warnf  = std.Warnf
	Errorf = std.Errorf
	Fatalf = std.Fatalf
	Debugw = std.Debugw
	Infow  = std.Infow
	Warnw  = std.Warnw
	Errorw = std.Errorw
)

func Sync() error {
	if std != nil {
		return std.Sync()
	}
	return nil
}
