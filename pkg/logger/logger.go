// Package logger provides the structured logger used across the
// spark-vector assignment engine and its CLI.
package logger

import (
	"os"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured sink the core and CLI log through. The core
// never constructs one itself; callers inject an implementation (or
// NewNop for silence) via assign.WithLogger.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
	Fatal(msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

type zapLogger struct {
	logger *zap.SugaredLogger
}

// Config controls the on-disk/zap shape of a Logger built with New.
type Config struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	Output    string `mapstructure:"output"`
	AddCaller bool   `mapstructure:"add_caller"`
}

// New builds a zap-backed Logger from cfg. Invalid levels fall back to
// info; a broken zap config falls back to zap.NewExample so callers
// never get a nil Logger.
func New(cfg Config) Logger {
	zc := zap.NewProductionConfig()

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if cfg.Format == "console" {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc.Encoding = "json"
	}

	if cfg.Output == "" || cfg.Output == "stdout" {
		zc.OutputPaths = []string{"stdout"}
		zc.ErrorOutputPaths = []string{"stderr"}
	} else {
		zc.OutputPaths = []string{cfg.Output}
		zc.ErrorOutputPaths = []string{cfg.Output}
	}

	if cfg.AddCaller {
		zc.EncoderConfig.CallerKey = "caller"
		zc.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	}

	built, err := zc.Build()
	if err != nil {
		built = zap.NewExample()
	}

	return &zapLogger{logger: built.Sugar()}
}

// NewDefault returns an info-level JSON logger writing to stdout. It is
// not what assign.Assign uses without a WithLogger option; that default
// discards all output.
func NewDefault() Logger {
	return New(Config{Level: "info", Format: "json", Output: "stdout", AddCaller: true})
}

// NewNop discards everything. Tests and library embedders that don't
// care about logs should use this instead of passing nil.
func NewNop() Logger {
	return &zapLogger{logger: zap.NewNop().Sugar()}
}

func (l *zapLogger) Debug(msg string, fields ...interface{}) { l.logger.Debugw(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...interface{})  { l.logger.Infow(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...interface{})  { l.logger.Warnw(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...interface{}) { l.logger.Errorw(msg, fields...) }

func (l *zapLogger) Fatal(msg string, fields ...interface{}) {
	l.logger.Fatalw(msg, fields...)
	os.Exit(1)
}

func (l *zapLogger) With(fields ...interface{}) Logger {
	return &zapLogger{logger: l.logger.With(fields...)}
}

// Dump renders v with go-spew for a Debug field value (assign.Assign uses
// it for its final Result). The output is spew's multi-line, type-annotated
// dump, returned as a string callers can drop into a Debug field without
// reaching for reflection themselves.
func Dump(v interface{}) string {
	return spew.Sdump(v)
}
