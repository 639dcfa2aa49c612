package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls the zap-backed logger
type Config struct {
	Level      Level
	OutputPath string // optional log file; empty means stderr only
	MaxSizeMB  int    // rotation threshold for the log file
	MaxBackups int
	MaxAgeDays int
}

// zapLogger adapts a zap.Logger to the Logger interface
type zapLogger struct {
	l *zap.Logger
}

// NewLogger builds a console (and optionally rotating-file) logger
func NewLogger(cfg Config) (Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case DebugLevel:
		level = zapcore.DebugLevel
	case WarnLevel:
		level = zapcore.WarnLevel
	case ErrorLevel:
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stderr),
			level,
		),
	}

	if cfg.OutputPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputPath), 0755); err != nil {
			return nil, err
		}
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.OutputPath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		})
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			fileWriter,
			level,
		))
	}

	return &zapLogger{l: zap.New(zapcore.NewTee(cores...))}, nil
}

func (z *zapLogger) Debug(msg string, fields ...Fields) {
	z.l.Debug(msg, toZapFields(fields)...)
}

func (z *zapLogger) Info(msg string, fields ...Fields) {
	z.l.Info(msg, toZapFields(fields)...)
}

func (z *zapLogger) Warn(msg string, fields ...Fields) {
	z.l.Warn(msg, toZapFields(fields)...)
}

func (z *zapLogger) Error(err error, msg string, fields ...Fields) {
	zf := toZapFields(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	z.l.Error(msg, zf...)
}

func (z *zapLogger) WithFields(fields Fields) Logger {
	return &zapLogger{l: z.l.With(toZapFields([]Fields{fields})...)}
}

func toZapFields(fields []Fields) []zap.Field {
	var zf []zap.Field
	for _, fs := range fields {
		for k, v := range fs {
			zf = append(zf, zap.Any(k, v))
		}
	}
	return zf
}
