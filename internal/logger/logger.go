package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"UCLA-Rocket-Project/turretctl/internal/config"
)

// NewLogger writes console-formatted logs to stdout and to a rotating file.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	logFile := &lumberjack.Logger{
		Filename:   cfg.File.Filename,
		MaxSize:    cfg.File.MaxSizeMB,
		MaxBackups: cfg.File.MaxBackups,
		MaxAge:     cfg.File.MaxAgeDays,
		Compress:   cfg.File.Compress,
	}

	return newTeeLogger(zapcore.AddSync(logFile), zapcore.AddSync(os.Stdout), level), nil
}

func newTeeLogger(file, stdout zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	encoderConfig := zap.NewDevelopmentConfig()

	encoder := zapcore.NewConsoleEncoder(encoderConfig.EncoderConfig)

	fileCore := zapcore.NewCore(
		encoder,
		file,
		level,
	)

	stdoutCore := zapcore.NewCore(
		encoder,
		stdout,
		level,
	)

	core := zapcore.NewTee(fileCore, stdoutCore)

	return zap.New(
		core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Development(),
	)
}
