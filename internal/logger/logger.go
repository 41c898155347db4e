package logger

import (
	"context"
	"log"

	"github.com/catchdave/go-synologydsm/internal/configs"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *zap.Logger

type Options struct {
	configs *configs.LoggerConfigs
}

type Optioner func(o *Options)

func WithGlobalConfigs(configs *configs.LoggerConfigs) Optioner {
	return func(o *Options) {
		o.configs = configs
	}
}

func Init(ctx context.Context, options ...Optioner) {
	opts := Options{}
	for _, o := range options {
		o(&opts)
	}

	level := zapcore.InfoLevel
	encoding := ""
	if opts.configs != nil {
		if parsed, err := zapcore.ParseLevel(opts.configs.Level); err == nil {
			level = parsed
		}
		encoding = opts.configs.Encoding
	}

	zapConfigs := zap.NewProductionConfig()
	zapConfigs.Level = zap.NewAtomicLevelAt(level)
	if encoding != "" {
		zapConfigs.Encoding = encoding
	}
	zapConfigs.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := zapConfigs.Build()
	if err != nil {
		log.Fatalf("logger.Init: err = %s", err)
		return
	}

	globalLogger = l
	zap.ReplaceGlobals(l)
}

func Logger() *zap.Logger {
	if globalLogger == nil {
		return zap.L()
	}
	return globalLogger
}

func Close() {
	Logger().Sync()
}

func SDebug(msg string, fields ...zap.Field) {
	Logger().Debug(msg, fields...)
}

func SInfo(msg string, fields ...zap.Field) {
	Logger().Info(msg, fields...)
}

func SWarn(msg string, fields ...zap.Field) {
	Logger().Warn(msg, fields...)
}

func SError(msg string, fields ...zap.Field) {
	Logger().Error(msg, fields...)
}

func SFatal(msg string, fields ...zap.Field) {
	Logger().Fatal(msg, fields...)
}
