package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewDevLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableCaller = true

	return cfg.Build()
}

func NewProdLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true

	return cfg.Build()
}

// New picks the development or production logger and tags it with the
// component name.
func New(development bool, component string) (*zap.Logger, error) {
	build := NewProdLogger
	if development {
		build = NewDevLogger
	}
	logger, err := build()
	if err != nil {
		return nil, err
	}
	return logger.Named(component), nil
}
