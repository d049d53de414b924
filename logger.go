package clawguard

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a zap logger from config
func NewLogger(config *LogConfig) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if config.Development {
		zapConfig = zap.NewDevelopmentConfig()
	}
	if config.Level != "" {
		level, err := zapcore.ParseLevel(config.Level)
		if err != nil {
			return nil, err
		}
		zapConfig.Level = zap.NewAtomicLevelAt(level)
	}
	return zapConfig.Build()
}
