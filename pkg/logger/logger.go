package logger

import (
	"sync"

	"go.uber.org/zap"

	"buildsite-service/pkg/config"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// InitLogger builds the process-wide logger from configuration.
func InitLogger(conf *config.Config) {
	once.Do(func() {
		instance = build(conf)
	})
}

// GetLogger returns the process-wide logger. A default production logger is
// built if InitLogger has not run, so packages can log during tests.
func GetLogger() *zap.Logger {
	once.Do(func() {
		instance = build(nil)
	})
	return instance
}

func build(conf *config.Config) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	if conf != nil {
		if conf.Server.Env == "development" {
			cfg = zap.NewDevelopmentConfig()
		}
		if lvl, err := zap.ParseAtomicLevel(conf.Log.Level); err == nil {
			cfg.Level = lvl
		}
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
