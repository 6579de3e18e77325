package logging

import (
	"go.uber.org/zap"
)

// InitializeLogger builds the named service logger. The returned cleanup
// flushes any buffered entries and is meant to be deferred in main.
func InitializeLogger(name string) (*zap.SugaredLogger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	logger = logger.Named(name)

	cleanup := func() {
		_ = logger.Sync()
	}
	return logger.Sugar(), cleanup
}
