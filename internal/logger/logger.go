package logger

import (
	"go.uber.org/zap"
)

// Log is the structured logger, SLog its sugared twin. Both are initialized
// once from main before anything else runs.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// Init builds the global loggers for the given environment.
func Init(environment string) error {
	var (
		l   *zap.Logger
		err error
	)
	if environment == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}

	Log = l
	SLog = l.Sugar()
	return nil
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
