package logging

import "go.uber.org/zap"

// New creates the process logger and installs it as the zap global, so
// every package can log through zap.S()
func New() *zap.SugaredLogger {
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)
	return logger.Sugar()
}
