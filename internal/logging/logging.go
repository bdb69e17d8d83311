package logging

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// loggerPtr stores the active logger. Swapped atomically so SetLogger may
// race with the simulator goroutine logging.
var loggerPtr atomic.Pointer[zap.SugaredLogger]

func init() {
	loggerPtr.Store(zap.NewNop().Sugar())
}

// SetLogger installs the process-wide logger. Passing nil restores the
// default, which discards everything.
func SetLogger(l *zap.SugaredLogger) {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *zap.SugaredLogger {
	return loggerPtr.Load()
}

// Named returns a child of the current logger for one component.
func Named(name string) *zap.SugaredLogger {
	return Logger().Named(name)
}

// NewConsole builds a human readable logger writing to stderr.
func NewConsole(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// NewFile builds a JSON logger appending to path. The TUI uses it so log
// lines never land on the alt screen.
func NewFile(path string, verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
