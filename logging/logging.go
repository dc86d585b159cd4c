package logging

import (
	"io"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
)

var (
	globalMu     sync.RWMutex
	globalLogger = log.NewNopLogger()
)

// New returns a logfmt logger writing to w that drops entries below levelName
// (debug, info, warn, error).
func New(w io.Writer, levelName string) (log.Logger, error) {
	opt, err := levelOption(levelName)
	if err != nil {
		return nil, err
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, opt)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return logger, nil
}

func levelOption(name string) (level.Option, error) {
	switch strings.ToLower(name) {
	case "debug":
		return level.AllowDebug(), nil
	case "info", "":
		return level.AllowInfo(), nil
	case "warn", "warning":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	case "none", "off":
		return level.AllowNone(), nil
	}
	return nil, errors.Errorf("unknown log level %q", name)
}

// GlobalLogger is the process logger. It discards everything until SetGlobalLogger.
func GlobalLogger() log.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

func SetGlobalLogger(logger log.Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}
