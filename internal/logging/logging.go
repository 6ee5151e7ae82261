// Package logging writes the diagnostic log file. Console output never goes
// through this package; it only records events and backend traffic.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.Mutex
	logger  = zap.NewNop()
	logFile *os.File
)

// Init opens logPath for appending and routes all log calls to it as JSON
// lines. An empty logPath discards everything.
func Init(logPath string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()

	if strings.TrimSpace(logPath) == "" {
		logger = zap.NewNop()
		return nil
	}

	if dir := filepath.Dir(logPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	logFile = file

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(file), level)
	logger = zap.New(core).With(zap.Int("pid", os.Getpid()))
	return nil
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	_ = logger.Sync()
	logger = zap.NewNop()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Logger returns the current process logger.
func Logger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// SetLogger replaces the process logger and returns a func restoring the
// previous one. Intended for tests.
func SetLogger(l *zap.Logger) func() {
	mu.Lock()
	defer mu.Unlock()
	prev := logger
	logger = l
	return func() {
		mu.Lock()
		defer mu.Unlock()
		logger = prev
	}
}

// LogEvent records a formatted informational event.
func LogEvent(format string, args ...any) {
	Logger().Info(fmt.Sprintf(format, args...))
}

// LogError records a formatted error event together with err.
func LogError(err error, format string, args ...any) {
	Logger().Error(fmt.Sprintf(format, args...), zap.Error(err))
}

// LogRequest records traffic to or from a generation backend.
func LogRequest(direction, host, model string, payload any) {
	msg, fields := requestEntry(direction, host, model, payload)
	Logger().Debug(msg, fields...)
}

func requestEntry(direction, host, model string, payload any) (string, []zap.Field) {
	dir := strings.ToUpper(strings.TrimSpace(direction))
	hostValue := strings.TrimSpace(host)
	if hostValue == "" {
		hostValue = "unknown"
	}
	modelValue := strings.TrimSpace(model)
	if modelValue == "" {
		modelValue = "unknown"
	}
	return fmt.Sprintf("[%s]", dir), []zap.Field{
		zap.String("host", hostValue),
		zap.String("model", modelValue),
		zap.String("payload", formatPayload(payload)),
	}
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
