// ABOUTME: Debug logger for the dashboard that writes to a rotated log file
// ABOUTME: Keeps log output away from the terminal while the TUI owns the screen

package debuglog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu     sync.Mutex
	logger = zap.NewNop()
	sink   *lumberjack.Logger
)

// Init initializes the debug logger with the config directory.
// If configDir is empty, logging is disabled.
func Init(configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if configDir == "" {
		logger = zap.NewNop()
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		logger = zap.NewNop()
		return err
	}

	sink = &lumberjack.Logger{
		Filename:   filepath.Join(configDir, "debug.log"),
		MaxSize:    5,
		MaxBackups: 2,
		MaxAge:     14,
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(sink), zapcore.DebugLevel)
	logger = zap.New(core)
	return nil
}

// Close flushes and closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	_ = logger.Sync()
	if sink != nil {
		sink.Close()
		sink = nil
	}
	logger = zap.NewNop()
}

func current() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Log writes a debug message
func Log(format string, args ...any) {
	current().Debug(fmt.Sprintf(format, args...))
}

// Error logs an error with context
func Error(context string, err error) {
	if err == nil {
		return
	}
	current().Error(context, zap.Error(err))
}

// Warn logs a warning message
func Warn(format string, args ...any) {
	current().Warn(fmt.Sprintf(format, args...))
}
