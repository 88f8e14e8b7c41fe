// Package debug writes a category-tagged log file. The TUI owns the terminal,
// so nothing here prints to stdout.
package debug

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	file    *os.File
	logger  = log.New(io.Discard)
	mu      sync.Mutex
	enabled bool
)

// Path returns the debug log location (~/.config/kalimba-tab/debug.log)
func Path() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "kalimba-tab", "debug.log")
}

// Enable starts debug logging to Path()
func Enable() error {
	return EnableAt(Path())
}

// EnableAt starts debug logging to the given file, truncating it
func EnableAt(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	file = f
	enabled = true
	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Level:           log.DebugLevel,
	})
	logger.Debug("=== Debug logging started ===")

	return nil
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	enabled = false
	logger = log.New(io.Discard)
}

// Enabled reports whether a log file is open
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Logger returns the underlying logger for key-value logging. It discards
// everything until logging is enabled.
func Logger() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Log writes a message to the debug log
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	logger.WithPrefix(category).Debugf(format, args...)
	file.Sync() // flush immediately so we see logs even on crash
}

// LogEvery logs only every N calls (use for high-frequency events)
var counters = make(map[string]int)

func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}
