// Package env loads engine defaults from the process
// environment and optional .env files, and redacts
// secret-looking values before they reach logs.
package env

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Environment variable names understood by Load.
const (
	VarDefaultTimeout = "CONDITIONS_DEFAULT_TIMEOUT"
	VarRetryDelay     = "CONDITIONS_RETRY_DELAY"
	VarMaxRetries     = "CONDITIONS_MAX_RETRIES"
	VarMonitorAddr    = "CONDITIONS_MONITOR_ADDR"
	VarHistoryPath    = "CONDITIONS_HISTORY_PATH"
)

// Options holds engine defaults sourced from the environment.
type Options struct {
	// DefaultTimeout bounds checks run through the timeout
	// operation when the caller passes none.
	DefaultTimeout time.Duration

	// RetryDelay is the default fixed delay between retry
	// attempts.
	RetryDelay time.Duration

	// MaxRetries is the default retry attempt count.
	MaxRetries int

	// MonitorAddr is the listen address for the live monitor,
	// empty when the monitor is disabled.
	MonitorAddr string

	// HistoryPath is the JSON-lines history file path, empty
	// when persistent history is disabled.
	HistoryPath string
}

// Defaults returns the built-in option values used when the
// environment sets nothing.
func Defaults() Options {
	return Options{
		DefaultTimeout: 30 * time.Second,
		RetryDelay:     time.Second,
		MaxRetries:     3,
	}
}

// Loader reads environment variables with optional .env file
// backing. OS environment takes precedence over file values.
type Loader struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewLoader creates an empty Loader.
func NewLoader() *Loader {
	return &Loader{vars: make(map[string]string)}
}

// Load reads KEY=VALUE pairs from a .env file. Blank lines and
// # comments are skipped; surrounding quotes are stripped.
func (l *Loader) Load(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open env file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		l.vars[key] = value
	}

	return scanner.Err()
}

// Get retrieves a variable, preferring the OS environment over
// loaded file values.
func (l *Loader) Get(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.vars[key]
}

// GetWithDefault retrieves a variable with a fallback.
func (l *Loader) GetWithDefault(key, fallback string) string {
	if v := l.Get(key); v != "" {
		return v
	}
	return fallback
}

// Options assembles engine defaults from the loader's values.
// Unset or malformed values fall back to Defaults.
func (l *Loader) Options() Options {
	opts := Defaults()

	if v := l.Get(VarDefaultTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			opts.DefaultTimeout = d
		}
	}
	if v := l.Get(VarRetryDelay); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			opts.RetryDelay = d
		}
	}
	if v := l.Get(VarMaxRetries); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.MaxRetries = n
		}
	}
	opts.MonitorAddr = l.Get(VarMonitorAddr)
	opts.HistoryPath = l.Get(VarHistoryPath)

	return opts
}
