// Package timeouts provides centralized timeout values for handler
// operations.
//
// These are used with context.WithTimeout around database work in HTTP
// handlers. Centralizing them keeps the values consistent and easy to
// adjust:
//   - Ping: health checks and connectivity verification
//   - Short: single-record reads and writes
//   - Batch: bulk role-list loads
package timeouts

import (
	"sync"
	"time"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing  = 2 * time.Second
	DefaultShort = 5 * time.Second
	DefaultBatch = 60 * time.Second
)

var (
	mu    sync.RWMutex
	ping  = DefaultPing
	short = DefaultShort
	batch = DefaultBatch
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-record operations.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Batch returns the timeout for bulk role-list loads.
func Batch() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return batch
}

// Config holds timeout overrides. Zero values are ignored.
type Config struct {
	Ping  time.Duration
	Short time.Duration
	Batch time.Duration
}

// Configure sets custom timeout values during startup, before handlers
// are registered. Zero values keep the current settings.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Batch > 0 {
		batch = cfg.Batch
	}
}

// Reset restores the defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	short = DefaultShort
	batch = DefaultBatch
}
