/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package logger provides a configurable logger that can be silenced for LSP integrations.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var (
	mu sync.RWMutex
	// Default logs to stderr. Set to io.Discard for silent mode (LSP).
	output io.Writer = os.Stderr
	level            = zerolog.InfoLevel
	logger           = newLogger(output, level)
)

func newLogger(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	if w == io.Discard {
		return zerolog.Nop()
	}
	console := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
	}
	return zerolog.New(console).Level(lvl)
}

// SetOutput configures the logger output destination.
// Use io.Discard to silence all logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	logger = newLogger(output, level)
}

// SetLevel sets the minimum level: "debug", "info", "warn" or "error".
func SetLevel(name string) error {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return errors.Errorf("invalid log level %q: %w", name, err)
	}
	mu.Lock()
	defer mu.Unlock()
	level = lvl
	logger = newLogger(output, level)
	return nil
}

// Get returns the underlying structured logger.
func Get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	Get().Warn().Msgf(format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	Get().Info().Msgf(format, args...)
}

// Debug logs a debug message.
func Debug(format string, args ...any) {
	Get().Debug().Msgf(format, args...)
}
