/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logger provides leveled logging for sqlast.
// The parser uses it for production tracing, the facade for diagnostics.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Level defines log levels
type Level int32

const (
	// DEBUG shows parser traces and other detailed information
	DEBUG Level = iota
	// INFO shows general information
	INFO
	// WARN shows warnings
	WARN
	// ERROR shows errors only
	ERROR
	// OFF disables logging
	OFF
)

// String returns string representation of log level
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case OFF:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name such as "debug" or "WARN" into a Level.
// "warning" and "none" are accepted as aliases of WARN and OFF.
func ParseLevel(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	case "OFF", "NONE":
		return OFF, nil
	default:
		return OFF, fmt.Errorf("unknown log level %q", name)
	}
}

// Logger interface defines basic methods for logging
type Logger interface {
	// Debug records debug level logs
	Debug(format string, args ...interface{})
	// Info records info level logs
	Info(format string, args ...interface{})
	// Warn records warning level logs
	Warn(format string, args ...interface{})
	// Error records error level logs
	Error(format string, args ...interface{})
	// SetLevel sets the log level
	SetLevel(level Level)
	// Enabled reports whether messages of the given level are written.
	// Callers use it to skip building expensive messages.
	Enabled(level Level) bool
}

// defaultLogger writes one line per message to an io.Writer.
// The level may be changed while other goroutines are logging.
type defaultLogger struct {
	level  atomic.Int32
	logger *log.Logger
}

// NewLogger creates a new logger
// Parameters:
//   - level: log level
//   - output: output destination, such as os.Stdout, os.Stderr, or file
//
// Example:
//
//	log := NewLogger(DEBUG, os.Stderr)
//	log.Debug("try %s at %d", "expression", 7)
func NewLogger(level Level, output io.Writer) Logger {
	l := &defaultLogger{logger: log.New(output, "", 0)}
	l.level.Store(int32(level))
	return l
}

func (l *defaultLogger) Debug(format string, args ...interface{}) {
	l.log(DEBUG, format, args...)
}

func (l *defaultLogger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

func (l *defaultLogger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

func (l *defaultLogger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

func (l *defaultLogger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

func (l *defaultLogger) Enabled(level Level) bool {
	current := Level(l.level.Load())
	return current != OFF && level >= current
}

func (l *defaultLogger) log(level Level, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	l.logger.Printf("[%s] [%s] %s", timestamp, level.String(), fmt.Sprintf(format, args...))
}

// discardLogger is a logger that discards all log output
type discardLogger struct{}

// NewDiscardLogger creates a logger that discards all logs
func NewDiscardLogger() Logger {
	return discardLogger{}
}

func (discardLogger) Debug(format string, args ...interface{}) {}
func (discardLogger) Info(format string, args ...interface{})  {}
func (discardLogger) Warn(format string, args ...interface{})  {}
func (discardLogger) Error(format string, args ...interface{}) {}
func (discardLogger) SetLevel(level Level)                     {}
func (discardLogger) Enabled(level Level) bool                 { return false }

var (
	mu              sync.RWMutex
	defaultInstance = NewLogger(WARN, os.Stderr)
)

// SetDefault sets the global default logger
func SetDefault(logger Logger) {
	if logger == nil {
		logger = NewDiscardLogger()
	}
	mu.Lock()
	defaultInstance = logger
	mu.Unlock()
}

// GetDefault gets the global default logger
func GetDefault() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultInstance
}

// Debug uses the default logger to record debug information
func Debug(format string, args ...interface{}) {
	GetDefault().Debug(format, args...)
}

// Info uses the default logger to record information
func Info(format string, args ...interface{}) {
	GetDefault().Info(format, args...)
}

// Warn uses the default logger to record warnings
func Warn(format string, args ...interface{}) {
	GetDefault().Warn(format, args...)
}

// Error uses the default logger to record errors
func Error(format string, args ...interface{}) {
	GetDefault().Error(format, args...)
}
