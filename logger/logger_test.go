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

package logger

import (
	"bytes"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{OFF, "OFF"},
		{Level(999), "UNKNOWN"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, test.level.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    Level
		wantErr bool
	}{
		{"debug", DEBUG, false},
		{" INFO ", INFO, false},
		{"Warn", WARN, false},
		{"warning", WARN, false},
		{"error", ERROR, false},
		{"off", OFF, false},
		{"none", OFF, false},
		{"verbose", OFF, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(INFO, &buf)
	require.NotNil(t, log)

	log.Info("parsed %d statements", 3)
	output := buf.String()
	assert.Contains(t, output, "parsed 3 statements")
	assert.Contains(t, output, "[INFO]")
}

func TestDefaultLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(WARN, &buf)

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestDefaultLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(ERROR, &buf)

	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.SetLevel(DEBUG)
	log.Debug("visible")
	assert.Contains(t, buf.String(), "[DEBUG] visible")
}

func TestDefaultLogger_Enabled(t *testing.T) {
	log := NewLogger(INFO, &bytes.Buffer{})
	assert.False(t, log.Enabled(DEBUG))
	assert.True(t, log.Enabled(INFO))
	assert.True(t, log.Enabled(ERROR))

	log.SetLevel(OFF)
	assert.False(t, log.Enabled(ERROR))
}

func TestDefaultLogger_OFFLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(OFF, &buf)

	log.Debug("debug")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")
	assert.Empty(t, buf.String())
}

func TestNewDiscardLogger(t *testing.T) {
	log := NewDiscardLogger()
	require.NotNil(t, log)

	log.Debug("debug %s", "x")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")
	log.SetLevel(DEBUG)
	assert.False(t, log.Enabled(DEBUG))
}

func TestGlobalLogger(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	var buf bytes.Buffer
	SetDefault(NewLogger(DEBUG, &buf))

	Debug("global debug")
	Info("global info")
	Warn("global warn")
	Error("global error")

	output := buf.String()
	for _, want := range []string{"global debug", "global info", "global warn", "global error"} {
		assert.Contains(t, output, want)
	}
}

func TestSetDefaultNil(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	SetDefault(nil)
	require.NotNil(t, GetDefault())
	assert.False(t, GetDefault().Enabled(ERROR))
}

func TestLogFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(INFO, &buf)
	log.Info("format check")

	line := strings.TrimSpace(buf.String())
	pattern := regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3}\] \[INFO\] format check$`)
	assert.Regexp(t, pattern, line)
}

func TestConcurrentLogging(t *testing.T) {
	var buf bytes.Buffer
	var mu sync.Mutex
	log := NewLogger(DEBUG, writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return buf.Write(p)
	}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				log.Debug("goroutine %d message %d", id, j)
				if j == 5 {
					log.SetLevel(DEBUG)
				}
			}
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 80, strings.Count(buf.String(), "\n"))
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
