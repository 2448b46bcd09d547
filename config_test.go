package sqlast

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rulego/sqlast/logger"
	"github.com/rulego/sqlast/rsql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, rsql.DefaultMaxDepth, cfg.MaxDepth)
	assert.Equal(t, rsql.DefaultMaxSteps, cfg.MaxSteps)
	assert.True(t, cfg.Memoize)
	assert.False(t, cfg.Trace)
	assert.Empty(t, cfg.LogLevel)
}

// TestConfigFromMap 测试从map加载配置
func TestConfigFromMap(t *testing.T) {
	tests := []struct {
		name     string
		input    map[string]any
		expected Config
		wantErr  bool
	}{
		{
			name:     "空配置",
			input:    map[string]any{},
			expected: DefaultConfig(),
		},
		{
			name: "字符串数值",
			input: map[string]any{
				"maxDepth": "64",
				"maxSteps": 5000.0,
				"memoize":  "false",
				"trace":    1,
				"logLevel": "debug",
				"keywords": []any{"limit", "offset"},
			},
			expected: Config{
				MaxDepth: 64,
				MaxSteps: 5000,
				Memoize:  false,
				Trace:    true,
				LogLevel: "debug",
				Keywords: []string{"limit", "offset"},
			},
		},
		{
			name:    "非法深度",
			input:   map[string]any{"maxDepth": "deep"},
			wantErr: true,
		},
		{
			name:    "非法开关",
			input:   map[string]any{"trace": "maybe"},
			wantErr: true,
		},
		{
			name:    "未知日志级别",
			input:   map[string]any{"logLevel": "verbose"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ConfigFromMap(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

func TestConfigJSON(t *testing.T) {
	var cfg Config
	err := json.Unmarshal([]byte(`{"maxDepth": 32, "memoize": true, "keywords": ["top"]}`), &cfg)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.MaxDepth)
	assert.True(t, cfg.Memoize)
	assert.Equal(t, []string{"top"}, cfg.Keywords)
}

// TestWithConfig 测试应用配置
func TestWithConfig(t *testing.T) {
	cfg, err := ConfigFromMap(map[string]any{"maxDepth": 5, "keywords": "top", "logLevel": "error"})
	require.NoError(t, err)

	log := logger.NewLogger(logger.DEBUG, &strings.Builder{})
	s := New(WithLogger(log), WithConfig(cfg))
	assert.False(t, log.Enabled(logger.WARN))
	assert.True(t, log.Enabled(logger.ERROR))
	assert.False(t, s.noMemo)

	_, err = s.Parse("SELECT top FROM t")
	assert.Error(t, err)
	_, err = s.Parse("SELECT " + strings.Repeat("(", 10) + "1" + strings.Repeat(")", 10))
	assert.Error(t, err)
	_, err = s.Parse("SELECT (1)")
	assert.NoError(t, err)

	s = New(WithDiscardLog(), WithConfig(Config{}))
	assert.True(t, s.noMemo)
	_, err = s.Parse("SELECT (1)")
	assert.NoError(t, err)
}
