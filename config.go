/*
 * Copyright 2024 The RuleGo Authors.
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

package sqlast

import (
	"fmt"

	"github.com/rulego/sqlast/logger"
	"github.com/rulego/sqlast/rsql"
	"github.com/spf13/cast"
)

// Config 解析器配置，可从JSON或通用map加载
type Config struct {
	// 解析限制
	MaxDepth int `json:"maxDepth"`
	MaxSteps int `json:"maxSteps"`

	// 功能开关
	Memoize bool `json:"memoize"`
	Trace   bool `json:"trace"`

	// 日志级别，如"debug"、"warn"，为空时不修改
	LogLevel string `json:"logLevel"`

	// 额外保留字
	Keywords []string `json:"keywords"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		MaxDepth: rsql.DefaultMaxDepth,
		MaxSteps: rsql.DefaultMaxSteps,
		Memoize:  true,
	}
}

// ConfigFromMap 从通用map加载配置，缺失的键保留默认值。
// 数值与布尔值接受字符串形式，例如"128"、"true"。
func ConfigFromMap(m map[string]any) (Config, error) {
	cfg := DefaultConfig()
	var err error
	if v, ok := m["maxDepth"]; ok {
		if cfg.MaxDepth, err = cast.ToIntE(v); err != nil {
			return cfg, fmt.Errorf("invalid maxDepth: %w", err)
		}
	}
	if v, ok := m["maxSteps"]; ok {
		if cfg.MaxSteps, err = cast.ToIntE(v); err != nil {
			return cfg, fmt.Errorf("invalid maxSteps: %w", err)
		}
	}
	if v, ok := m["memoize"]; ok {
		if cfg.Memoize, err = cast.ToBoolE(v); err != nil {
			return cfg, fmt.Errorf("invalid memoize: %w", err)
		}
	}
	if v, ok := m["trace"]; ok {
		if cfg.Trace, err = cast.ToBoolE(v); err != nil {
			return cfg, fmt.Errorf("invalid trace: %w", err)
		}
	}
	if v, ok := m["logLevel"]; ok {
		if cfg.LogLevel, err = cast.ToStringE(v); err != nil {
			return cfg, fmt.Errorf("invalid logLevel: %w", err)
		}
		if cfg.LogLevel != "" {
			if _, err = logger.ParseLevel(cfg.LogLevel); err != nil {
				return cfg, err
			}
		}
	}
	if v, ok := m["keywords"]; ok {
		if cfg.Keywords, err = cast.ToStringSliceE(v); err != nil {
			return cfg, fmt.Errorf("invalid keywords: %w", err)
		}
	}
	return cfg, nil
}
