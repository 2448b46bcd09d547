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
	"io"

	"github.com/rulego/sqlast/logger"
	"github.com/rulego/sqlast/rsql"
)

// Option 表示对Sqlast默认行为的修改配置。
type Option func(*Sqlast)

// WithLogger 设置自定义日志记录器。
// 解析失败与解析追踪信息都会写入该记录器。传入nil时使用丢弃型记录器。
//
// 参数:
//   - log: 实现了logger.Logger接口的日志记录器
//
// 示例:
//
//	customLogger := logger.NewLogger(logger.DEBUG, os.Stderr)
//	s := sqlast.New(WithLogger(customLogger))
func WithLogger(log logger.Logger) Option {
	return func(s *Sqlast) {
		if log == nil {
			log = logger.NewDiscardLogger()
		}
		s.log = log
	}
}

// WithLogLevel 设置当前日志记录器的级别。
// 未设置WithLogger时修改的是全局默认记录器。
//
// 参数:
//   - level: 日志级别，可选值：DEBUG, INFO, WARN, ERROR, OFF
//
// 示例:
//
//	// 关闭日志
//	s := sqlast.New(WithLogLevel(logger.OFF))
func WithLogLevel(level logger.Level) Option {
	return func(s *Sqlast) {
		s.log.SetLevel(level)
	}
}

// WithLogOutput 设置日志输出目标。
//
// 参数:
//   - output: 日志输出目标，如os.Stdout、os.Stderr或文件
//   - level: 日志级别
//
// 示例:
//
//	s := sqlast.New(WithLogOutput(os.Stderr, logger.DEBUG))
func WithLogOutput(output io.Writer, level logger.Level) Option {
	return func(s *Sqlast) {
		s.log = logger.NewLogger(level, output)
	}
}

// WithDiscardLog 禁用所有日志输出。
func WithDiscardLog() Option {
	return func(s *Sqlast) {
		s.log = logger.NewDiscardLogger()
	}
}

// WithMaxDepth 设置最大嵌套深度，非正数表示使用默认值。
//
// 示例:
//
//	s := sqlast.New(WithMaxDepth(64))
func WithMaxDepth(depth int) Option {
	return func(s *Sqlast) {
		s.maxDepth = depth
	}
}

// WithMaxSteps 设置单次解析允许的最大产生式调用次数，非正数表示使用默认值。
func WithMaxSteps(steps int) Option {
	return func(s *Sqlast) {
		s.maxSteps = steps
	}
}

// WithoutMemo 关闭packrat记忆化。
// 结果不变，但深层嵌套的括号表达式解析会变慢。
func WithoutMemo() Option {
	return func(s *Sqlast) {
		s.noMemo = true
	}
}

// WithTrace 开启解析追踪，在DEBUG级别记录每个产生式的尝试与匹配。
func WithTrace(enabled bool) Option {
	return func(s *Sqlast) {
		s.trace = enabled
	}
}

// WithKeywords 追加保留字。
// 追加的单词不能再作为未加引号的标识符或函数名使用。
//
// 示例:
//
//	// "limit"将被视为保留字
//	s := sqlast.New(WithKeywords("limit", "offset"))
func WithKeywords(keywords ...string) Option {
	return func(s *Sqlast) {
		s.reserved = s.reserved.WithKeywords(keywords...)
	}
}

// WithConfig 应用一份Config配置。
// 应以DefaultConfig()为基础修改，零值Config会关闭记忆化。
// 无法识别的日志级别会被忽略，使用ConfigFromMap可以提前校验。
func WithConfig(cfg Config) Option {
	return func(s *Sqlast) {
		s.maxDepth = cfg.MaxDepth
		s.maxSteps = cfg.MaxSteps
		s.noMemo = !cfg.Memoize
		s.trace = cfg.Trace
		if cfg.LogLevel != "" {
			if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
				s.log.SetLevel(level)
			}
		}
		if len(cfg.Keywords) > 0 {
			s.reserved = s.reserved.WithKeywords(cfg.Keywords...)
		}
	}
}

// WithReserved 替换整张保留字表。
func WithReserved(reserved *rsql.Reserved) Option {
	return func(s *Sqlast) {
		if reserved != nil {
			s.reserved = reserved
		}
	}
}
