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
	"encoding/json"
	"fmt"

	"github.com/rulego/sqlast/logger"
	"github.com/rulego/sqlast/rsql"
)

// Sqlast 是SQL解析器的入口。
// 一个实例保存解析选项，可以被多个goroutine并发使用，
// 每次调用都会创建独立的解析器。
type Sqlast struct {
	log      logger.Logger
	reserved *rsql.Reserved
	maxDepth int
	maxSteps int
	noMemo   bool
	trace    bool
}

// New 创建一个新的Sqlast实例。
// 支持通过可选参数自定义解析限制、日志与保留字。
//
// 参数:
//   - options: 可变长度的配置选项
//
// 示例:
//
//	// 创建默认实例
//	s := sqlast.New()
//
//	// 限制嵌套深度并开启解析追踪
//	s := sqlast.New(sqlast.WithMaxDepth(64), sqlast.WithTrace(true))
func New(options ...Option) *Sqlast {
	s := &Sqlast{
		log:      logger.GetDefault(),
		reserved: rsql.DefaultReserved(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Sqlast) parserOptions() []rsql.Option {
	opts := []rsql.Option{
		rsql.WithReserved(s.reserved),
		rsql.WithLogger(s.log),
		rsql.WithTrace(s.trace),
	}
	if s.maxDepth > 0 {
		opts = append(opts, rsql.WithMaxDepth(s.maxDepth))
	}
	if s.maxSteps > 0 {
		opts = append(opts, rsql.WithMaxSteps(s.maxSteps))
	}
	if s.noMemo {
		opts = append(opts, rsql.WithoutMemo())
	}
	return opts
}

// Parse 解析一条SELECT语句并返回语法树。
// 失败时返回的错误包装了*rsql.ParseError，可以通过errors.As取出位置与期望信息。
//
// 示例:
//
//	stmt, err := s.Parse("SELECT a, b FROM t WHERE a > 1")
//	var perr *rsql.ParseError
//	if errors.As(err, &perr) {
//	    fmt.Println(perr.Line, perr.Column, perr.Expected)
//	}
func (s *Sqlast) Parse(sql string) (*rsql.Select, error) {
	stmt, err := rsql.ParseSelect(sql, s.parserOptions()...)
	if err != nil {
		s.log.Debug("parse failed: %v", err)
		return nil, fmt.Errorf("SQL解析失败: %w", err)
	}
	return stmt, nil
}

// ParseValue 解析SQL并返回标签值形式的语法树，
// 即由map[string]any、[]any与标量组成的通用结构。
func (s *Sqlast) ParseValue(sql string) (map[string]any, error) {
	stmt, err := s.Parse(sql)
	if err != nil {
		return nil, err
	}
	return stmt.ToValue().(map[string]any), nil
}

// ParseJSON 解析SQL并返回标签值形式的JSON编码。
func (s *Sqlast) ParseJSON(sql string) ([]byte, error) {
	stmt, err := s.Parse(sql)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(stmt)
	if err != nil {
		return nil, fmt.Errorf("序列化语法树失败: %w", err)
	}
	return data, nil
}

// Parse 使用默认配置解析一条SELECT语句。
func Parse(sql string) (*rsql.Select, error) {
	return New().Parse(sql)
}
