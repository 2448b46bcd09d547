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

/*
Package sqlast 将SQL SELECT语句解析为带标签的语法树。

解析器是无需独立词法分析阶段的递归下降解析器，使用优先级爬升处理二元运算符，
并通过packrat记忆化保证深层嵌套括号的解析时间为线性。核心实现位于rsql包，
本包提供带配置与日志的入口。

# 核心特性

• 完整的SELECT子句 - SELECT、FROM（含JOIN）、WHERE、GROUP BY、HAVING、ORDER BY
• 同一运算符的连续使用被展平为一个多元节点，例如 a + b + c => add(a, b, c)
• 语法树可以转换为map/slice组成的标签值，或直接序列化为JSON
• 详细的错误信息 - 行号、列号、期望的记号以及拼写建议
• 可配置的嵌套深度与解析步数限制

# 入门示例

	s := sqlast.New()
	stmt, err := s.Parse("SELECT a, count(*) AS n FROM t WHERE a > 1 GROUP BY a")
	if err != nil {
		panic(err)
	}
	fmt.Println(stmt)

	data, _ := s.ParseJSON("SELECT a + b + c FROM t")
	fmt.Println(string(data))
	// {"from":["t"],"select":[{"value":{"add":["a","b","c"]}}]}

# 错误处理

解析失败时返回的错误包装了*rsql.ParseError：

	_, err := s.Parse("SELECT a FORM t")
	var perr *rsql.ParseError
	if errors.As(err, &perr) {
		fmt.Println(perr.Line, perr.Column, perr.Expected, perr.Suggestions)
	}

# 配置

除函数式选项外，还可以从通用map加载配置：

	cfg, err := sqlast.ConfigFromMap(map[string]any{"maxDepth": "64", "trace": true})
	if err != nil {
		panic(err)
	}
	s := sqlast.New(sqlast.WithConfig(cfg), sqlast.WithLogOutput(os.Stderr, logger.DEBUG))
*/
package sqlast
