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

package rsql

// parseSelect parses
//
//	SELECT cols [FROM refs joins] [WHERE e] [GROUP BY cols] [HAVING e] [ORDER BY sorts]
//
// Every clause after the select list is optional but must appear in this
// order. Once a clause keyword is matched its body is required.
func (p *Parser) parseSelect(pos int) (*Select, int, bool) {
	n, end, ok := p.memoized(prodSelect, pos, p.selectStatement)
	if !ok {
		return nil, pos, false
	}
	return n.(*Select), end, true
}

func (p *Parser) selectStatement(pos int) (Node, int, bool) {
	end, ok := p.keyword(pos, kwSelect)
	if !ok {
		return nil, pos, false
	}
	stmt := &Select{}

	// 解析SELECT子句
	if stmt.Columns, end, ok = parseList(p, end, p.parseColumn); !ok {
		return nil, pos, false
	}

	// 解析FROM子句
	if fromEnd, ok := p.keyword(end, kwFrom); ok {
		if end, ok = p.parseFrom(stmt, fromEnd); !ok {
			return nil, pos, false
		}
	}

	// 解析WHERE子句
	if whereEnd, ok := p.keyword(end, kwWhere); ok {
		if stmt.Where, end, ok = p.parseExpr(whereEnd); !ok {
			return nil, pos, false
		}
	}

	// 解析GROUP BY子句
	if groupEnd, ok := p.keyword(end, kwGroupBy); ok {
		if stmt.GroupBy, end, ok = parseList(p, groupEnd, p.parseColumn); !ok {
			return nil, pos, false
		}
	}

	// 解析HAVING子句
	if havingEnd, ok := p.keyword(end, kwHaving); ok {
		if stmt.Having, end, ok = p.parseExpr(havingEnd); !ok {
			return nil, pos, false
		}
	}

	// 解析ORDER BY子句
	if orderEnd, ok := p.keyword(end, kwOrderBy); ok {
		if stmt.OrderBy, end, ok = parseList(p, orderEnd, p.parseSortColumn); !ok {
			return nil, pos, false
		}
	}

	return stmt, end, true
}

// parseFrom parses the table references and the joins that follow them.
func (p *Parser) parseFrom(stmt *Select, pos int) (int, bool) {
	refs, end, ok := parseList(p, pos, p.parseTableRef)
	if !ok {
		return pos, false
	}
	for _, ref := range refs {
		stmt.From = append(stmt.From, ref)
	}
	for {
		join, joinEnd, ok := p.parseJoin(end)
		if !ok {
			break
		}
		stmt.From = append(stmt.From, join)
		end = joinEnd
	}
	return end, true
}
