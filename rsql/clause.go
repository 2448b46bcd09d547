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

// parseColumn parses "expr [[AS] alias]".
func (p *Parser) parseColumn(pos int) (*Column, int, bool) {
	value, end, ok := p.parseExpr(pos)
	if !ok {
		return nil, pos, false
	}
	col := &Column{Value: value}
	col.Name, end = p.parseAlias(end)
	return col, end, true
}

// parseAlias parses an optional "[AS] name". When no alias follows, the
// returned offset is pos and an AS keyword is left unconsumed.
func (p *Parser) parseAlias(pos int) (string, int) {
	start := pos
	if end, ok := p.keyword(pos, kwAs); ok {
		start = end
	}
	id, end, ok := p.identifier(start)
	if !ok || id.IsWildcard() {
		return "", pos
	}
	return id.String(), end
}

// parseTableRef parses "name [[AS] alias]".
func (p *Parser) parseTableRef(pos int) (*TableRef, int, bool) {
	id, end, ok := p.identifier(pos)
	if !ok {
		return nil, pos, false
	}
	if id.IsWildcard() {
		p.expect(skipSpace(p.input, pos), "table name")
		return nil, pos, false
	}
	ref := &TableRef{Value: id}
	ref.Name, end = p.parseAlias(end)
	return ref, end, true
}

var joinKeywords = [...]struct {
	kw string
	op JoinOp
}{
	{kwCrossJoin, JoinCross},
	{kwInnerJoin, JoinInner},
	{kwJoin, JoinPlain},
}

// parseJoin parses "{CROSS JOIN | INNER JOIN | JOIN} table [ON expr]".
func (p *Parser) parseJoin(pos int) (*Join, int, bool) {
	for _, j := range joinKeywords {
		end, ok := p.keyword(pos, j.kw)
		if !ok {
			continue
		}
		table, end, ok := p.parseTableRef(end)
		if !ok {
			return nil, pos, false
		}
		join := &Join{Op: j.op, Table: table}
		if onEnd, ok := p.keyword(end, kwOn); ok {
			if cond, condEnd, ok := p.parseExpr(onEnd); ok {
				join.On = cond
				end = condEnd
			}
		}
		return join, end, true
	}
	return nil, pos, false
}

// parseSortColumn parses "expr [DESC | ASC]".
func (p *Parser) parseSortColumn(pos int) (*SortColumn, int, bool) {
	value, end, ok := p.parseExpr(pos)
	if !ok {
		return nil, pos, false
	}
	sort := &SortColumn{Value: value}
	if descEnd, ok := p.keyword(end, kwDesc); ok {
		sort.Desc = true
		end = descEnd
	} else if ascEnd, ok := p.keyword(end, kwAsc); ok {
		end = ascEnd
	}
	return sort, end, true
}
