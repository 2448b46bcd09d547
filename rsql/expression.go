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

import "strings"

// parseExpr parses a full expression starting at pos.
func (p *Parser) parseExpr(pos int) (Expr, int, bool) {
	return p.parseLevel(pos, levelCount-1)
}

// parseLevel parses a run of operators of the given precedence level.
// Level -1 is a primary.
func (p *Parser) parseLevel(pos, level int) (Expr, int, bool) {
	if level < 0 {
		return p.parsePrimary(pos)
	}
	n, end, ok := p.memoized(prodLevel+production(level), pos, func(pos int) (Node, int, bool) {
		return p.parseInfix(pos, level)
	})
	if !ok {
		return nil, pos, false
	}
	return n.(Expr), end, true
}

// parseInfix combines operands of level-1 with the operators of level.
// Consecutive uses of one operator extend a single NaryExpr; switching to
// another operator of the same level wraps what was built so far:
//
//	a + b + c      -> add(a, b, c)
//	a + b - c + d  -> add(sub(add(a, b), c), d)
func (p *Parser) parseInfix(pos, level int) (Node, int, bool) {
	left, end, ok := p.parseLevel(pos, level-1)
	if !ok {
		return nil, pos, false
	}
	var run *NaryExpr
	for {
		opPos := skipSpace(p.input, end)
		op, opEnd, found := p.reserved.operatorAt(p.input, opPos, level)
		if !found {
			p.expect(opPos, p.reserved.levelNames(level)...)
			break
		}
		right, rightEnd, ok := p.parseLevel(opEnd, level-1)
		if !ok {
			if p.err != nil {
				return nil, pos, false
			}
			break
		}
		if run != nil && run.Op == op {
			run.Operands = append(run.Operands, right)
		} else {
			run = &NaryExpr{Op: op, Operands: []Expr{left, right}}
			left = run
		}
		end = rightEnd
	}
	return left, end, true
}

func (p *Parser) parsePrimary(pos int) (Expr, int, bool) {
	n, end, ok := p.memoized(prodPrimary, pos, p.primary)
	if !ok {
		return nil, pos, false
	}
	return n.(Expr), end, true
}

// primary tries each alternative in order and returns the first match.
func (p *Parser) primary(pos int) (Node, int, bool) {
	pos = skipSpace(p.input, pos)

	if expr, end, ok := p.parseNegation(pos); ok || p.err != nil {
		return expr, end, ok
	}
	if expr, end, ok := p.parsePrefix(pos, kwNot, OpNot); ok || p.err != nil {
		return expr, end, ok
	}
	if expr, end, ok := p.parsePrefix(pos, kwDistinct, OpDistinct); ok || p.err != nil {
		return expr, end, ok
	}
	if expr, end, ok := p.parseCase(pos); ok || p.err != nil {
		return expr, end, ok
	}
	if expr, end, ok := p.parseSubquery(pos); ok || p.err != nil {
		return expr, end, ok
	}
	if expr, end, ok := p.parseGroup(pos); ok || p.err != nil {
		return expr, end, ok
	}
	if expr, end, ok := p.parseNumber(pos); ok || p.err != nil {
		return expr, end, ok
	}
	if expr, end, ok := p.parseString(pos); ok || p.err != nil {
		return expr, end, ok
	}
	if expr, end, ok := p.parseFunctionCall(pos); ok || p.err != nil {
		return expr, end, ok
	}
	if expr, end, ok := p.parseIdentifier(pos); ok || p.err != nil {
		return expr, end, ok
	}
	return nil, pos, false
}

// parseNegation parses "- expr". The operand is a full expression.
func (p *Parser) parseNegation(pos int) (Node, int, bool) {
	end, ok := p.symbol(pos, "-")
	if !ok {
		return nil, pos, false
	}
	operand, end, ok := p.parseExpr(end)
	if !ok {
		return nil, pos, false
	}
	return &UnaryExpr{Op: OpNeg, Operand: operand}, end, true
}

// parsePrefix parses "NOT expr" and "DISTINCT expr".
func (p *Parser) parsePrefix(pos int, kw string, op UnaryOp) (Node, int, bool) {
	end, ok := p.keyword(pos, kw)
	if !ok {
		return nil, pos, false
	}
	operand, end, ok := p.parseExpr(end)
	if !ok {
		return nil, pos, false
	}
	return &UnaryExpr{Op: op, Operand: operand}, end, true
}

// parseCase parses CASE {WHEN c THEN r} [ELSE e] END.
func (p *Parser) parseCase(pos int) (Node, int, bool) {
	end, ok := p.keyword(pos, kwCase)
	if !ok {
		return nil, pos, false
	}
	c := &CaseExpr{}
	for {
		whenEnd, ok := p.keyword(end, kwWhen)
		if !ok {
			break
		}
		cond, condEnd, ok := p.parseExpr(whenEnd)
		if !ok {
			return nil, pos, false
		}
		thenEnd, ok := p.keyword(condEnd, kwThen)
		if !ok {
			return nil, pos, false
		}
		result, resultEnd, ok := p.parseExpr(thenEnd)
		if !ok {
			return nil, pos, false
		}
		c.Whens = append(c.Whens, &When{Cond: cond, Result: result})
		end = resultEnd
	}
	if elseEnd, ok := p.keyword(end, kwElse); ok {
		elseExpr, exprEnd, ok := p.parseExpr(elseEnd)
		if !ok {
			return nil, pos, false
		}
		c.Else = elseExpr
		end = exprEnd
	}
	end, ok = p.keyword(end, kwEnd)
	if !ok {
		return nil, pos, false
	}
	return c, end, true
}

// parseSubquery parses a parenthesized SELECT statement.
func (p *Parser) parseSubquery(pos int) (Node, int, bool) {
	end, ok := p.symbol(pos, "(")
	if !ok {
		return nil, pos, false
	}
	stmt, end, ok := p.parseSelect(end)
	if !ok {
		return nil, pos, false
	}
	end, ok = p.symbol(end, ")")
	if !ok {
		return nil, pos, false
	}
	return stmt, end, true
}

// parseGroup parses "( expr {, expr} )". A single item is returned as is,
// several items become a ListExpr.
func (p *Parser) parseGroup(pos int) (Node, int, bool) {
	end, ok := p.symbol(pos, "(")
	if !ok {
		return nil, pos, false
	}
	items, end, ok := parseList(p, end, p.parseExpr)
	if !ok {
		return nil, pos, false
	}
	end, ok = p.symbol(end, ")")
	if !ok {
		return nil, pos, false
	}
	if len(items) == 1 {
		return items[0], end, true
	}
	return &ListExpr{Items: items}, end, true
}

func (p *Parser) parseNumber(pos int) (Node, int, bool) {
	pos = skipSpace(p.input, pos)
	tok, end, ok, malformed := scanNumber(p.input, pos)
	if !ok {
		p.expect(pos, "number")
		return nil, pos, false
	}
	if malformed {
		p.fatal(CreateLexicalError(p.input, ErrorTypeInvalidNumber,
			"malformed number '"+p.input[pos:end]+"'", pos))
		return nil, pos, false
	}
	lit, ok := tok.decode()
	if !ok {
		p.fatal(CreateLexicalError(p.input, ErrorTypeInvalidNumber,
			"number '"+tok.text+"' is out of range", pos))
		return nil, pos, false
	}
	return lit, end, true
}

func (p *Parser) parseString(pos int) (Node, int, bool) {
	pos = skipSpace(p.input, pos)
	if pos >= len(p.input) || p.input[pos] != '\'' {
		p.expect(pos, "string")
		return nil, pos, false
	}
	text, end, ok := scanQuoted(p.input, pos, '\'')
	if !ok {
		p.fatal(CreateLexicalError(p.input, ErrorTypeUnterminatedString, "unterminated string literal", pos))
		return nil, pos, false
	}
	return &StringLiteral{Value: text}, end, true
}

// parseFunctionCall parses name(args). The name is an unquoted, non-reserved
// word and is stored in lower case.
func (p *Parser) parseFunctionCall(pos int) (Node, int, bool) {
	pos = skipSpace(p.input, pos)
	nameEnd, ok := scanWord(p.input, pos)
	if !ok || p.reserved.ReservedAt(p.input, pos) {
		return nil, pos, false
	}
	end, ok := p.symbol(nameEnd, "(")
	if !ok {
		return nil, pos, false
	}
	call := &FunctionCall{Name: strings.ToLower(p.input[pos:nameEnd])}
	if args, argsEnd, ok := parseList(p, end, p.parseExpr); ok {
		call.Args = args
		end = argsEnd
	} else if p.err != nil {
		return nil, pos, false
	}
	end, ok = p.symbol(end, ")")
	if !ok {
		return nil, pos, false
	}
	return call, end, true
}

// parseIdentifier parses the wildcard or a dotted path of quoted and
// unquoted segments. A path may not start with a reserved word.
func (p *Parser) parseIdentifier(pos int) (Node, int, bool) {
	id, end, ok := p.identifier(pos)
	if !ok {
		return nil, pos, false
	}
	return id, end, true
}

func (p *Parser) identifier(pos int) (*Identifier, int, bool) {
	pos = skipSpace(p.input, pos)
	if strings.HasPrefix(p.input[pos:], "*") {
		return Wildcard(), pos + 1, true
	}
	if p.reserved.ReservedAt(p.input, pos) {
		p.expect(pos, "identifier")
		return nil, pos, false
	}
	var parts []string
	end := pos
	for {
		part, segEnd, ok := p.identSegment(end)
		if !ok {
			if p.err != nil {
				return nil, pos, false
			}
			if len(parts) == 0 {
				p.expect(pos, "identifier")
				return nil, pos, false
			}
			// the dot belongs to whatever follows
			end--
			break
		}
		parts = append(parts, part)
		end = segEnd
		if end >= len(p.input) || p.input[end] != '.' {
			break
		}
		end++
	}
	return &Identifier{Parts: parts}, end, true
}

// identSegment scans one unquoted or double-quoted segment at pos.
func (p *Parser) identSegment(pos int) (string, int, bool) {
	if pos < len(p.input) && p.input[pos] == '"' {
		text, end, ok := scanQuoted(p.input, pos, '"')
		if !ok {
			p.fatal(CreateLexicalError(p.input, ErrorTypeUnterminatedString, "unterminated quoted identifier", pos))
			return "", pos, false
		}
		return text, end, true
	}
	end, ok := scanWord(p.input, pos)
	if !ok {
		return "", pos, false
	}
	return p.input[pos:end], end, true
}

// parseList parses item {, item}. A comma not followed by an item is left
// unconsumed.
func parseList[T any](p *Parser, pos int, item func(int) (T, int, bool)) ([]T, int, bool) {
	first, end, ok := item(pos)
	if !ok {
		return nil, pos, false
	}
	items := []T{first}
	for {
		commaEnd, ok := p.symbol(end, ",")
		if !ok {
			break
		}
		next, nextEnd, ok := item(commaEnd)
		if !ok {
			if p.err != nil {
				return nil, pos, false
			}
			break
		}
		items = append(items, next)
		end = nextEnd
	}
	return items, end, true
}
