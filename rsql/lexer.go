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

// lexer.go holds the lexical rules. There is no token stream: the grammar
// calls these scanners directly at the offset it is trying to match.
package rsql

import (
	"strconv"
	"strings"
)

// skipSpace skips whitespace and line comments ("--" or "#" to end of line).
func skipSpace(input string, pos int) int {
	for pos < len(input) {
		ch := input[pos]
		switch {
		case isSpace(ch):
			pos++
		case ch == '#', ch == '-' && pos+1 < len(input) && input[pos+1] == '-':
			for pos < len(input) && input[pos] != '\n' {
				pos++
			}
		default:
			return pos
		}
	}
	return pos
}

// matchKeyword matches a lower-case keyword case-insensitively at pos.
// A space inside kw matches one or more whitespace characters, and the
// keyword must not be followed by an identifier character.
func matchKeyword(input string, pos int, kw string) (int, bool) {
	i := pos
	for k := 0; k < len(kw); k++ {
		if kw[k] == ' ' {
			if i >= len(input) || !isSpace(input[i]) {
				return pos, false
			}
			for i < len(input) && isSpace(input[i]) {
				i++
			}
			continue
		}
		if i >= len(input) || toLower(input[i]) != kw[k] {
			return pos, false
		}
		i++
	}
	if i < len(input) && isIdentChar(input[i]) {
		return pos, false
	}
	return i, true
}

// scanWord scans an unquoted identifier segment [A-Za-z][A-Za-z0-9_$]*.
func scanWord(input string, pos int) (int, bool) {
	if pos >= len(input) || !isLetter(input[pos]) {
		return pos, false
	}
	i := pos + 1
	for i < len(input) && isIdentChar(input[i]) {
		i++
	}
	return i, true
}

// scanQuoted scans a literal delimited by quote starting at pos. A doubled
// quote and a backslash escape never terminate it. It returns the decoded
// text and the offset after the closing quote; ok is false when the closing
// quote is missing.
func scanQuoted(input string, pos int, quote byte) (string, int, bool) {
	i := pos + 1
	for i < len(input) {
		switch input[i] {
		case '\\':
			i += 2
		case quote:
			if i+1 < len(input) && input[i+1] == quote {
				i += 2
				continue
			}
			return unquote(input[pos+1:i], quote), i + 1, true
		default:
			i++
		}
	}
	return "", len(input), false
}

// unquote resolves doubled quotes and backslash escapes in one pass.
// Unknown escapes keep their backslash.
func unquote(body string, quote byte) string {
	if strings.IndexByte(body, '\\') < 0 && strings.IndexByte(body, quote) < 0 {
		return body
	}
	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); {
		ch := body[i]
		switch {
		case ch == quote && i+1 < len(body) && body[i+1] == quote:
			sb.WriteByte(quote)
			i += 2
		case ch == '\\' && i+1 < len(body):
			next := body[i+1]
			if next == '\'' || next == '"' {
				sb.WriteByte(next)
				i += 2
				continue
			}
			value, _, tail, err := strconv.UnquoteChar(body[i:], quote)
			if err != nil {
				sb.WriteByte('\\')
				i++
				continue
			}
			sb.WriteRune(value)
			i = len(body) - len(tail)
		default:
			sb.WriteByte(ch)
			i++
		}
	}
	return sb.String()
}

// numberToken is the raw shape of a numeric literal found by scanNumber.
type numberToken struct {
	text     string
	real     bool
	exponent int // offset of the exponent marker inside text, -1 if none
	negExp   bool
}

// scanNumber scans [+-]?(digits(.digits?)?|.digits)([eE][+-]?digits)?.
// It returns ok=false when no number starts at pos, and malformed=true when
// a number is immediately followed by characters that cannot end it.
func scanNumber(input string, pos int) (tok numberToken, end int, ok bool, malformed bool) {
	i := pos
	if i < len(input) && (input[i] == '+' || input[i] == '-') {
		i++
	}
	start := i
	for i < len(input) && isDigit(input[i]) {
		i++
	}
	intDigits := i - start
	if i < len(input) && input[i] == '.' {
		j := i + 1
		for j < len(input) && isDigit(input[j]) {
			j++
		}
		if intDigits > 0 || j > i+1 {
			tok.real = true
			i = j
		}
	}
	if intDigits == 0 && !tok.real {
		return tok, pos, false, false
	}
	tok.exponent = -1
	if i < len(input) && (input[i] == 'e' || input[i] == 'E') {
		j := i + 1
		neg := false
		if j < len(input) && (input[j] == '+' || input[j] == '-') {
			neg = input[j] == '-'
			j++
		}
		k := j
		for k < len(input) && isDigit(input[k]) {
			k++
		}
		if k == j {
			return tok, k, true, true
		}
		tok.exponent = i - pos
		tok.negExp = neg
		i = k
	}
	if i < len(input) && (isIdentChar(input[i]) || input[i] == '.') {
		return tok, i + 1, true, true
	}
	tok.text = input[pos:i]
	return tok, i, true, false
}

// decode converts a scanned number into a literal node.
func (n numberToken) decode() (Expr, bool) {
	if n.real || n.negExp {
		f, err := strconv.ParseFloat(n.text, 64)
		if err != nil {
			return nil, false
		}
		return &RealLiteral{Value: f}, true
	}
	if n.exponent < 0 {
		v, err := strconv.ParseInt(n.text, 10, 64)
		if err != nil {
			return nil, false
		}
		return &IntegerLiteral{Value: v}, true
	}
	if v, ok := scaleInteger(n.text[:n.exponent], n.text[n.exponent+1:]); ok {
		return &IntegerLiteral{Value: v}, true
	}
	f, err := strconv.ParseFloat(n.text, 64)
	if err != nil {
		return nil, false
	}
	return &RealLiteral{Value: f}, true
}

// scaleInteger computes mantissa * 10^exp, reporting false on overflow.
func scaleInteger(mantissa, exp string) (int64, bool) {
	v, err := strconv.ParseInt(mantissa, 10, 64)
	if err != nil {
		return 0, false
	}
	e, err := strconv.Atoi(strings.TrimPrefix(exp, "+"))
	if err != nil {
		return 0, false
	}
	const limit = int64(^uint64(0)>>1) / 10
	for ; e > 0; e-- {
		if v == 0 {
			return 0, true
		}
		if v > limit || v < -limit {
			return 0, false
		}
		v *= 10
	}
	return v, true
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_' || ch == '$'
}

func toLower(ch byte) byte {
	if 'A' <= ch && ch <= 'Z' {
		return ch + 'a' - 'A'
	}
	return ch
}

// isSimpleWord reports whether s can be written as an unquoted identifier segment.
func isSimpleWord(s string) bool {
	end, ok := scanWord(s, 0)
	return ok && end == len(s)
}
