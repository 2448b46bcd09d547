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

package rsql

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrorType classifies a ParseError.
type ErrorType int

const (
	ErrorTypeSyntax ErrorType = iota
	ErrorTypeLexical
	ErrorTypeUnexpectedToken
	ErrorTypeMissingToken
	ErrorTypeInvalidNumber
	ErrorTypeUnterminatedString
	// ErrorTypeMaxIterations reports an exhausted depth or step budget.
	ErrorTypeMaxIterations
)

// ParseError describes why an input could not be parsed.
type ParseError struct {
	Type    ErrorType
	Message string
	// Position is the byte offset where parsing could make no further progress
	Position int
	// Line and Column are 1-based; Column counts runes
	Line   int
	Column int
	// Token is the input text found at Position
	Token string
	// Expected lists every alternative attempted at Position
	Expected    []string
	Suggestions []string
	// Context is the offending source line with a caret under Position
	Context string
}

// Error 实现 error 接口
func (e *ParseError) Error() string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("[%s] %s", e.getErrorTypeName(), e.Message))

	if e.Line > 0 && e.Column > 0 {
		builder.WriteString(fmt.Sprintf(" at line %d, column %d", e.Line, e.Column))
	} else if e.Position >= 0 {
		builder.WriteString(fmt.Sprintf(" at position %d", e.Position))
	}

	if e.Token != "" {
		builder.WriteString(fmt.Sprintf(" (found '%s')", e.Token))
	}

	if len(e.Expected) > 0 {
		builder.WriteString(fmt.Sprintf(", expected: %s", strings.Join(e.Expected, ", ")))
	}

	if e.Context != "" {
		builder.WriteString(fmt.Sprintf("\nContext: %s", e.Context))
	}

	if len(e.Suggestions) > 0 {
		builder.WriteString(fmt.Sprintf("\nSuggestions: %s", strings.Join(e.Suggestions, "; ")))
	}

	return builder.String()
}

func (e *ParseError) getErrorTypeName() string {
	switch e.Type {
	case ErrorTypeSyntax:
		return "SYNTAX_ERROR"
	case ErrorTypeLexical:
		return "LEXICAL_ERROR"
	case ErrorTypeUnexpectedToken:
		return "UNEXPECTED_TOKEN"
	case ErrorTypeMissingToken:
		return "MISSING_TOKEN"
	case ErrorTypeInvalidNumber:
		return "INVALID_NUMBER"
	case ErrorTypeUnterminatedString:
		return "UNTERMINATED_STRING"
	case ErrorTypeMaxIterations:
		return "MAX_ITERATIONS"
	default:
		return "UNKNOWN_ERROR"
	}
}

// IsLexical reports whether the error comes from the lexical rules:
// an unterminated quote or a malformed number.
func (e *ParseError) IsLexical() bool {
	switch e.Type {
	case ErrorTypeLexical, ErrorTypeInvalidNumber, ErrorTypeUnterminatedString:
		return true
	}
	return false
}

// IsSyntax reports whether the error is a syntax error, including an
// exhausted complexity budget.
func (e *ParseError) IsSyntax() bool {
	return !e.IsLexical()
}

// newParseError fills in line, column, context and suggestions from the input.
func newParseError(input string, errorType ErrorType, message string, position int, token string, expected []string) *ParseError {
	line, column := lineColumn(input, position)
	return &ParseError{
		Type:        errorType,
		Message:     message,
		Position:    position,
		Line:        line,
		Column:      column,
		Token:       token,
		Expected:    expected,
		Suggestions: generateSuggestions(token, expected),
		Context:     FormatErrorContext(input, position),
	}
}

// CreateUnexpectedTokenError reports a syntax failure at a token that no
// alternative could consume.
func CreateUnexpectedTokenError(input string, found string, expected []string, position int) *ParseError {
	return newParseError(input, ErrorTypeUnexpectedToken, fmt.Sprintf("Unexpected token '%s'", found), position, found, expected)
}

// CreateMissingTokenError reports input that ended while more was expected.
func CreateMissingTokenError(input string, expected []string) *ParseError {
	return newParseError(input, ErrorTypeMissingToken, "Unexpected end of input", len(input), "EOF", expected)
}

// CreateLexicalError reports a malformed literal starting at position.
func CreateLexicalError(input string, errorType ErrorType, message string, position int) *ParseError {
	err := newParseError(input, errorType, message, position, tokenAt(input, position), nil)
	switch errorType {
	case ErrorTypeUnterminatedString:
		err.Suggestions = []string{"Ensure strings and quoted identifiers are properly closed"}
	case ErrorTypeInvalidNumber:
		err.Suggestions = []string{"Separate numbers from following names with whitespace"}
	}
	return err
}

// CreateMaxIterationsError reports an exhausted depth or step budget.
func CreateMaxIterationsError(input string, position int) *ParseError {
	err := newParseError(input, ErrorTypeMaxIterations, "query too complex to parse", position, "", nil)
	err.Suggestions = []string{"Simplify the query or raise the parser limits"}
	return err
}

func lineColumn(input string, position int) (int, int) {
	if position > len(input) {
		position = len(input)
	}
	prefix := input[:position]
	line := strings.Count(prefix, "\n") + 1
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	return line, utf8.RuneCountInString(prefix[lineStart:]) + 1
}

// FormatErrorContext returns the source line holding position with a caret
// under the offending character.
func FormatErrorContext(input string, position int) string {
	if position < 0 || position > len(input) || input == "" {
		return ""
	}
	start := strings.LastIndexByte(input[:position], '\n') + 1
	end := strings.IndexByte(input[position:], '\n')
	if end < 0 {
		end = len(input)
	} else {
		end += position
	}
	line := strings.TrimRight(input[start:end], "\r")
	pointer := strings.Repeat(" ", utf8.RuneCountInString(input[start:position])) + "^"
	return fmt.Sprintf("%s\n%s", line, pointer)
}

// tokenAt returns a short description of the input at pos for error messages.
func tokenAt(input string, pos int) string {
	if pos >= len(input) {
		return "EOF"
	}
	if end, ok := scanWord(input, pos); ok {
		return input[pos:end]
	}
	if tok, end, ok, _ := scanNumber(input, pos); ok && tok.text != "" {
		return input[pos:end]
	}
	r, size := utf8.DecodeRuneInString(input[pos:])
	if r == utf8.RuneError && size <= 1 {
		return input[pos : pos+1]
	}
	return string(r)
}

// generateSuggestions proposes a keyword when the found word looks like a misspelling of one.
func generateSuggestions(found string, expected []string) []string {
	if found == "" || found == "EOF" || !isLetter(found[0]) {
		return nil
	}
	var suggestions []string
	upper := strings.ToUpper(found)
	for _, exp := range expected {
		if exp == "" || !isLetter(exp[0]) || exp != strings.ToUpper(exp) {
			continue
		}
		if exp == upper {
			continue
		}
		if d := editDistance(upper, exp); d > 0 && d <= 2 && len(upper) > 2 {
			suggestions = append(suggestions, fmt.Sprintf("Did you mean '%s'?", exp))
		}
	}
	return suggestions
}

// editDistance is the Levenshtein distance between two ASCII strings.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
