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

import (
	"strings"

	"github.com/rulego/sqlast/logger"
)

const (
	// DefaultMaxDepth bounds the nesting of expressions and statements.
	DefaultMaxDepth = 512
	// DefaultMaxSteps bounds the number of grammar productions evaluated per parse.
	DefaultMaxSteps = 1000000
)

// Options controls a Parser.
type Options struct {
	Reserved *Reserved
	MaxDepth int
	MaxSteps int
	// DisableMemo turns off packrat memoization
	DisableMemo bool
	// Trace logs every production attempt at DEBUG level
	Trace  bool
	Logger logger.Logger
}

// Option configures a Parser.
type Option func(*Options)

// WithReserved sets the reserved keyword/operator table.
func WithReserved(r *Reserved) Option {
	return func(o *Options) {
		if r != nil {
			o.Reserved = r
		}
	}
}

// WithMaxDepth sets the nesting budget. Non-positive values keep the default.
func WithMaxDepth(depth int) Option {
	return func(o *Options) {
		if depth > 0 {
			o.MaxDepth = depth
		}
	}
}

// WithMaxSteps sets the step budget. Non-positive values keep the default.
func WithMaxSteps(steps int) Option {
	return func(o *Options) {
		if steps > 0 {
			o.MaxSteps = steps
		}
	}
}

// WithoutMemo disables the packrat memo table.
func WithoutMemo() Option {
	return func(o *Options) {
		o.DisableMemo = true
	}
}

// WithTrace enables production tracing through the logger.
func WithTrace(enabled bool) Option {
	return func(o *Options) {
		o.Trace = enabled
	}
}

// WithLogger sets the logger used for tracing.
func WithLogger(l logger.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

func defaultOptions() Options {
	return Options{
		Reserved: defaultReserved,
		MaxDepth: DefaultMaxDepth,
		MaxSteps: DefaultMaxSteps,
	}
}

// production identifies a memoized grammar rule.
type production int

const (
	prodSelect production = iota
	prodPrimary
	// prodLevel+n is the infix production of precedence level n
	prodLevel
)

var productionNames = [...]string{
	prodSelect:  "select",
	prodPrimary: "primary",
}

func (p production) String() string {
	if p >= prodLevel {
		return "level" + string(rune('0'+int(p-prodLevel)))
	}
	return productionNames[p]
}

type memoKey struct {
	prod production
	pos  int
}

type memoEntry struct {
	node Node
	end  int
	ok   bool
}

// Parser parses one SELECT statement. A Parser is not safe for concurrent
// use; create one per input.
type Parser struct {
	input    string
	reserved *Reserved
	opts     Options
	log      logger.Logger

	memo map[memoKey]memoEntry

	// farthest failure and everything expected there
	farthest int
	expected []string
	seen     map[string]bool

	// err is a fatal lexical or budget error that aborts the parse
	err   *ParseError
	depth int
	steps int
}

// NewParser creates a parser for input.
func NewParser(input string, opts ...Option) *Parser {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.Logger
	if log == nil {
		log = logger.GetDefault()
	}
	return &Parser{
		input:    input,
		reserved: o.Reserved,
		opts:     o,
		log:      log,
	}
}

// ParseSelect parses input as a single SELECT statement.
func ParseSelect(input string, opts ...Option) (*Select, error) {
	return NewParser(input, opts...).Parse()
}

// Parse parses the whole input. The statement may be followed by whitespace,
// comments and at most one semicolon. On failure the error is a *ParseError.
func (p *Parser) Parse() (*Select, error) {
	p.reset()
	defer func() {
		// 解析结束后释放memo表
		p.memo = nil
	}()

	stmt, end, ok := p.parseSelect(0)
	if p.err != nil {
		return nil, p.err
	}
	if ok {
		end = skipSpace(p.input, end)
		if end < len(p.input) && p.input[end] == ';' {
			end = skipSpace(p.input, end+1)
		} else {
			p.expect(end, "';'")
		}
		if end == len(p.input) {
			p.trace("parsed %d bytes in %d steps", len(p.input), p.steps)
			return stmt, nil
		}
		p.expect(end, "end of input")
	}
	return nil, p.syntaxError()
}

func (p *Parser) reset() {
	p.memo = make(map[memoKey]memoEntry)
	p.farthest = 0
	p.expected = nil
	p.seen = make(map[string]bool)
	p.err = nil
	p.depth = 0
	p.steps = 0
}

// expect records that what was attempted, and not found, at pos.
func (p *Parser) expect(pos int, what ...string) {
	if pos < p.farthest {
		return
	}
	if pos > p.farthest {
		p.farthest = pos
		p.expected = p.expected[:0]
		clear(p.seen)
	}
	for _, w := range what {
		if !p.seen[w] {
			p.seen[w] = true
			p.expected = append(p.expected, w)
		}
	}
}

func (p *Parser) syntaxError() *ParseError {
	expected := append([]string(nil), p.expected...)
	if p.farthest >= len(p.input) {
		return CreateMissingTokenError(p.input, expected)
	}
	return CreateUnexpectedTokenError(p.input, tokenAt(p.input, p.farthest), expected, p.farthest)
}

// fatal aborts the parse with err unless an earlier fatal error exists.
func (p *Parser) fatal(err *ParseError) {
	if p.err == nil {
		p.err = err
		p.trace("abort: %s", err.Message)
	}
}

// enter accounts for one production invocation. Primaries and statements
// also count as one nesting level each.
func (p *Parser) enter(prod production, pos int) bool {
	if p.err != nil {
		return false
	}
	p.steps++
	if prod < prodLevel {
		p.depth++
	}
	if p.depth > p.opts.MaxDepth || p.steps > p.opts.MaxSteps {
		p.fatal(CreateMaxIterationsError(p.input, pos))
		return false
	}
	return true
}

func (p *Parser) exit(prod production) {
	if prod < prodLevel {
		p.depth--
	}
}

// memoized runs parse at pos through the packrat table.
func (p *Parser) memoized(prod production, pos int, parse func(int) (Node, int, bool)) (Node, int, bool) {
	key := memoKey{prod: prod, pos: pos}
	if !p.opts.DisableMemo {
		if e, ok := p.memo[key]; ok {
			return e.node, e.end, e.ok
		}
	}
	if !p.enter(prod, pos) {
		return nil, pos, false
	}
	p.trace("try %s at %d", prod, pos)
	node, end, ok := parse(pos)
	p.exit(prod)
	if p.err != nil {
		return nil, pos, false
	}
	if !p.opts.DisableMemo {
		p.memo[key] = memoEntry{node: node, end: end, ok: ok}
	}
	if ok {
		p.trace("matched %s at %d..%d", prod, pos, end)
	}
	return node, end, ok
}

func (p *Parser) trace(format string, args ...interface{}) {
	if p.opts.Trace && p.log.Enabled(logger.DEBUG) {
		p.log.Debug(format, args...)
	}
}

// keyword skips whitespace and matches kw, recording it as expected on failure.
func (p *Parser) keyword(pos int, kw string) (int, bool) {
	pos = skipSpace(p.input, pos)
	if end, ok := matchKeyword(p.input, pos, kw); ok {
		return end, true
	}
	p.expect(pos, strings.ToUpper(kw))
	return pos, false
}

// symbol skips whitespace and matches the punctuation s.
func (p *Parser) symbol(pos int, s string) (int, bool) {
	pos = skipSpace(p.input, pos)
	if strings.HasPrefix(p.input[pos:], s) {
		return pos + len(s), true
	}
	p.expect(pos, "'"+s+"'")
	return pos, false
}
