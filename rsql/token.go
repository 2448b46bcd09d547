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

// token.go defines the reserved keyword/operator table and the operator kinds.
package rsql

import (
	"sort"
	"strings"
)

// BinaryOp identifies an infix operator by its canonical name.
// Different spellings of one operator ("=" and "==") share a BinaryOp.
type BinaryOp int

const (
	OpMult BinaryOp = iota
	OpDiv
	OpAdd
	OpSub
	OpEq
	OpNeq
	OpGt
	OpLt
	OpGte
	OpLte
	OpIn
	OpAnd
	OpOr
)

var binaryOpNames = [...]string{
	OpMult: "mult",
	OpDiv:  "div",
	OpAdd:  "add",
	OpSub:  "sub",
	OpEq:   "eq",
	OpNeq:  "neq",
	OpGt:   "gt",
	OpLt:   "lt",
	OpGte:  "gte",
	OpLte:  "lte",
	OpIn:   "in",
	OpAnd:  "and",
	OpOr:   "or",
}

// String returns the canonical operator name used in the tagged value, e.g. "add".
func (o BinaryOp) String() string {
	if o < 0 || int(o) >= len(binaryOpNames) {
		return "unknown"
	}
	return binaryOpNames[o]
}

// levelCount is the number of infix precedence levels.
const levelCount = 6

// Level returns the precedence level of the operator; 0 binds tightest.
func (o BinaryOp) Level() int {
	switch o {
	case OpMult, OpDiv:
		return 0
	case OpAdd, OpSub:
		return 1
	case OpEq, OpNeq, OpGt, OpLt, OpGte, OpLte:
		return 2
	case OpIn:
		return 3
	case OpAnd:
		return 4
	default:
		return 5
	}
}

// UnaryOp identifies a prefix operator.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
	OpDistinct
)

// String returns the canonical operator name: "neg", "not" or "distinct".
func (o UnaryOp) String() string {
	switch o {
	case OpNeg:
		return "neg"
	case OpNot:
		return "not"
	case OpDistinct:
		return "distinct"
	default:
		return "unknown"
	}
}

// JoinOp is the join keyword that introduced a Join.
type JoinOp string

const (
	JoinPlain JoinOp = "join"
	JoinInner JoinOp = "inner join"
	JoinCross JoinOp = "cross join"
)

// Keywords used by the grammar. Two-word keywords keep a single space.
const (
	kwSelect    = "select"
	kwFrom      = "from"
	kwWhere     = "where"
	kwGroupBy   = "group by"
	kwOrderBy   = "order by"
	kwHaving    = "having"
	kwWith      = "with"
	kwAs        = "as"
	kwDesc      = "desc"
	kwCase      = "case"
	kwWhen      = "when"
	kwThen      = "then"
	kwElse      = "else"
	kwEnd       = "end"
	kwOn        = "on"
	kwCrossJoin = "cross join"
	kwInnerJoin = "inner join"
	kwJoin      = "join"

	// contextual words, not reserved
	kwNot      = "not"
	kwDistinct = "distinct"
	kwAsc      = "asc"
)

var defaultKeywords = []string{
	kwSelect, kwFrom, kwWhere, kwGroupBy, kwOrderBy, kwHaving, kwWith, kwAs, kwDesc,
	kwCase, kwWhen, kwThen, kwElse, kwEnd, kwOn, kwCrossJoin, kwInnerJoin, kwJoin,
}

// Operator is one reserved spelling of an infix operator.
type Operator struct {
	Text string
	Op   BinaryOp
}

func (o Operator) isWord() bool {
	return o.Text != "" && isLetter(o.Text[0])
}

var defaultOperators = []Operator{
	{"*", OpMult},
	{"/", OpDiv},
	{"+", OpAdd},
	{"-", OpSub},
	{"=", OpEq},
	{"==", OpEq},
	{"!=", OpNeq},
	{"<>", OpNeq},
	{">", OpGt},
	{"<", OpLt},
	{">=", OpGte},
	{"<=", OpLte},
	{"in", OpIn},
	{"and", OpAnd},
	{"or", OpOr},
}

// Reserved is an immutable table of reserved keywords and operators.
// Unquoted identifiers and function names never start with a reserved entry.
// A Reserved value is safe for concurrent use by any number of parsers.
type Reserved struct {
	keywords  []string
	operators []Operator
	// per precedence level, longest spelling first
	levels [levelCount][]Operator
	// spellings per level as reported in errors
	names [levelCount][]string
	words map[string]bool
}

var defaultReserved = NewReserved(defaultKeywords, defaultOperators)

// DefaultReserved returns the standard keyword/operator table.
func DefaultReserved() *Reserved {
	return defaultReserved
}

// NewReserved builds a table from keywords and operator spellings.
// Keywords are matched case-insensitively; a keyword made of several words
// matches any run of whitespace between them.
func NewReserved(keywords []string, operators []Operator) *Reserved {
	r := &Reserved{words: make(map[string]bool)}
	for _, kw := range keywords {
		kw = normalizeKeyword(kw)
		if kw == "" {
			continue
		}
		r.keywords = append(r.keywords, kw)
		if !strings.Contains(kw, " ") {
			r.words[kw] = true
		}
	}
	for _, op := range operators {
		if op.Text == "" {
			continue
		}
		if op.isWord() {
			op.Text = strings.ToLower(op.Text)
			r.words[op.Text] = true
		}
		r.operators = append(r.operators, op)
		level := op.Op.Level()
		r.levels[level] = append(r.levels[level], op)
	}
	for i := range r.levels {
		ops := r.levels[i]
		sort.SliceStable(ops, func(a, b int) bool { return len(ops[a].Text) > len(ops[b].Text) })
		for _, op := range ops {
			if op.isWord() {
				r.names[i] = append(r.names[i], strings.ToUpper(op.Text))
			} else {
				r.names[i] = append(r.names[i], "'"+op.Text+"'")
			}
		}
	}
	return r
}

// WithKeywords returns a new table that also reserves the given keywords.
func (r *Reserved) WithKeywords(keywords ...string) *Reserved {
	all := make([]string, 0, len(r.keywords)+len(keywords))
	all = append(all, r.keywords...)
	all = append(all, keywords...)
	return NewReserved(all, r.operators)
}

// Keywords returns the reserved keywords in lower case.
func (r *Reserved) Keywords() []string {
	return append([]string(nil), r.keywords...)
}

// Operators returns the reserved operator spellings.
func (r *Reserved) Operators() []Operator {
	return append([]Operator(nil), r.operators...)
}

// IsReserved reports whether word on its own is a reserved keyword or word operator.
func (r *Reserved) IsReserved(word string) bool {
	return r.words[strings.ToLower(word)]
}

// ReservedAt reports whether a reserved keyword or operator starts at pos.
func (r *Reserved) ReservedAt(input string, pos int) bool {
	for _, kw := range r.keywords {
		if _, ok := matchKeyword(input, pos, kw); ok {
			return true
		}
	}
	for _, op := range r.operators {
		if _, ok := matchOperator(input, pos, op); ok {
			return true
		}
	}
	return false
}

// operatorAt returns the operator of the given level found at pos.
func (r *Reserved) operatorAt(input string, pos, level int) (BinaryOp, int, bool) {
	for _, op := range r.levels[level] {
		if end, ok := matchOperator(input, pos, op); ok {
			return op.Op, end, true
		}
	}
	return 0, pos, false
}

// levelNames lists the spellings of a level for error messages.
func (r *Reserved) levelNames(level int) []string {
	return r.names[level]
}

func normalizeKeyword(kw string) string {
	return strings.ToLower(strings.Join(strings.Fields(kw), " "))
}

func matchOperator(input string, pos int, op Operator) (int, bool) {
	if op.isWord() {
		return matchKeyword(input, pos, op.Text)
	}
	if strings.HasPrefix(input[pos:], op.Text) {
		return pos + len(op.Text), true
	}
	return pos, false
}
