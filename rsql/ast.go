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

// ast.go defines the abstract syntax tree produced by the parser.

package rsql

import (
	"bytes"
	"strconv"
	"strings"
)

// Node is implemented by every AST node.
// Nodes are built once by the parser and never modified afterwards.
type Node interface {
	// Format writes a compact functional notation of the node, e.g. add(1, mult(2, 3)).
	Format(buf *bytes.Buffer)
	// ToValue returns the JSON-like tagged value of the node.
	ToValue() any
}

// Expr is a value expression. The set of implementations is closed.
type Expr interface {
	Node
	exprNode()
}

// FromItem is an entry of a FROM clause: a *TableRef or a *Join.
type FromItem interface {
	Node
	fromItem()
}

func (*IntegerLiteral) exprNode() {}
func (*RealLiteral) exprNode()    {}
func (*StringLiteral) exprNode()  {}
func (*Identifier) exprNode()     {}
func (*UnaryExpr) exprNode()      {}
func (*NaryExpr) exprNode()       {}
func (*ListExpr) exprNode()       {}
func (*FunctionCall) exprNode()   {}
func (*CaseExpr) exprNode()       {}
func (*Select) exprNode()         {}

func (*TableRef) fromItem() {}
func (*Join) fromItem()     {}

// Select is a SELECT statement. It is also an expression when nested in parentheses.
type Select struct {
	// Columns is the select list; never empty
	Columns []*Column
	// From holds table references followed by joins
	From []FromItem
	Where   Expr
	GroupBy []*Column
	Having  Expr
	OrderBy []*SortColumn
}

func (s *Select) Format(buf *bytes.Buffer) {
	buf.WriteString("{select(")
	for i, col := range s.Columns {
		if i > 0 {
			buf.WriteString(", ")
		}
		col.Format(buf)
	}
	buf.WriteString(")")
	if len(s.From) > 0 {
		buf.WriteString(" from(")
		for i, item := range s.From {
			if i > 0 {
				buf.WriteString(", ")
			}
			item.Format(buf)
		}
		buf.WriteString(")")
	}
	if s.Where != nil {
		buf.WriteString(" where(")
		s.Where.Format(buf)
		buf.WriteString(")")
	}
	if len(s.GroupBy) > 0 {
		buf.WriteString(" groupby(")
		for i, col := range s.GroupBy {
			if i > 0 {
				buf.WriteString(", ")
			}
			col.Format(buf)
		}
		buf.WriteString(")")
	}
	if s.Having != nil {
		buf.WriteString(" having(")
		s.Having.Format(buf)
		buf.WriteString(")")
	}
	if len(s.OrderBy) > 0 {
		buf.WriteString(" orderby(")
		for i, item := range s.OrderBy {
			if i > 0 {
				buf.WriteString(", ")
			}
			item.Format(buf)
		}
		buf.WriteString(")")
	}
	buf.WriteString("}")
}

// Column is an entry of a select list or GROUP BY list.
type Column struct {
	Value Expr
	// Name is the alias, empty when absent
	Name string
}

// IsWildcard reports whether the column is a bare *.
func (c *Column) IsWildcard() bool {
	id, ok := c.Value.(*Identifier)
	return ok && id.IsWildcard() && c.Name == ""
}

func (c *Column) Format(buf *bytes.Buffer) {
	c.Value.Format(buf)
	if c.Name != "" {
		buf.WriteString(" as ")
		buf.WriteString(quoteIdent(c.Name))
	}
}

// TableRef names a table in a FROM clause or join.
type TableRef struct {
	Value *Identifier
	// Name is the alias, empty when absent
	Name string
}

func (t *TableRef) Format(buf *bytes.Buffer) {
	t.Value.Format(buf)
	if t.Name != "" {
		buf.WriteString(" as ")
		buf.WriteString(quoteIdent(t.Name))
	}
}

// Join is a JOIN, INNER JOIN or CROSS JOIN following the table references.
type Join struct {
	Op    JoinOp
	Table *TableRef
	// On is nil when the join has no ON condition
	On Expr
}

func (j *Join) Format(buf *bytes.Buffer) {
	buf.WriteString(string(j.Op))
	buf.WriteString(" ")
	j.Table.Format(buf)
	if j.On != nil {
		buf.WriteString(" on ")
		j.On.Format(buf)
	}
}

// SortColumn is an ORDER BY item.
type SortColumn struct {
	Value Expr
	Desc  bool
}

func (o *SortColumn) Format(buf *bytes.Buffer) {
	o.Value.Format(buf)
	if o.Desc {
		buf.WriteString(" desc")
	}
}

// IntegerLiteral is a decoded integer literal.
type IntegerLiteral struct {
	Value int64
}

func (l *IntegerLiteral) Format(buf *bytes.Buffer) {
	buf.WriteString(strconv.FormatInt(l.Value, 10))
}

// RealLiteral is a decoded real literal.
type RealLiteral struct {
	Value float64
}

func (l *RealLiteral) Format(buf *bytes.Buffer) {
	s := strconv.FormatFloat(l.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	buf.WriteString(s)
}

// StringLiteral holds the unescaped text of a string literal.
type StringLiteral struct {
	Value string
}

func (s *StringLiteral) Format(buf *bytes.Buffer) {
	buf.WriteString("'")
	for _, r := range s.Value {
		switch r {
		case '\n':
			buf.WriteString("\\n")
		case '\r':
			buf.WriteString("\\r")
		case '\t':
			buf.WriteString("\\t")
		case '\'':
			buf.WriteString("\\'")
		case '\\':
			buf.WriteString("\\\\")
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteString("'")
}

// Identifier is a dotted name path such as a.b.c, or the wildcard *.
type Identifier struct {
	Parts []string
}

// Wildcard returns the * identifier.
func Wildcard() *Identifier {
	return &Identifier{Parts: []string{"*"}}
}

// IsWildcard reports whether the identifier is *.
func (id *Identifier) IsWildcard() bool {
	return len(id.Parts) == 1 && id.Parts[0] == "*"
}

// String joins the parts with dots.
func (id *Identifier) String() string {
	return strings.Join(id.Parts, ".")
}

func (id *Identifier) Format(buf *bytes.Buffer) {
	if id.IsWildcard() {
		buf.WriteString("*")
		return
	}
	for i, part := range id.Parts {
		if i > 0 {
			buf.WriteString(".")
		}
		buf.WriteString(quoteIdent(part))
	}
}

// UnaryExpr is a prefix operator applied to an expression.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
}

func (u *UnaryExpr) Format(buf *bytes.Buffer) {
	buf.WriteString(u.Op.String())
	buf.WriteString("(")
	u.Operand.Format(buf)
	buf.WriteString(")")
}

// NaryExpr is a run of one infix operator, e.g. a + b + c, with at least two operands.
type NaryExpr struct {
	Op       BinaryOp
	Operands []Expr
}

func (n *NaryExpr) Format(buf *bytes.Buffer) {
	buf.WriteString(n.Op.String())
	formatArgs(buf, n.Operands)
}

// ListExpr is a parenthesized list of two or more expressions.
type ListExpr struct {
	Items []Expr
}

func (l *ListExpr) Format(buf *bytes.Buffer) {
	buf.WriteString("[")
	for i, item := range l.Items {
		if i > 0 {
			buf.WriteString(", ")
		}
		item.Format(buf)
	}
	buf.WriteString("]")
}

// FunctionCall is name(args). Name is lower case.
type FunctionCall struct {
	Name string
	Args []Expr
}

func (f *FunctionCall) Format(buf *bytes.Buffer) {
	buf.WriteString(f.Name)
	formatArgs(buf, f.Args)
}

// CaseExpr is CASE WHEN ... THEN ... [ELSE ...] END.
type CaseExpr struct {
	Whens []*When
	// Else is nil when there is no ELSE branch
	Else Expr
}

func (c *CaseExpr) Format(buf *bytes.Buffer) {
	buf.WriteString("case(")
	for i, w := range c.Whens {
		if i > 0 {
			buf.WriteString(", ")
		}
		w.Format(buf)
	}
	if c.Else != nil {
		if len(c.Whens) > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("else(")
		c.Else.Format(buf)
		buf.WriteString(")")
	}
	buf.WriteString(")")
}

// When is one WHEN ... THEN ... branch of a CaseExpr.
type When struct {
	Cond   Expr
	Result Expr
}

func (w *When) Format(buf *bytes.Buffer) {
	buf.WriteString("when(")
	w.Cond.Format(buf)
	buf.WriteString(", ")
	w.Result.Format(buf)
	buf.WriteString(")")
}

// String returns the formatted notation of a node.
func String(n Node) string {
	var buf bytes.Buffer
	n.Format(&buf)
	return buf.String()
}

func formatArgs(buf *bytes.Buffer, args []Expr) {
	buf.WriteString("(")
	for i, arg := range args {
		if i > 0 {
			buf.WriteString(", ")
		}
		arg.Format(buf)
	}
	buf.WriteString(")")
}

// quoteIdent double-quotes a name that cannot be written bare.
func quoteIdent(name string) string {
	if isSimpleWord(name) && !defaultReserved.IsReserved(name) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
