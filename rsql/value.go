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

import "encoding/json"

// ToValue returns the tagged value of the statement:
//
//	{"select": [...], "from": [...], "where": ..., "groupby": [...], "having": ..., "orderby": [...]}
//
// Absent clauses are omitted.
func (s *Select) ToValue() any {
	m := map[string]any{"select": columnValues(s.Columns)}
	if len(s.From) > 0 {
		from := make([]any, len(s.From))
		for i, item := range s.From {
			from[i] = item.ToValue()
		}
		m["from"] = from
	}
	if s.Where != nil {
		m["where"] = s.Where.ToValue()
	}
	if len(s.GroupBy) > 0 {
		m["groupby"] = columnValues(s.GroupBy)
	}
	if s.Having != nil {
		m["having"] = s.Having.ToValue()
	}
	if len(s.OrderBy) > 0 {
		orderBy := make([]any, len(s.OrderBy))
		for i, item := range s.OrderBy {
			orderBy[i] = item.ToValue()
		}
		m["orderby"] = orderBy
	}
	return m
}

// MarshalJSON encodes the tagged value of the statement.
func (s *Select) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToValue())
}

func columnValues(cols []*Column) []any {
	values := make([]any, len(cols))
	for i, col := range cols {
		values[i] = col.ToValue()
	}
	return values
}

func (c *Column) ToValue() any {
	m := map[string]any{"value": c.Value.ToValue()}
	if c.Name != "" {
		m["name"] = c.Name
	}
	return m
}

// ToValue is the bare table name, or {"value": name, "name": alias} when aliased.
func (t *TableRef) ToValue() any {
	if t.Name == "" {
		return t.Value.ToValue()
	}
	return map[string]any{"value": t.Value.ToValue(), "name": t.Name}
}

func (j *Join) ToValue() any {
	m := map[string]any{string(j.Op): j.Table.ToValue()}
	if j.On != nil {
		m["on"] = j.On.ToValue()
	}
	return m
}

func (o *SortColumn) ToValue() any {
	m := map[string]any{"value": o.Value.ToValue()}
	if o.Desc {
		m["sort"] = "desc"
	}
	return m
}

func (l *IntegerLiteral) ToValue() any { return l.Value }

func (l *RealLiteral) ToValue() any { return l.Value }

func (s *StringLiteral) ToValue() any { return map[string]any{"literal": s.Value} }

func (id *Identifier) ToValue() any { return id.String() }

func (u *UnaryExpr) ToValue() any {
	return map[string]any{u.Op.String(): u.Operand.ToValue()}
}

func (n *NaryExpr) ToValue() any {
	return map[string]any{n.Op.String(): exprValues(n.Operands)}
}

func (l *ListExpr) ToValue() any { return exprValues(l.Items) }

// ToValue maps no arguments to nil, one argument to itself and several to a list.
func (f *FunctionCall) ToValue() any {
	var params any
	switch len(f.Args) {
	case 0:
	case 1:
		params = f.Args[0].ToValue()
	default:
		params = exprValues(f.Args)
	}
	return map[string]any{f.Name: params}
}

// ToValue lists the when/then pairs with the else expression appended last.
func (c *CaseExpr) ToValue() any {
	items := make([]any, 0, len(c.Whens)+1)
	for _, w := range c.Whens {
		items = append(items, w.ToValue())
	}
	if c.Else != nil {
		items = append(items, c.Else.ToValue())
	}
	return map[string]any{"case": items}
}

func (w *When) ToValue() any {
	return map[string]any{"when": w.Cond.ToValue(), "then": w.Result.ToValue()}
}

func exprValues(exprs []Expr) []any {
	values := make([]any, len(exprs))
	for i, e := range exprs {
		values[i] = e.ToValue()
	}
	return values
}
