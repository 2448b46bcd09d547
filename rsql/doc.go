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
Package rsql parses SQL SELECT statements into an abstract syntax tree.

The parser is scannerless: lexical rules are applied directly by the grammar
at the offset being matched, and every production result is memoized per
(production, offset) for the duration of one parse. The result is a tree of
immutable nodes that can be printed in a compact functional notation or
rendered as a JSON-like tagged value.

# Supported Syntax

	SELECT cols
	[FROM table [[AS] alias], ... {JOIN | INNER JOIN | CROSS JOIN} table [ON expr] ...]
	[WHERE expr]
	[GROUP BY cols]
	[HAVING expr]
	[ORDER BY expr [DESC | ASC], ...]
	[;]

Every clause after the select list is optional; present clauses must appear
in this order. Comments start with "--" or "#" and run to the end of the line.

# Expressions

Primaries are tried in this order: "- expr", "NOT expr", "DISTINCT expr",
CASE ... END, a parenthesized SELECT, a parenthesized expression list,
numbers, 'strings', function calls and identifiers. Infix operators bind,
tightest first:

	*  /
	+  -
	=  ==  !=  <>  >  <  >=  <=
	IN
	AND
	OR

A run of one operator is flattened into a single node; a different operator
of the same precedence wraps the run built so far:

	a + b + c       add(a, b, c)
	a + b - c + d   add(sub(add(a, b), c), d)
	1 + 2 * 3       add(1, mult(2, 3))

# Usage

	stmt, err := rsql.ParseSelect("SELECT a, b FROM t WHERE a > 1 ORDER BY b DESC")
	if err != nil {
		var perr *rsql.ParseError
		if errors.As(err, &perr) {
			fmt.Println(perr.Line, perr.Column, perr.Expected)
		}
		return err
	}
	fmt.Println(rsql.String(stmt))
	// {select(a, b) from(t) where(gt(a, 1)) orderby(b desc)}

	data, _ := json.Marshal(stmt)
	// {"from":["t"],"orderby":[{"sort":"desc","value":"b"}],"select":[{"value":"a"},{"value":"b"}],"where":{"gt":["a",1]}}

# Errors

Parse failures are reported as *ParseError. Syntax errors carry the farthest
offset any production reached together with every alternative that was
expected there. Unterminated quotes and malformed numbers are lexical errors
and abort the parse immediately. Inputs that exceed the nesting or step
budget fail with ErrorTypeMaxIterations.
*/
package rsql
