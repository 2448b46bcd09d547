package rsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReservedWords 测试保留字判断
func TestReservedWords(t *testing.T) {
	r := DefaultReserved()

	for _, word := range []string{"select", "SELECT", "From", "where", "as", "desc", "case", "end", "on", "join", "and", "OR", "in", "with"} {
		assert.True(t, r.IsReserved(word), word)
	}
	for _, word := range []string{"not", "distinct", "asc", "order", "group", "inner", "cross", "limit", "t", ""} {
		assert.False(t, r.IsReserved(word), word)
	}
}

// TestReservedAt 测试位置处的保留字匹配
func TestReservedAt(t *testing.T) {
	r := DefaultReserved()
	tests := []struct {
		input    string
		reserved bool
	}{
		{"from t", true},
		{"FROM", true},
		{"order by a", true},
		{"ORDER\n  BY a", true},
		{"orders", false},
		{"order", false},
		{"inner join t", true},
		{"inner", false},
		{"cross join t", true},
		{"andy", false},
		{"and b", true},
		{"in(1)", true},
		{"index", false},
		{"endpoint", false},
		{"*", true},
		{"<> 1", true},
		{"name", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.reserved, r.ReservedAt(tt.input, 0))
		})
	}
}

func TestOperatorAt(t *testing.T) {
	r := DefaultReserved()
	tests := []struct {
		input string
		level int
		op    BinaryOp
		end   int
	}{
		{"* b", 0, OpMult, 1},
		{"/ b", 0, OpDiv, 1},
		{"+b", 1, OpAdd, 1},
		{"- b", 1, OpSub, 1},
		{"= b", 2, OpEq, 1},
		{"== b", 2, OpEq, 2},
		{"!= b", 2, OpNeq, 2},
		{"<> b", 2, OpNeq, 2},
		{"<= b", 2, OpLte, 2},
		{"< b", 2, OpLt, 1},
		{">= b", 2, OpGte, 2},
		{"> b", 2, OpGt, 1},
		{"IN (1)", 3, OpIn, 2},
		{"And b", 4, OpAnd, 3},
		{"or b", 5, OpOr, 2},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			op, end, ok := r.operatorAt(tt.input, 0, tt.level)
			require.True(t, ok)
			assert.Equal(t, tt.op, op)
			assert.Equal(t, tt.end, end)
		})
	}

	_, _, ok := r.operatorAt("order", 5, 0)
	assert.False(t, ok)
	_, _, ok = r.operatorAt("orb", 0, 5)
	assert.False(t, ok)
	_, _, ok = r.operatorAt("+ b", 0, 0)
	assert.False(t, ok)
}

func TestBinaryOpNames(t *testing.T) {
	expected := map[BinaryOp]string{
		OpMult: "mult", OpDiv: "div", OpAdd: "add", OpSub: "sub",
		OpEq: "eq", OpNeq: "neq", OpGt: "gt", OpLt: "lt", OpGte: "gte", OpLte: "lte",
		OpIn: "in", OpAnd: "and", OpOr: "or",
	}
	for op, name := range expected {
		assert.Equal(t, name, op.String())
	}
	assert.Equal(t, "unknown", BinaryOp(99).String())

	assert.Equal(t, 0, OpDiv.Level())
	assert.Equal(t, 1, OpSub.Level())
	assert.Equal(t, 2, OpNeq.Level())
	assert.Equal(t, 3, OpIn.Level())
	assert.Equal(t, 4, OpAnd.Level())
	assert.Equal(t, 5, OpOr.Level())

	assert.Equal(t, "neg", OpNeg.String())
	assert.Equal(t, "not", OpNot.String())
	assert.Equal(t, "distinct", OpDistinct.String())
}

func TestNewReserved(t *testing.T) {
	r := NewReserved([]string{"SELECT", "Group   By", ""}, []Operator{{Text: "+", Op: OpAdd}, {Text: "AND", Op: OpAnd}, {Text: ""}})
	assert.Equal(t, []string{"select", "group by"}, r.Keywords())
	assert.Equal(t, []Operator{{Text: "+", Op: OpAdd}, {Text: "and", Op: OpAnd}}, r.Operators())
	assert.True(t, r.IsReserved("and"))
	assert.False(t, r.IsReserved("group"))
	assert.True(t, r.ReservedAt("group\tby", 0))
	assert.Equal(t, []string{"AND"}, r.levelNames(4))
}

func TestReservedWithKeywords(t *testing.T) {
	base := DefaultReserved()
	extended := base.WithKeywords("LIMIT", "offset")

	assert.True(t, extended.IsReserved("limit"))
	assert.True(t, extended.IsReserved("OFFSET"))
	assert.False(t, base.IsReserved("limit"))
	assert.Len(t, extended.Keywords(), len(base.Keywords())+2)
	assert.Equal(t, base.Operators(), extended.Operators())

	// returned slices are copies
	kws := base.Keywords()
	kws[0] = "changed"
	assert.Equal(t, "select", base.Keywords()[0])
}

func TestLevelNames(t *testing.T) {
	r := DefaultReserved()
	assert.Equal(t, []string{"'*'", "'/'"}, r.levelNames(0))
	assert.Equal(t, []string{"IN"}, r.levelNames(3))
	names := r.levelNames(2)
	require.Len(t, names, 8)
	// longest spellings are tried first
	for _, n := range names[:4] {
		assert.Len(t, n, 4)
	}
}
