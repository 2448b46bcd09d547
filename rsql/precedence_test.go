package rsql

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/expr-lang/expr"
	"github.com/spf13/cast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var arithmeticOps = []string{"+", "-", "*", "/"}

// randomArithmetic builds an arithmetic expression over the digits 1..9.
func randomArithmetic(r *rand.Rand, depth int) string {
	if depth == 0 || r.Intn(4) == 0 {
		return strconv.Itoa(r.Intn(9) + 1)
	}
	n := r.Intn(3) + 2
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(" " + arithmeticOps[r.Intn(len(arithmeticOps))] + " ")
		}
		sb.WriteString(randomArithmetic(r, depth-1))
	}
	if r.Intn(3) == 0 {
		return "(" + sb.String() + ")"
	}
	return sb.String()
}

var opSymbols = map[BinaryOp]string{OpAdd: "+", OpSub: "-", OpMult: "*", OpDiv: "/"}

// renderArithmetic writes the tree back as fully parenthesized source, so
// evaluating it follows the tree shape and not operator precedence.
func renderArithmetic(t *testing.T, e Expr) string {
	switch n := e.(type) {
	case *IntegerLiteral:
		return strconv.FormatInt(n.Value, 10)
	case *NaryExpr:
		sym, ok := opSymbols[n.Op]
		require.True(t, ok, "unexpected operator %s", n.Op)
		parts := make([]string, len(n.Operands))
		for i, operand := range n.Operands {
			parts[i] = renderArithmetic(t, operand)
		}
		return "(" + strings.Join(parts, " "+sym+" ") + ")"
	default:
		t.Fatalf("unexpected node %s", String(e))
		return ""
	}
}

// TestPrecedenceOracle 测试运算符优先级与表达式引擎一致
func TestPrecedenceOracle(t *testing.T) {
	r := rand.New(rand.NewSource(20240601))
	for i := 0; i < 300; i++ {
		src := randomArithmetic(r, 3)

		stmt, err := ParseSelect("SELECT " + src)
		require.NoError(t, err, src)
		rendered := renderArithmetic(t, stmt.Columns[0].Value)

		want, err := expr.Eval(src, nil)
		require.NoError(t, err, src)
		got, err := expr.Eval(rendered, nil)
		require.NoError(t, err, rendered)

		wantF, gotF := cast.ToFloat64(want), cast.ToFloat64(got)
		if math.IsInf(wantF, 0) || math.IsNaN(wantF) {
			assert.Equal(t, math.IsInf(wantF, 1), math.IsInf(gotF, 1), src)
			continue
		}
		assert.InDelta(t, wantF, gotF, 1e-9*math.Max(1, math.Abs(wantF)), "%s => %s", src, rendered)
	}
}

// TestRunsEvaluateLeftToRight 测试展平后的运算仍然左结合
func TestRunsEvaluateLeftToRight(t *testing.T) {
	for _, src := range []string{"8 - 3 - 2", "64 / 4 / 2", "1 + 2 - 3 + 4 - 5", "2 * 3 / 4 * 5", "9 - 2 * 3 - 1"} {
		stmt, err := ParseSelect("SELECT " + src)
		require.NoError(t, err)

		want, err := expr.Eval(src, nil)
		require.NoError(t, err)
		got, err := expr.Eval(renderArithmetic(t, stmt.Columns[0].Value), nil)
		require.NoError(t, err)
		assert.InDelta(t, cast.ToFloat64(want), cast.ToFloat64(got), 1e-9, src)
	}
}
