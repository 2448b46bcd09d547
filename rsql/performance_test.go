package rsql

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const complexQuery = `SELECT a.id, b.name AS n, count(DISTINCT c.x) total,
       case when a.v > 10 then 'high' when a.v > 5 then 'mid' else 'low' end AS band
FROM orders a
  INNER JOIN users b ON a.user_id = b.id AND b.active = 1
  JOIN items c ON c.order_id = a.id
WHERE a.created >= '2024-01-01' AND (a.status IN ('new', 'paid') OR a.total * 1.2 > 100)
GROUP BY a.id, b.name
HAVING count(*) > 1
ORDER BY total DESC, n`

// TestConcurrentAccess 测试并发访问
func TestConcurrentAccess(t *testing.T) {
	const numGoroutines = 10
	const numIterations = 20

	expected, err := ParseSelect("SELECT a, b FROM t WHERE a IN (SELECT x FROM u) ORDER BY b DESC")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, numGoroutines*numIterations)
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				stmt, err := ParseSelect("SELECT a, b FROM t WHERE a IN (SELECT x FROM u) ORDER BY b DESC")
				if err != nil {
					errs <- err
					continue
				}
				if String(stmt) != String(expected) {
					errs <- assert.AnError
				}
				if _, err := ParseSelect("SELECT a FROM"); err == nil {
					errs <- assert.AnError
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

// TestComplexQuery 测试复杂查询
func TestComplexQuery(t *testing.T) {
	stmt, err := ParseSelect(complexQuery)
	require.NoError(t, err)
	assert.Len(t, stmt.Columns, 4)
	assert.Len(t, stmt.From, 3)
	assert.Len(t, stmt.GroupBy, 2)
	assert.Len(t, stmt.OrderBy, 2)
	assert.Equal(t, "band", stmt.Columns[3].Name)
	assert.Equal(t, "total", stmt.Columns[2].Name)
}

func BenchmarkParsing(b *testing.B) {
	sql := "SELECT a, b FROM t WHERE a > 1 AND b < 2 ORDER BY b DESC"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := ParseSelect(sql); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkComplexQuery(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := ParseSelect(complexQuery); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkComplexQueryWithoutMemo(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := ParseSelect(complexQuery, WithoutMemo()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDeepNesting(b *testing.B) {
	sql := "SELECT " + strings.Repeat("(", 200) + "a + 1" + strings.Repeat(")", 200)
	for i := 0; i < b.N; i++ {
		if _, err := ParseSelect(sql); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLongOperatorRun(b *testing.B) {
	sql := "SELECT " + strings.Repeat("a + ", 1000) + "a"
	for i := 0; i < b.N; i++ {
		if _, err := ParseSelect(sql); err != nil {
			b.Fatal(err)
		}
	}
}
