package partition

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSplitsEvenly(t *testing.T) {
	m := New(4, 10)
	assert.Equal(t, 4, m.Degree())
	total := 0
	for b := 0; b < m.Degree(); b++ {
		begin, end := m.Bucket(b)
		total += end - begin
		assert.LessOrEqual(t, end-begin, 3)
		assert.GreaterOrEqual(t, end-begin, 2)
	}
	assert.Equal(t, 10, total)
}

func TestNewClampsDegreeToN(t *testing.T) {
	m := New(8, 3)
	assert.Equal(t, 3, m.Degree())
}

func TestNewEmptyRange(t *testing.T) {
	m := New(4, 0)
	assert.Equal(t, 1, m.Degree())
	begin, end := m.Bucket(0)
	assert.Equal(t, begin, end)
}

func TestDoVisitsEveryIndexExactlyOnce(t *testing.T) {
	const n = 1000
	m := New(6, n)
	var counts [n]int32
	m.Do(func(i int) {
		atomic.AddInt32(&counts[i], 1)
	})
	for i, c := range counts {
		assert.Equalf(t, int32(1), c, "index %d visited %d times", i, c)
	}
}

func TestDoBucketCoversWholeRange(t *testing.T) {
	const n = 37
	m := New(5, n)
	var seen [n]int32
	m.DoBucket(func(bucket, begin, end int) {
		for i := begin; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	})
	for i, c := range seen {
		assert.Equalf(t, int32(1), c, "index %d visited %d times", i, c)
	}
}
