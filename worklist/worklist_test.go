package worklist

import (
	"context"
	"errors"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkedOrder(t *testing.T) {
	const n = 2*CHUNK_SIZE + 88

	fifo := NewChunked[int](1, false)
	lifo := NewChunked[int](1, true)
	for i := 0; i < n; i++ {
		fifo.Push(0, i)
		lifo.Push(0, i)
	}
	for i := 0; i < n; i++ {
		v, ok := fifo.Pop(0)
		require.True(t, ok)
		require.Equal(t, i, v)

		v, ok = lifo.Pop(0)
		require.True(t, ok)
		require.Equal(t, n-1-i, v)
	}
	_, ok := fifo.Pop(0)
	assert.False(t, ok)
	_, ok = lifo.Pop(0)
	assert.False(t, ok)
}

func TestChunkedSteal(t *testing.T) {
	const n = 2*CHUNK_SIZE + 10
	wl := NewChunked[int](2, false)
	for i := 0; i < n; i++ {
		wl.Push(0, i)
	}

	// Only published (full) chunks can be stolen.
	for i := 0; i < 2*CHUNK_SIZE; i++ {
		v, ok := wl.Pop(1)
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	_, ok := wl.Pop(1)
	assert.False(t, ok)

	for i := 2 * CHUNK_SIZE; i < n; i++ {
		v, ok := wl.Pop(0)
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

// Expands the implicit binary tree of [0, limit): every item is reached exactly once.
func runTree(t *testing.T, threads int, policy Policy, limit int) Stats {
	seen := make([]atomic.Int32, limit)
	stats := ForEach(threads, policy, []int{0}, func(item int, ctx *Context[int]) {
		assert.Less(t, ctx.Tidx(), threads)
		seen[item].Add(1)
		for _, child := range []int{2*item + 1, 2*item + 2} {
			if child < limit {
				ctx.Push(child)
			}
		}
	})
	for i := range seen {
		require.Equal(t, int32(1), seen[i].Load(), "item %d", i)
	}
	return stats
}

func TestForEachPolicies(t *testing.T) {
	const limit = 20000
	for i := 0; i < 10; i++ {
		threads := rand.Intn(8-1) + 1
		for _, policy := range []Policy{ChunkFIFO, ChunkLIFO, BulkSynchronous} {
			stats := runTree(t, threads, policy, limit)
			assert.Equal(t, uint64(limit), stats.Processed, "%s threads %d", policy, threads)
			assert.Equal(t, uint64(limit-1), stats.Pushed, "%s threads %d", policy, threads)
		}
	}
}

func TestForEachRounds(t *testing.T) {
	// 15 items form a perfect tree of depth 4.
	stats := runTree(t, 3, BulkSynchronous, 15)
	assert.Equal(t, 4, stats.Rounds)
	stats = runTree(t, 1, BulkSynchronous, 15)
	assert.Equal(t, 4, stats.Rounds)
}

func TestForEachSerialOrder(t *testing.T) {
	var order []int
	ForEach(1, ChunkFIFO, []int{0, 1}, func(item int, ctx *Context[int]) {
		order = append(order, item)
		if item < 4 {
			ctx.Push(item + 2)
		}
	})
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, order)

	order = order[:0]
	ForEach(1, ChunkLIFO, []int{0}, func(item int, ctx *Context[int]) {
		order = append(order, item)
		if item == 0 {
			ctx.Push(1)
			ctx.Push(2)
		}
	})
	assert.Equal(t, []int{0, 2, 1}, order)
}

func TestForEachEmpty(t *testing.T) {
	for _, policy := range []Policy{ChunkFIFO, ChunkLIFO, BulkSynchronous} {
		stats := ForEach(4, policy, nil, func(item int, ctx *Context[int]) {
			t.Fatal("operator called on empty input")
		})
		assert.Zero(t, stats.Processed)
	}
}

func TestForEachManySeeds(t *testing.T) {
	for i := 0; i < 10; i++ {
		threads := rand.Intn(8-1) + 1
		seeds := make([]int, 5000)
		for j := range seeds {
			seeds[j] = j
		}
		var sum atomic.Int64
		stats := ForEach(threads, ChunkFIFO, seeds, func(item int, ctx *Context[int]) {
			sum.Add(int64(item))
		})
		assert.Equal(t, uint64(len(seeds)), stats.Processed)
		assert.Equal(t, int64(len(seeds)*(len(seeds)-1)/2), sum.Load())
	}
}

func TestBagDoAll(t *testing.T) {
	for i := 0; i < 10; i++ {
		threads := rand.Intn(8-1) + 1
		bag := NewBag[int](threads)
		const n = 3*CHUNK_SIZE + 7
		for j := 0; j < n; j++ {
			bag.Push(j%threads, j)
		}
		require.Equal(t, n, bag.Len())
		require.Len(t, bag.Flatten(), n)

		seen := make([]atomic.Int32, n)
		out := NewBag[int](threads)
		DoAll(threads, bag, func(tidx int, item int) {
			seen[item].Add(1)
			out.Push(tidx, item*2)
		})
		for j := range seen {
			require.Equal(t, int32(1), seen[j].Load())
		}
		assert.Equal(t, n, out.Len())

		bag.Clear()
		assert.True(t, bag.Empty())
		assert.Zero(t, bag.Len())
	}
}

func TestParallelFor(t *testing.T) {
	for _, n := range []int{0, 1, 3, 1000} {
		threads := rand.Intn(8-1) + 1
		seen := make([]atomic.Int32, n)
		ParallelFor(threads, n, func(tidx, begin, end int) {
			for i := begin; i < end; i++ {
				seen[i].Add(1)
			}
		})
		for i := range seen {
			require.Equal(t, int32(1), seen[i].Load())
		}
	}
}

func TestParallelCheck(t *testing.T) {
	errBad := errors.New("bad index")
	err := ParallelCheck(4, 1000, func(ctx context.Context, tidx, begin, end int) error {
		for i := begin; i < end; i++ {
			if i == 777 {
				return errBad
			}
		}
		return nil
	})
	assert.ErrorIs(t, err, errBad)

	err = ParallelCheck(4, 1000, func(ctx context.Context, tidx, begin, end int) error { return nil })
	assert.NoError(t, err)
}

func TestBlockRange(t *testing.T) {
	covered := 0
	prevEnd := 0
	for p := 0; p < 7; p++ {
		begin, end := blockRange(100, 7, p)
		assert.Equal(t, prevEnd, begin)
		covered += end - begin
		prevEnd = end
	}
	assert.Equal(t, 100, covered)
}

func TestPolicyText(t *testing.T) {
	for _, p := range []Policy{ChunkFIFO, ChunkLIFO, BulkSynchronous} {
		text, err := p.MarshalText()
		require.NoError(t, err)
		var back Policy
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, p, back)
	}
	_, err := ParsePolicy("obim")
	assert.ErrorIs(t, err, ErrUnknownPolicy)

	var p Policy
	require.NoError(t, p.Set("Chunk-LIFO"))
	assert.Equal(t, ChunkLIFO, p)
	assert.Equal(t, "policy", p.Type())
}
