package worklist

import (
	"sync"
	"sync/atomic"

	"github.com/ScottSallinen/hopdist/utils"
	"github.com/rs/zerolog/log"
)

type pusher[T any] interface {
	Push(tidx int, item T)
}

// Context is handed to the operator for each item. It belongs to one worker and
// must not be shared.
type Context[T any] struct {
	tidx    int
	dst     pusher[T]
	pending *atomic.Int64 // Nil in bulk-synchronous rounds.
	pushed  uint64
}

// Tidx is the index of the worker running the operator, in [0, threads).
func (c *Context[T]) Tidx() int { return c.tidx }

// Push schedules item for processing within the same ForEach.
func (c *Context[T]) Push(item T) {
	if c.pending != nil {
		c.pending.Add(1)
	}
	c.pushed++
	c.dst.Push(c.tidx, item)
}

// Stats describes a finished ForEach.
type Stats struct {
	Processed uint64 // Operator invocations.
	Pushed    uint64 // Items pushed by operators (seeds excluded).
	Rounds    int    // Bulk-synchronous rounds; 0 for the other policies.
}

// ForEach runs op on every item of init and on every item pushed through the
// Context, until no work remains anywhere. The order of processing is unspecified.
// With a single thread items are processed serially in push order (LIFO: reverse).
func ForEach[T any](threads int, policy Policy, init []T, op func(item T, ctx *Context[T])) Stats {
	threads = utils.Max(threads, 1)
	if policy == BulkSynchronous {
		return forEachRounds(threads, init, op)
	}
	if threads == 1 {
		return forEachSerial(policy == ChunkLIFO, init, op)
	}

	wl := NewChunked[T](threads, policy == ChunkLIFO)
	var pending atomic.Int64
	pending.Add(int64(len(init)))

	// Seeds are split into contiguous blocks, one per worker.
	for t := 0; t < threads; t++ {
		begin, end := blockRange(len(init), threads, t)
		for i := begin; i < end; i++ {
			wl.Push(t, init[i])
		}
	}

	processed := make([]uint64, threads)
	pushed := make([]uint64, threads)
	var wg sync.WaitGroup
	wg.Add(threads)
	for t := 0; t < threads; t++ {
		go func(tidx int) {
			defer wg.Done()
			ctx := &Context[T]{tidx: tidx, dst: wl, pending: &pending}
			count := uint64(0)
			fails := 0
			for {
				item, ok := wl.Pop(tidx)
				if ok {
					fails = 0
					op(item, ctx)
					count++
					pending.Add(-1)
					continue
				}
				if pending.Load() == 0 {
					break
				}
				utils.BackOff(fails)
				fails++
			}
			processed[tidx] = count
			pushed[tidx] = ctx.pushed
		}(t)
	}
	wg.Wait()

	stats := Stats{Processed: utils.Sum(processed), Pushed: utils.Sum(pushed)}
	log.Trace().Msg("ForEach " + policy.String() + " threads " + utils.V(threads) + " processed " + utils.V(stats.Processed) + " pushed " + utils.V(stats.Pushed))
	return stats
}

// serialQueue is a single worker queue or stack that reuses its front space.
type serialQueue[T any] struct {
	items []T
	head  int
	lifo  bool
}

func (q *serialQueue[T]) Push(_ int, item T) {
	if !q.lifo && q.head > len(q.items)/2 && q.head > CHUNK_SIZE {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	q.items = append(q.items, item)
}

func (q *serialQueue[T]) pop() (item T, ok bool) {
	if q.head == len(q.items) {
		return item, false
	}
	if q.lifo {
		item = q.items[len(q.items)-1]
		q.items = q.items[:len(q.items)-1]
		return item, true
	}
	item = q.items[q.head]
	q.head++
	return item, true
}

func forEachSerial[T any](lifo bool, init []T, op func(item T, ctx *Context[T])) Stats {
	q := &serialQueue[T]{items: append(make([]T, 0, utils.Max(len(init), CHUNK_SIZE)), init...), lifo: lifo}
	ctx := &Context[T]{dst: q}
	stats := Stats{}
	for {
		item, ok := q.pop()
		if !ok {
			break
		}
		op(item, ctx)
		stats.Processed++
	}
	stats.Pushed = ctx.pushed
	return stats
}

// forEachRounds processes the items of one round with DoAll while collecting
// pushes into the next round, until a round pushes nothing.
func forEachRounds[T any](threads int, init []T, op func(item T, ctx *Context[T])) Stats {
	curr := NewBag[T](threads)
	next := NewBag[T](threads)
	for i := range init {
		next.Push(i%threads, init[i])
	}

	ctxs := make([]Context[T], threads)
	for t := range ctxs {
		ctxs[t] = Context[T]{tidx: t, dst: curr}
	}

	stats := Stats{}
	for !next.Empty() {
		curr, next = next, curr
		next.Clear()
		for t := range ctxs {
			ctxs[t].dst = next
		}
		stats.Processed += uint64(curr.Len())
		stats.Rounds++
		DoAll(threads, curr, func(tidx int, item T) {
			op(item, &ctxs[tidx])
		})
	}
	for t := range ctxs {
		stats.Pushed += ctxs[t].pushed
	}
	return stats
}

// blockRange splits n items into parts contiguous blocks and returns block idx.
func blockRange(n, parts, idx int) (begin, end int) {
	per := n / parts
	extra := n % parts
	begin = idx*per + utils.Min(idx, extra)
	end = begin + per
	if idx < extra {
		end++
	}
	return begin, end
}
