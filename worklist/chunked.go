package worklist

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

type chunk[T any] struct {
	items []T
	head  int // Next index for a FIFO pop.
}

func (c *chunk[T]) size() int  { return len(c.items) - c.head }
func (c *chunk[T]) full() bool { return len(c.items) == cap(c.items) }

func (c *chunk[T]) take(lifo bool) (item T) {
	if lifo {
		item = c.items[len(c.items)-1]
		c.items = c.items[:len(c.items)-1]
	} else {
		item = c.items[c.head]
		c.head++
	}
	return item
}

type chunkWorker[T any] struct {
	_    cpu.CacheLinePad
	push *chunk[T] // Owner only.
	pop  *chunk[T] // Owner only.

	mu     sync.Mutex
	queue  []*chunk[T] // Full chunks, visible to thieves. Guarded by mu.
	queued atomic.Int32
	_      cpu.CacheLinePad
}

// Chunked is a per-worker chunked worklist. Each worker fills a private chunk;
// full chunks are published to that worker's shared queue, where the owner
// and, once the owner runs dry of its own work, other workers can take them.
//
// Push and Pop with a given tidx must only be called by the worker that owns tidx.
type Chunked[T any] struct {
	lifo    bool
	workers []chunkWorker[T]
	pool    sync.Pool
}

func NewChunked[T any](threads int, lifo bool) *Chunked[T] {
	wl := &Chunked[T]{lifo: lifo, workers: make([]chunkWorker[T], threads)}
	wl.pool.New = func() any { return &chunk[T]{items: make([]T, 0, CHUNK_SIZE)} }
	return wl
}

func (wl *Chunked[T]) getChunk() *chunk[T] {
	c := wl.pool.Get().(*chunk[T])
	c.items = c.items[:0]
	c.head = 0
	return c
}

func (wl *Chunked[T]) putChunk(c *chunk[T]) {
	clear(c.items[:cap(c.items)])
	wl.pool.Put(c)
}

func (wl *Chunked[T]) Push(tidx int, item T) {
	w := &wl.workers[tidx]
	if w.push == nil {
		w.push = wl.getChunk()
	}
	w.push.items = append(w.push.items, item)
	if w.push.full() {
		w.publish(w.push)
		w.push = nil
	}
}

func (w *chunkWorker[T]) publish(c *chunk[T]) {
	w.mu.Lock()
	w.queue = append(w.queue, c)
	w.queued.Add(1)
	w.mu.Unlock()
}

// takeChunk removes a published chunk: the newest for LIFO, the oldest for FIFO.
func (w *chunkWorker[T]) takeChunk(lifo bool) *chunk[T] {
	if w.queued.Load() == 0 {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.queue) == 0 {
		return nil
	}
	var c *chunk[T]
	if lifo {
		c = w.queue[len(w.queue)-1]
		w.queue[len(w.queue)-1] = nil
		w.queue = w.queue[:len(w.queue)-1]
	} else {
		c = w.queue[0]
		w.queue[0] = nil
		w.queue = w.queue[1:]
	}
	w.queued.Add(-1)
	return c
}

// Pop takes the next item for worker tidx, stealing a chunk from another worker
// if tidx has nothing left. ok is false when no item was found anywhere.
func (wl *Chunked[T]) Pop(tidx int) (item T, ok bool) {
	w := &wl.workers[tidx]
	if w.pop != nil {
		if w.pop.size() > 0 {
			return w.pop.take(wl.lifo), true
		}
		wl.putChunk(w.pop)
		w.pop = nil
	}

	if c := wl.nextOwnChunk(w); c != nil {
		w.pop = c
		return c.take(wl.lifo), true
	}

	n := len(wl.workers)
	for i := 1; i < n; i++ {
		if c := wl.workers[(tidx+i)%n].takeChunk(wl.lifo); c != nil {
			w.pop = c
			return c.take(wl.lifo), true
		}
	}
	return item, false
}

// The partially filled push chunk is the newest work: LIFO prefers it, FIFO takes it last.
func (wl *Chunked[T]) nextOwnChunk(w *chunkWorker[T]) *chunk[T] {
	if wl.lifo && w.push != nil && w.push.size() > 0 {
		c := w.push
		w.push = nil
		return c
	}
	if c := w.takeChunk(wl.lifo); c != nil {
		return c
	}
	if w.push != nil && w.push.size() > 0 {
		c := w.push
		w.push = nil
		return c
	}
	return nil
}
