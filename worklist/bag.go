package worklist

import (
	"golang.org/x/sys/cpu"
)

type bagPart[T any] struct {
	items []T
	_     cpu.CacheLinePad
}

// Bag is an unordered multiset with one append-only part per worker.
// Push with a given tidx must only be called by the owner of tidx; reading
// (Len, Parts, DoAll) must not overlap with pushes.
type Bag[T any] struct {
	parts []bagPart[T]
}

func NewBag[T any](threads int) *Bag[T] {
	if threads < 1 {
		threads = 1
	}
	return &Bag[T]{parts: make([]bagPart[T], threads)}
}

func (b *Bag[T]) Push(tidx int, item T) {
	p := &b.parts[tidx]
	p.items = append(p.items, item)
}

func (b *Bag[T]) Threads() int { return len(b.parts) }

func (b *Bag[T]) Len() (n int) {
	for i := range b.parts {
		n += len(b.parts[i].items)
	}
	return n
}

func (b *Bag[T]) Empty() bool {
	for i := range b.parts {
		if len(b.parts[i].items) > 0 {
			return false
		}
	}
	return true
}

// Clear empties the bag, keeping the allocated space for reuse.
func (b *Bag[T]) Clear() {
	for i := range b.parts {
		clear(b.parts[i].items)
		b.parts[i].items = b.parts[i].items[:0]
	}
}

// Parts exposes the per-worker slices; they alias the bag's storage.
func (b *Bag[T]) Parts() [][]T {
	out := make([][]T, len(b.parts))
	for i := range b.parts {
		out[i] = b.parts[i].items
	}
	return out
}

// Flatten copies every item into a single slice.
func (b *Bag[T]) Flatten() []T {
	out := make([]T, 0, b.Len())
	for i := range b.parts {
		out = append(out, b.parts[i].items...)
	}
	return out
}
