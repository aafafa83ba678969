package bfs

import (
	"iter"

	"github.com/ScottSallinen/hopdist/worklist"
)

// EdgeTile is a contiguous slice [Begin, End) of the out-edges of Src.
type EdgeTile struct {
	Src   uint32
	Begin uint64
	End   uint64
}

// EdgeTiler cuts edge ranges into tiles of at most Size edges.
type EdgeTiler struct {
	Size uint64
}

// Tiles yields the tiles of src's edge range [begin, end) in order. Every tile
// but the last holds exactly Size edges; an empty range yields nothing.
func (t EdgeTiler) Tiles(src uint32, begin, end uint64) iter.Seq[EdgeTile] {
	return func(yield func(EdgeTile) bool) {
		for begin < end {
			stop := end
			if end-begin > t.Size {
				stop = begin + t.Size
			}
			if !yield(EdgeTile{Src: src, Begin: begin, End: stop}) {
				return
			}
			begin = stop
		}
	}
}

// Count is the number of tiles covering n edges.
func (t EdgeTiler) Count(n uint64) uint64 {
	return n/t.Size + min(n%t.Size, 1)
}

// Push adds the tiles of src to a worklist context, one by one.
func (t EdgeTiler) Push(ctx *worklist.Context[EdgeTile], src uint32, begin, end uint64) {
	for tile := range t.Tiles(src, begin, end) {
		ctx.Push(tile)
	}
}

// PushParallel splits the tiles of src across threads workers, each pushing
// its share into its own part of bag.
func (t EdgeTiler) PushParallel(threads int, bag *worklist.Bag[EdgeTile], src uint32, begin, end uint64) {
	n := int(t.Count(end - begin))
	worklist.ParallelFor(threads, n, func(tidx, first, last int) {
		for i := first; i < last; i++ {
			b := begin + uint64(i)*t.Size
			e := end
			if end-b > t.Size {
				e = b + t.Size
			}
			bag.Push(tidx, EdgeTile{Src: src, Begin: b, End: e})
		}
	})
}
