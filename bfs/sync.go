package bfs

import (
	"github.com/ScottSallinen/hopdist/utils"
	"github.com/ScottSallinen/hopdist/worklist"
	"github.com/rs/zerolog/log"
)

// synchronousAlgo expands the frontier one level per round. A vertex is claimed
// by the single CAS that moves it off INFINITY_DIST, so it enters next exactly once.
func synchronousAlgo[T any](
	t *traversal,
	seed func(next *worklist.Bag[T]),
	edgeRange func(item T) (begin, end uint64),
	push func(next *worklist.Bag[T], tidx int, dest uint32),
) (stats worklist.Stats) {
	g := t.g
	curr := worklist.NewBag[T](t.threads)
	next := worklist.NewBag[T](t.threads)
	seed(next)
	seeded := uint64(next.Len())

	level := Dist(0)
	for !next.Empty() {
		curr, next = next, curr
		next.Clear()
		level++
		frontier := curr.Len()

		worklist.DoAll(t.threads, curr, func(tidx int, item T) {
			begin, end := edgeRange(item)
			for e := begin; e < end; e++ {
				dest := g.EdgeDest(e)
				if g.Distance(dest) == INFINITY_DIST && g.CompareAndSwapDistance(dest, INFINITY_DIST, level) {
					push(next, tidx, dest)
				}
			}
		})

		stats.Rounds++
		stats.Processed += uint64(frontier)
		log.Debug().Msg("Level " + utils.V(level) + " frontier " + utils.V(frontier) + " lap(ms) " + utils.F("%.3f", float64(t.watch.Lap().Microseconds())/1000.0))
	}
	stats.Pushed = stats.Processed - seeded
	return stats
}

func (t *traversal) synchronous(source uint32) worklist.Stats {
	g := t.g
	return synchronousAlgo(t,
		func(next *worklist.Bag[uint32]) {
			next.Push(0, source)
		},
		func(v uint32) (uint64, uint64) {
			return g.OutEdges(v)
		},
		func(next *worklist.Bag[uint32], tidx int, dest uint32) {
			next.Push(tidx, dest)
		},
	)
}

func (t *traversal) synchronousTile(source uint32) worklist.Stats {
	g := t.g
	return synchronousAlgo(t,
		func(next *worklist.Bag[EdgeTile]) {
			begin, end := g.OutEdges(source)
			t.tiler.PushParallel(t.threads, next, source, begin, end)
		},
		func(tile EdgeTile) (uint64, uint64) {
			return tile.Begin, tile.End
		},
		func(next *worklist.Bag[EdgeTile], tidx int, dest uint32) {
			begin, end := g.OutEdges(dest)
			for tile := range t.tiler.Tiles(dest, begin, end) {
				next.Push(tidx, tile)
			}
		},
	)
}
