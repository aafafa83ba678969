package bfs

import (
	"github.com/ScottSallinen/hopdist/worklist"
)

// UpdateRequest asks for the out-edges of Src to be relaxed; Dist is the label
// Src held when the request was made.
type UpdateRequest struct {
	Src  uint32
	Dist Dist
}

// asynchronousAlgo is label-correcting: every item relaxes its edges against the
// current labels and any vertex whose label drops is scheduled again. start gives
// the distance to relax from, or false to drop a stale item.
func asynchronousAlgo[T any](
	t *traversal,
	seeds []T,
	start func(item T, tidx int) (Dist, bool),
	edgeRange func(item T) (begin, end uint64),
	push func(ctx *worklist.Context[T], dest uint32, d Dist),
) worklist.Stats {
	g := t.g
	return worklist.ForEach(t.threads, t.plan.Policy, seeds, func(item T, ctx *worklist.Context[T]) {
		d, ok := start(item, ctx.Tidx())
		if !ok {
			return
		}
		newDist := d + 1
		begin, end := edgeRange(item)
		for e := begin; e < end; e++ {
			dest := g.EdgeDest(e)
			if t.relax(ctx.Tidx(), dest, newDist) {
				push(ctx, dest, newDist)
			}
		}
	})
}

func (t *traversal) asynchronous(source uint32) worklist.Stats {
	g := t.g
	return asynchronousAlgo(t,
		[]UpdateRequest{{Src: source, Dist: 0}},
		t.startRequest,
		func(item UpdateRequest) (uint64, uint64) {
			return g.OutEdges(item.Src)
		},
		func(ctx *worklist.Context[UpdateRequest], dest uint32, d Dist) {
			ctx.Push(UpdateRequest{Src: dest, Dist: d})
		},
	)
}

// startRequest drops a request whose source label moved on since it was pushed,
// counting it as empty work. Without work tracking every request is relaxed.
func (t *traversal) startRequest(item UpdateRequest, tidx int) (Dist, bool) {
	if t.plan.TrackWork && t.g.Distance(item.Src) != item.Dist {
		t.emptyWork.Add(tidx, 1)
		return 0, false
	}
	return item.Dist, true
}

func (t *traversal) asynchronousTile(source uint32) worklist.Stats {
	g := t.g
	seeds := worklist.NewBag[EdgeTile](t.threads)
	begin, end := g.OutEdges(source)
	t.tiler.PushParallel(t.threads, seeds, source, begin, end)

	return asynchronousAlgo(t,
		seeds.Flatten(),
		func(tile EdgeTile, _ int) (Dist, bool) {
			return g.Distance(tile.Src), true
		},
		func(tile EdgeTile) (uint64, uint64) {
			return tile.Begin, tile.End
		},
		func(ctx *worklist.Context[EdgeTile], dest uint32, _ Dist) {
			begin, end := g.OutEdges(dest)
			t.tiler.Push(ctx, dest, begin, end)
		},
	)
}
