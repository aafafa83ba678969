package bfs

import (
	"context"
	"fmt"
	"runtime"

	"github.com/ScottSallinen/hopdist/utils"
	"github.com/ScottSallinen/hopdist/worklist"
)

// ValidateLabeling checks that the labels of g form a legal hop-distance labeling:
// exactly one vertex at distance 0, every label either INFINITY_DIST or below
// NumVertices, and for every edge u->v with u reached, label[v] <= label[u]+1.
// It only reads g.
func ValidateLabeling(g PropertyGraph) error {
	n := g.NumVertices()
	threads := runtime.GOMAXPROCS(0)
	zeros := utils.NewAccumulator(threads)

	err := worklist.ParallelCheck(threads, int(n), func(ctx context.Context, tidx, begin, end int) error {
		for i := begin; i < end; i++ {
			if i%4096 == 0 && ctx.Err() != nil {
				return nil
			}
			u := uint32(i)
			du := g.Distance(u)
			if du == 0 {
				zeros.Add(tidx, 1)
			}
			if du == INFINITY_DIST {
				continue
			}
			if du >= n {
				return fmt.Errorf("%w: vertex %d has label %d, not below %d", ErrAssertionFailed, u, du, n)
			}
			eb, ee := g.OutEdges(u)
			for e := eb; e < ee; e++ {
				v := g.EdgeDest(e)
				if dv := g.Distance(v); dv > du+1 {
					return fmt.Errorf("%w: edge %d->%d has labels %d and %d", ErrAssertionFailed, u, v, du, dv)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if z := zeros.Reduce(); z != 1 {
		return fmt.Errorf("%w: %d vertices at distance 0, want 1", ErrAssertionFailed, z)
	}
	return nil
}
