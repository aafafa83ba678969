package bfs

import (
	"fmt"
	"io"
	"runtime"

	"github.com/ScottSallinen/hopdist/utils"
	"github.com/ScottSallinen/hopdist/worklist"
	"github.com/rs/zerolog/log"
)

type Statistics struct {
	TotalVisited    uint64  // Vertices with a finite label.
	MaxDistance     uint32  // Largest finite label.
	AverageDistance float64 // Mean finite label.
}

// ComputeStatistics summarises the finite labels of g. A graph with no reached
// vertex has no source and fails with ErrAssertionFailed.
func ComputeStatistics(g PropertyGraph) (Statistics, error) {
	n := g.NumVertices()
	threads := runtime.GOMAXPROCS(0)
	visited := utils.NewAccumulator(threads)
	sum := utils.NewAccumulator(threads)
	maxDist := utils.NewMaxReducer(threads)

	worklist.ParallelFor(threads, int(n), func(tidx, begin, end int) {
		for v := begin; v < end; v++ {
			if d := g.Distance(uint32(v)); d != INFINITY_DIST {
				visited.Add(tidx, 1)
				sum.Add(tidx, uint64(d))
				maxDist.Update(tidx, uint64(d))
			}
		}
	})

	stats := Statistics{TotalVisited: visited.Reduce()}
	if stats.TotalVisited == 0 {
		return stats, fmt.Errorf("%w: no vertex was reached", ErrAssertionFailed)
	}
	stats.MaxDistance = uint32(maxDist.Reduce())
	stats.AverageDistance = float64(sum.Reduce()) / float64(stats.TotalVisited)
	return stats, nil
}

func (s Statistics) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Number of reached nodes = %d\nMaximum distance = %d\nAverage distance = %g\n",
		s.TotalVisited, s.MaxDistance, s.AverageDistance)
	return err
}

func (s Statistics) Log() {
	log.Info().Msg("Reached " + utils.V(s.TotalVisited) + " MaxDistance " + utils.V(s.MaxDistance) + " AverageDistance " + utils.F("%.3f", s.AverageDistance))
}
