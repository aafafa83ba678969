// Package bfs computes hop distances from a source vertex with one of four
// interchangeable parallel strategies: level-synchronous or asynchronous
// label-correcting, each over whole vertices or over fixed-size edge tiles.
package bfs

import (
	"fmt"
	"math"
	"time"

	"github.com/ScottSallinen/hopdist/utils"
	"github.com/ScottSallinen/hopdist/worklist"
	"github.com/rs/zerolog/log"
)

type Dist = uint32

// Label of a vertex not (yet) reached from the source.
const INFINITY_DIST Dist = math.MaxUint32

// PropertyGraph is the topology and the distance property a traversal runs over.
// Labels must be safe for concurrent atomic access; the topology must not change
// during a traversal.
type PropertyGraph interface {
	NumVertices() uint32
	NumEdges() uint64
	OutEdges(v uint32) (begin, end uint64)
	EdgeDest(e uint64) uint32
	Distance(v uint32) Dist
	SetDistance(v uint32, d Dist)
	CompareAndSwapDistance(v uint32, old, val Dist) bool
}

// Preallocator is implemented by graphs that can reserve working memory up front.
type Preallocator interface {
	Preallocate(bytes uint64)
}

// Report describes a finished traversal.
type Report struct {
	Algorithm Algorithm
	Threads   int
	Rounds    int    // Levels run by the synchronous family.
	Processed uint64 // Vertices or tiles taken from the worklist.
	Pushed    uint64 // Items pushed after seeding.
	BadWork   uint64 // Only counted with Plan.TrackWork.
	EmptyWork uint64 // Only counted with Plan.TrackWork.
	Elapsed   time.Duration
}

type Option func(*runOptions)

type runOptions struct {
	metrics *Metrics
}

func WithMetrics(m *Metrics) Option {
	return func(o *runOptions) { o.metrics = m }
}

// RunTraversal labels every vertex of g with its hop distance from source, or
// INFINITY_DIST when unreachable.
func RunTraversal(g PropertyGraph, source uint32, plan Plan) error {
	_, err := Run(g, source, plan)
	return err
}

// Run is RunTraversal that also returns diagnostics. The plan and source are
// checked before any label is written.
func Run(g PropertyGraph, source uint32, plan Plan, opts ...Option) (Report, error) {
	if err := plan.Validate(); err != nil {
		return Report{}, err
	}
	n := g.NumVertices()
	if source >= n {
		return Report{}, fmt.Errorf("%w: source %d not in [0, %d)", ErrInvalidArgument, source, n)
	}
	ro := runOptions{}
	for _, opt := range opts {
		opt(&ro)
	}

	if p, ok := g.(Preallocator); ok {
		p.Preallocate(4 * (uint64(n) + g.NumEdges()))
	}

	t := newTraversal(g, plan)
	log.Debug().Msg("Running " + plan.Algorithm.String() + " from " + utils.V(source) + " with " + utils.V(t.threads) + " threads")
	t.watch.Start()

	worklist.ParallelFor(t.threads, int(n), func(_, begin, end int) {
		for v := begin; v < end; v++ {
			g.SetDistance(uint32(v), INFINITY_DIST)
		}
	})
	g.SetDistance(source, 0)

	var stats worklist.Stats
	switch plan.Algorithm {
	case AsynchronousTile:
		stats = t.asynchronousTile(source)
	case Asynchronous:
		stats = t.asynchronous(source)
	case SynchronousTile:
		stats = t.synchronousTile(source)
	case Synchronous:
		stats = t.synchronous(source)
	}

	report := Report{
		Algorithm: plan.Algorithm,
		Threads:   t.threads,
		Rounds:    stats.Rounds,
		Processed: stats.Processed,
		Pushed:    stats.Pushed,
		BadWork:   t.badWork.ReduceAndReset(),
		EmptyWork: t.emptyWork.ReduceAndReset(),
		Elapsed:   t.watch.Stop(),
	}

	log.Trace().Msg(", bfs, " + utils.V(report.Elapsed.Milliseconds()))
	log.Debug().Msg("Termination(ms) " + utils.V(report.Elapsed.Milliseconds()) + " Processed " + utils.V(report.Processed) + " Pushed " + utils.V(report.Pushed))
	if plan.TrackWork {
		log.Debug().Msg("BadWork " + utils.V(report.BadWork) + " EmptyWork " + utils.V(report.EmptyWork))
	}
	if ro.metrics != nil {
		ro.metrics.observe(report)
	}
	return report, nil
}

// traversal is the state shared by the workers of one run.
type traversal struct {
	g         PropertyGraph
	plan      Plan
	threads   int
	tiler     EdgeTiler
	badWork   *utils.Accumulator
	emptyWork *utils.Accumulator
	watch     utils.Watch
}

func newTraversal(g PropertyGraph, plan Plan) *traversal {
	threads := plan.threads()
	return &traversal{
		g:         g,
		plan:      plan,
		threads:   threads,
		tiler:     EdgeTiler{Size: plan.EdgeTileSize},
		badWork:   utils.NewAccumulator(threads),
		emptyWork: utils.NewAccumulator(threads),
	}
}

// relax lowers label[dest] to newDist if that is an improvement. It returns true
// for the one caller whose CAS installed newDist.
func (t *traversal) relax(tidx int, dest uint32, newDist Dist) bool {
	for {
		old := t.g.Distance(dest)
		if old <= newDist {
			return false
		}
		if t.g.CompareAndSwapDistance(dest, old, newDist) {
			if t.plan.TrackWork && old != INFINITY_DIST {
				t.badWork.Add(tidx, 1)
			}
			return true
		}
	}
}
