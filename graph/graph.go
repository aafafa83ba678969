package graph

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"sync/atomic"

	"github.com/ScottSallinen/hopdist/utils"
	"github.com/rs/zerolog/log"
)

// Label of a vertex that has not been reached.
const UNREACHED = math.MaxUint32

// RawType is a vertex identifier as it appears in the input.
type RawType uint32

func (r RawType) String() string {
	return utils.V(uint32(r))
}

// Graph is an immutable directed graph in compressed sparse row form, with one
// atomically accessed uint32 label per vertex. Internal vertex ids are dense in
// [0, NumVertices); the out-edges of v occupy edge indices [offsets[v], offsets[v+1]).
type Graph struct {
	Options Options

	offsets []uint64
	dests   []uint32
	labels  []atomic.Uint32

	rawIds    []RawType          // Internal to raw.
	vertexMap map[RawType]uint32 // Raw to internal; nil when raw ids are already dense.

	reserved uint64
}

func (g *Graph) NumVertices() uint32 { return uint32(len(g.rawIds)) }
func (g *Graph) NumEdges() uint64    { return uint64(len(g.dests)) }

// OutEdges returns the edge index range of v.
func (g *Graph) OutEdges(v uint32) (begin, end uint64) {
	return g.offsets[v], g.offsets[v+1]
}

func (g *Graph) OutDegree(v uint32) uint64 {
	return g.offsets[v+1] - g.offsets[v]
}

func (g *Graph) EdgeDest(e uint64) uint32 { return g.dests[e] }

func (g *Graph) Distance(v uint32) uint32 { return g.labels[v].Load() }

func (g *Graph) SetDistance(v uint32, d uint32) { g.labels[v].Store(d) }

func (g *Graph) CompareAndSwapDistance(v uint32, old, val uint32) bool {
	return g.labels[v].CompareAndSwap(old, val)
}

// Preallocate records an expected working set, in bytes, for the next traversal.
func (g *Graph) Preallocate(bytes uint64) {
	if bytes > g.reserved {
		g.reserved = bytes
		log.Trace().Msg("Preallocate hint " + utils.V(bytes/1024) + " KiB")
	}
}

// Distances copies out the current labels.
func (g *Graph) Distances() []uint32 {
	out := make([]uint32, len(g.labels))
	for i := range g.labels {
		out[i] = g.labels[i].Load()
	}
	return out
}

func (g *Graph) RawId(v uint32) RawType { return g.rawIds[v] }

// VertexIndex maps a raw id from the input to the internal id.
func (g *Graph) VertexIndex(raw RawType) (uint32, bool) {
	if g.vertexMap == nil {
		if uint64(raw) < uint64(len(g.rawIds)) {
			return uint32(raw), true
		}
		return 0, false
	}
	v, ok := g.vertexMap[raw]
	return v, ok
}

type GraphStats struct {
	Vertices     uint32
	Edges        uint64
	Sinks        uint32
	MaxOutDegree uint64
	MedianOutDeg uint64
}

func (g *Graph) ComputeGraphStats() (stats GraphStats) {
	stats.Vertices = g.NumVertices()
	stats.Edges = g.NumEdges()
	if stats.Vertices == 0 {
		return stats
	}
	degrees := make([]uint64, stats.Vertices)
	for v := uint32(0); v < stats.Vertices; v++ {
		degrees[v] = g.OutDegree(v)
		if degrees[v] == 0 {
			stats.Sinks++
		}
	}
	stats.MaxOutDegree = utils.MaxSlice(degrees)
	stats.MedianOutDeg = utils.Median(degrees)

	log.Info().Msg("----GraphStats----")
	log.Info().Msg("Vertices " + utils.V(stats.Vertices))
	log.Info().Msg("Sinks " + utils.V(stats.Sinks) + " pct:" + utils.F("%.3f", float64(stats.Sinks)*100.0/float64(stats.Vertices)))
	log.Info().Msg("Edges " + utils.V(stats.Edges))
	log.Info().Msg("MaxOutDeg " + utils.V(stats.MaxOutDegree))
	log.Info().Msg("MedianOutDeg " + utils.V(stats.MedianOutDeg))
	log.Info().Msg("----EndStats----")
	return stats
}

// WriteVertexProps writes one "rawId label" line per vertex; unreached vertices get "inf".
func (g *Graph) WriteVertexProps(w io.Writer) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 32)
	for v := uint32(0); v < g.NumVertices(); v++ {
		buf = strconv.AppendUint(buf[:0], uint64(g.rawIds[v]), 10)
		buf = append(buf, ' ')
		if d := g.Distance(v); d == UNREACHED {
			buf = append(buf, "inf"...)
		} else {
			buf = strconv.AppendUint(buf, uint64(d), 10)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
