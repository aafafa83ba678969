package graph

import (
	"errors"
	"fmt"
	"math"

	"github.com/ScottSallinen/hopdist/utils"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

var ErrOracleMismatch = errors.New("labels differ from oracle")

// OracleDistances computes hop distances from source with an independent
// shortest path implementation over a copy of the structure. Unreachable
// vertices get UNREACHED.
func (g *Graph) OracleDistances(source uint32) []uint32 {
	n := g.NumVertices()
	og := simple.NewDirectedGraph()
	for v := uint32(0); v < n; v++ {
		og.AddNode(simple.Node(int64(v)))
	}
	for v := uint32(0); v < n; v++ {
		begin, end := g.OutEdges(v)
		for e := begin; e < end; e++ {
			d := g.EdgeDest(e)
			if d == v {
				continue // Self loops never shorten a path.
			}
			og.SetEdge(og.NewEdge(simple.Node(int64(v)), simple.Node(int64(d))))
		}
	}

	shortest := path.DijkstraFrom(simple.Node(int64(source)), og)
	dist := make([]uint32, n)
	for v := uint32(0); v < n; v++ {
		w := shortest.WeightTo(int64(v))
		if math.IsInf(w, 1) {
			dist[v] = UNREACHED
		} else {
			dist[v] = uint32(w)
		}
	}
	return dist
}

// CompareToOracle checks the current labels against OracleDistances(source).
func (g *Graph) CompareToOracle(source uint32) error {
	watch := utils.Watch{}
	watch.Start()
	oracle := g.OracleDistances(source)
	log.Debug().Msg("Oracle computed in (ms) " + utils.V(watch.Stop().Milliseconds()))

	mismatches := 0
	first := -1
	for v := range oracle {
		if got := g.Distance(uint32(v)); got != oracle[v] {
			if first < 0 {
				first = v
			}
			mismatches++
		}
	}
	if mismatches == 0 {
		log.Info().Msg("Oracle compare: all " + utils.V(len(oracle)) + " labels match")
		return nil
	}
	log.Warn().Msg("Oracle compare: " + utils.V(mismatches) + " labels differ")
	return fmt.Errorf("%w: %d vertices, first raw %d has %d want %d", ErrOracleMismatch,
		mismatches, g.RawId(uint32(first)), g.Distance(uint32(first)), oracle[first])
}
