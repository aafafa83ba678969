package graph

import (
	"sync/atomic"

	"github.com/ScottSallinen/hopdist/enforce"
	"github.com/ScottSallinen/hopdist/utils"
	"github.com/rs/zerolog/log"
)

type RawEdge struct {
	SrcRaw RawType
	DstRaw RawType
}

// Builder collects edges and produces a Graph. Raw ids are mapped to dense internal
// ids in order of first appearance, unless the builder was made with NewDenseBuilder.
type Builder struct {
	options   Options
	dense     bool
	rawIds    []RawType
	vertexMap map[RawType]uint32
	srcs      []uint32
	dsts      []uint32
}

func NewBuilder(options Options) *Builder {
	return &Builder{options: options, vertexMap: make(map[RawType]uint32)}
}

// NewDenseBuilder makes a builder whose raw ids are the internal ids, with vertices [0, numVertices).
func NewDenseBuilder(options Options, numVertices uint32) *Builder {
	b := &Builder{options: options, dense: true, rawIds: make([]RawType, numVertices)}
	for i := range b.rawIds {
		b.rawIds[i] = RawType(i)
	}
	return b
}

// AddVertex returns the internal id for raw, creating the vertex if needed.
func (b *Builder) AddVertex(raw RawType) uint32 {
	if b.dense {
		enforce.ENFORCE(uint64(raw) < uint64(len(b.rawIds)), "vertex ", raw, " outside dense range ", len(b.rawIds))
		return uint32(raw)
	}
	if idx, ok := b.vertexMap[raw]; ok {
		return idx
	}
	idx := uint32(len(b.rawIds))
	b.vertexMap[raw] = idx
	b.rawIds = append(b.rawIds, raw)
	return idx
}

// AddEdge adds src->dst, honouring the Transpose and Undirected options.
func (b *Builder) AddEdge(src, dst RawType) {
	if b.options.Transpose {
		src, dst = dst, src
	}
	sidx := b.AddVertex(src)
	didx := b.AddVertex(dst)
	b.srcs = append(b.srcs, sidx)
	b.dsts = append(b.dsts, didx)
	if b.options.Undirected {
		b.srcs = append(b.srcs, didx)
		b.dsts = append(b.dsts, sidx)
	}
}

func (b *Builder) AddEdges(edges []RawEdge) {
	for _, e := range edges {
		b.AddEdge(e.SrcRaw, e.DstRaw)
	}
}

// Build lays the edges out in CSR form, keeping insertion order within each vertex.
// Every label starts as UNREACHED. The builder must not be used afterwards.
func (b *Builder) Build() *Graph {
	n := len(b.rawIds)
	g := &Graph{
		Options: b.options,
		offsets: make([]uint64, n+1),
		dests:   make([]uint32, len(b.dsts)),
		labels:  make([]atomic.Uint32, n),
		rawIds:  b.rawIds,
	}
	if !b.dense {
		g.vertexMap = b.vertexMap
	}

	for _, s := range b.srcs {
		g.offsets[s+1]++
	}
	for v := 0; v < n; v++ {
		g.offsets[v+1] += g.offsets[v]
	}
	cursor := make([]uint64, n)
	copy(cursor, g.offsets[:n])
	for i, s := range b.srcs {
		g.dests[cursor[s]] = b.dsts[i]
		cursor[s]++
	}
	for v := range g.labels {
		g.labels[v].Store(UNREACHED)
	}

	b.srcs, b.dsts = nil, nil
	log.Debug().Msg("Built graph with " + utils.V(n) + " vertices and " + utils.V(len(g.dests)) + " edges")
	return g
}

// FromEdges builds a graph over dense vertex ids [0, numVertices).
func FromEdges(numVertices uint32, edges []RawEdge) *Graph {
	b := NewDenseBuilder(Options{}, numVertices)
	b.AddEdges(edges)
	return b.Build()
}
