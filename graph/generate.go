package graph

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/ScottSallinen/hopdist/utils"
)

var ErrUnknownGenerator = errors.New("unknown graph generator")

// GeneratePath returns 0->1->...->n-1.
func GeneratePath(n uint32) []RawEdge {
	if n < 2 {
		return nil
	}
	edges := make([]RawEdge, 0, n-1)
	for v := uint32(1); v < n; v++ {
		edges = append(edges, RawEdge{RawType(v - 1), RawType(v)})
	}
	return edges
}

// GenerateStar returns 0->i for every leaf i in [1, leaves].
func GenerateStar(leaves uint32) []RawEdge {
	edges := make([]RawEdge, 0, leaves)
	for v := uint32(1); v <= leaves; v++ {
		edges = append(edges, RawEdge{0, RawType(v)})
	}
	return edges
}

// GenerateGrid returns a rows x cols grid with edges in both directions between neighbours.
func GenerateGrid(rows, cols uint32) []RawEdge {
	var edges []RawEdge
	id := func(r, c uint32) RawType { return RawType(r*cols + c) }
	for r := uint32(0); r < rows; r++ {
		for c := uint32(0); c < cols; c++ {
			if c+1 < cols {
				edges = append(edges, RawEdge{id(r, c), id(r, c+1)}, RawEdge{id(r, c+1), id(r, c)})
			}
			if r+1 < rows {
				edges = append(edges, RawEdge{id(r, c), id(r+1, c)}, RawEdge{id(r+1, c), id(r, c)})
			}
		}
	}
	return edges
}

// GenerateRandom returns m edges with endpoints drawn uniformly from [0, n).
// Duplicates and self loops are kept.
func GenerateRandom(n uint32, m uint64, rng *rand.Rand) []RawEdge {
	if n == 0 {
		return nil
	}
	edges := make([]RawEdge, m)
	for i := range edges {
		edges[i] = RawEdge{RawType(rng.Int63n(int64(n))), RawType(rng.Int63n(int64(n)))}
	}
	return edges
}

// GeneratePowerLaw grows a graph by preferential attachment: each new vertex links
// to perVertex existing vertices picked proportionally to their degree, and the
// targets link back. The result has a few very high degree hubs.
func GeneratePowerLaw(n uint32, perVertex uint32, rng *rand.Rand) []RawEdge {
	if n < 2 || perVertex == 0 {
		return nil
	}
	edges := []RawEdge{{0, 1}, {1, 0}}
	endpoints := []RawType{0, 1}
	for v := uint32(2); v < n; v++ {
		for k := uint32(0); k < perVertex; k++ {
			target := endpoints[rng.Intn(len(endpoints))]
			edges = append(edges, RawEdge{RawType(v), target}, RawEdge{target, RawType(v)})
			endpoints = append(endpoints, target)
		}
		endpoints = append(endpoints, RawType(v))
	}
	return edges
}

// GeneratorSpec names a generator and its size parameters.
type GeneratorSpec struct {
	Kind    string
	N       uint32 // Vertices (leaves for star, rows for grid).
	M       uint64 // Edges for random, columns for grid, links per vertex for power-law.
	Seed    int64
	Shuffle bool
}

func Generate(spec GeneratorSpec) ([]RawEdge, error) {
	rng := rand.New(rand.NewSource(spec.Seed))
	var edges []RawEdge
	switch strings.ToLower(spec.Kind) {
	case "path":
		edges = GeneratePath(spec.N)
	case "star":
		edges = GenerateStar(spec.N)
	case "grid":
		edges = GenerateGrid(spec.N, uint32(spec.M))
	case "random":
		edges = GenerateRandom(spec.N, spec.M, rng)
	case "powerlaw":
		edges = GeneratePowerLaw(spec.N, uint32(spec.M), rng)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, spec.Kind)
	}
	if spec.Shuffle {
		utils.Shuffle(edges, rng)
	}
	return edges, nil
}
