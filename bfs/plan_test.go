package bfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ScottSallinen/hopdist/worklist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlgorithmNames(t *testing.T) {
	for _, alg := range allAlgorithms {
		parsed, err := ParseAlgorithm(alg.String())
		require.NoError(t, err)
		assert.Equal(t, alg, parsed)
	}
	parsed, err := ParseAlgorithm("synchronoustile")
	require.NoError(t, err)
	assert.Equal(t, SynchronousTile, parsed)

	_, err = ParseAlgorithm("DeltaStep")
	assert.ErrorIs(t, err, ErrUnrecognizedAlgorithm)
	assert.False(t, Algorithm(4).Valid())
	assert.Equal(t, "Algorithm(4)", Algorithm(4).String())

	var flagValue Algorithm
	require.NoError(t, flagValue.Set("Asynchronous"))
	assert.Equal(t, Asynchronous, flagValue)
	assert.Equal(t, "algorithm", flagValue.Type())
}

func TestDefaultPlan(t *testing.T) {
	p := DefaultPlan()
	require.NoError(t, p.Validate())
	assert.Equal(t, SynchronousTile, p.Algorithm)
	assert.Equal(t, uint64(DEFAULT_EDGE_TILE_SIZE), p.EdgeTileSize)
	assert.Equal(t, worklist.ChunkFIFO, p.Policy)
	assert.Positive(t, p.threads())
}

func TestPlanValidate(t *testing.T) {
	p := DefaultPlan()
	p.EdgeTileSize = 0
	assert.ErrorIs(t, p.Validate(), ErrInvalidArgument)

	p = DefaultPlan()
	p.Threads = -1
	assert.ErrorIs(t, p.Validate(), ErrInvalidArgument)

	p = DefaultPlan()
	p.Policy = worklist.Policy(7)
	assert.ErrorIs(t, p.Validate(), ErrInvalidArgument)

	p = DefaultPlan()
	p.Algorithm = Algorithm(200)
	assert.ErrorIs(t, p.Validate(), ErrUnrecognizedAlgorithm)
}

func TestParsePlan(t *testing.T) {
	p, err := ParsePlan([]byte("algorithm: asynchronous\nedge_tile_size: 64\nthreads: 3\npolicy: chunk-lifo\ntrack_work: true\n"))
	require.NoError(t, err)
	assert.Equal(t, Plan{Algorithm: Asynchronous, EdgeTileSize: 64, Threads: 3, Policy: worklist.ChunkLIFO, TrackWork: true}, p)

	// Missing fields keep their defaults.
	p, err = ParsePlan([]byte("algorithm: Synchronous\n"))
	require.NoError(t, err)
	assert.Equal(t, Synchronous, p.Algorithm)
	assert.Equal(t, uint64(DEFAULT_EDGE_TILE_SIZE), p.EdgeTileSize)

	_, err = ParsePlan([]byte("edge_tile_size: 0\n"))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ParsePlan([]byte("algorithm: DeltaStep\n"))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, err, ErrUnrecognizedAlgorithm)
}

func TestLoadPlan(t *testing.T) {
	name := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(name, []byte("algorithm: AsynchronousTile\nedge_tile_size: 32\n"), 0o644))
	p, err := LoadPlan(name)
	require.NoError(t, err)
	assert.Equal(t, NewPlan(AsynchronousTile, 32), p)

	_, err = LoadPlan(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
