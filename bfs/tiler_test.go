package bfs

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ScottSallinen/hopdist/worklist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTiles(t *testing.T) {
	tiler := EdgeTiler{Size: 4}
	var got []EdgeTile
	for tile := range tiler.Tiles(7, 10, 20) {
		got = append(got, tile)
	}
	assert.Equal(t, []EdgeTile{{7, 10, 14}, {7, 14, 18}, {7, 18, 20}}, got)
	assert.Equal(t, uint64(3), tiler.Count(10))

	for range tiler.Tiles(7, 5, 5) {
		t.Fatal("empty range produced a tile")
	}
	assert.Zero(t, tiler.Count(0))

	// Exact multiple: no short tile at the end.
	got = got[:0]
	for tile := range tiler.Tiles(1, 0, 8) {
		got = append(got, tile)
	}
	assert.Equal(t, []EdgeTile{{1, 0, 4}, {1, 4, 8}}, got)

	// Sizes near the top of the range must not wrap.
	huge := EdgeTiler{Size: math.MaxUint64}
	assert.Equal(t, uint64(1), huge.Count(3))
	assert.Equal(t, uint64(1), huge.Count(math.MaxUint64))
	assert.Zero(t, huge.Count(0))
	bag := worklist.NewBag[EdgeTile](2)
	huge.PushParallel(2, bag, 9, 5, 8)
	assert.Equal(t, []EdgeTile{{9, 5, 8}}, bag.Flatten())

	// Stopping early is honoured.
	count := 0
	for range tiler.Tiles(1, 0, 100) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestPushParallelCoversEdges(t *testing.T) {
	for i := 0; i < 10; i++ {
		threads := rand.Intn(8-1) + 1
		size := uint64(rand.Intn(10) + 1)
		begin := uint64(rand.Intn(50))
		end := begin + uint64(rand.Intn(500))

		tiler := EdgeTiler{Size: size}
		bag := worklist.NewBag[EdgeTile](threads)
		tiler.PushParallel(threads, bag, 3, begin, end)

		tiles := bag.Flatten()
		require.Len(t, tiles, int(tiler.Count(end-begin)))
		covered := make([]int, end-begin)
		short := 0
		for _, tile := range tiles {
			require.Equal(t, uint32(3), tile.Src)
			require.Less(t, tile.Begin, tile.End)
			require.LessOrEqual(t, tile.End-tile.Begin, size)
			if tile.End-tile.Begin < size {
				short++
				require.Equal(t, end, tile.End)
			}
			for e := tile.Begin; e < tile.End; e++ {
				covered[e-begin]++
			}
		}
		assert.LessOrEqual(t, short, 1)
		for e := range covered {
			require.Equal(t, 1, covered[e], "edge %d", uint64(e)+begin)
		}
	}
}
