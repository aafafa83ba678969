package utils

import (
	"math/rand"
	"runtime"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/constraints"
)

// Number of empty polls a worker spins through (yielding) before it starts sleeping.
const SPIN_LIMIT = 64

// BackOff is called by a worker that found nothing to do; count is the number of
// consecutive empty polls so far.
func BackOff(count int) {
	if count < SPIN_LIMIT {
		runtime.Gosched()
		return
	}
	count -= SPIN_LIMIT
	if count > 20 {
		count = 20
	}
	time.Sleep(time.Duration((count+1)*10) * time.Microsecond)
}

func Max[T constraints.Ordered](x, y T) T {
	if x < y {
		return y
	}
	return x
}

func Min[T constraints.Ordered](x, y T) T {
	if y < x {
		return y
	}
	return x
}

func MaxSlice[T constraints.Ordered](slice []T) T {
	max := slice[0]
	for i := range slice {
		max = Max(max, slice[i])
	}
	return max
}

func Sum[T constraints.Integer | constraints.Float](slice []T) (sum T) {
	for i := range slice {
		sum += slice[i]
	}
	return sum
}

func Median[T constraints.Integer | constraints.Float](n []T) T {
	return Percentile(n, 50)
}

func Percentile[T constraints.Integer | constraints.Float](n []T, percentile int) T {
	if len(n) == 0 {
		log.Warn().Msg("WARNING: Percentile called on empty slice")
		return 0
	}
	if len(n) == 1 {
		return n[0]
	}

	copyN := make([]T, len(n))
	copy(copyN, n)
	sort.Slice(copyN, func(i, j int) bool { return copyN[i] < copyN[j] })

	idx := int(((float64(percentile) / 100.0) * float64(len(copyN))))
	if idx >= len(copyN) {
		idx = len(copyN) - 1
	}
	if percentile != 50 || len(copyN)%2 == 1 {
		return copyN[idx]
	}
	// Even count: midpoint of the two middle elements.
	lo, hi := copyN[idx-1], copyN[idx]
	return lo + (hi-lo)/2
}

func Shuffle[T any](slice []T, rng *rand.Rand) {
	for i := range slice {
		j := rng.Intn(i + 1)
		slice[i], slice[j] = slice[j], slice[i]
	}
}
