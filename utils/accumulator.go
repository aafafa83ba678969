package utils

import (
	"golang.org/x/sys/cpu"
)

type accumulatorSlot struct {
	value uint64
	_     cpu.CacheLinePad
}

// Accumulator is a sum split into one padded slot per worker. A worker only ever
// touches its own slot; Reduce must be called after the workers have been joined.
type Accumulator struct {
	slots []accumulatorSlot
}

func NewAccumulator(workers int) *Accumulator {
	return &Accumulator{slots: make([]accumulatorSlot, Max(workers, 1))}
}

func (a *Accumulator) Add(tidx int, n uint64) {
	a.slots[tidx].value += n
}

func (a *Accumulator) Reduce() (sum uint64) {
	for i := range a.slots {
		sum += a.slots[i].value
	}
	return sum
}

func (a *Accumulator) ReduceAndReset() (sum uint64) {
	for i := range a.slots {
		sum += a.slots[i].value
		a.slots[i].value = 0
	}
	return sum
}

// MaxReducer keeps a per-worker maximum.
type MaxReducer struct {
	slots []accumulatorSlot
}

func NewMaxReducer(workers int) *MaxReducer {
	return &MaxReducer{slots: make([]accumulatorSlot, Max(workers, 1))}
}

func (m *MaxReducer) Update(tidx int, v uint64) {
	if v > m.slots[tidx].value {
		m.slots[tidx].value = v
	}
}

func (m *MaxReducer) Reduce() (max uint64) {
	for i := range m.slots {
		max = Max(max, m.slots[i].value)
	}
	return max
}
