package worklist

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/ScottSallinen/hopdist/utils"
	"golang.org/x/sync/errgroup"
)

type bagBlock struct {
	part       int
	begin, end int
}

// DoAll runs op once for every item in the bag. Items are claimed in blocks of
// CHUNK_SIZE so idle workers pick up the remainder of a large part. The bag must
// not be pushed to while DoAll runs.
func DoAll[T any](threads int, bag *Bag[T], op func(tidx int, item T)) {
	threads = utils.Max(threads, 1)
	parts := bag.Parts()
	if threads == 1 {
		for _, items := range parts {
			for _, item := range items {
				op(0, item)
			}
		}
		return
	}

	blocks := make([]bagBlock, 0, bag.Len()/CHUNK_SIZE+len(parts))
	for p, items := range parts {
		for b := 0; b < len(items); b += CHUNK_SIZE {
			blocks = append(blocks, bagBlock{p, b, utils.Min(b+CHUNK_SIZE, len(items))})
		}
	}
	if len(blocks) == 0 {
		return
	}

	var next atomic.Int64
	workers := utils.Min(threads, len(blocks))
	var wg sync.WaitGroup
	wg.Add(workers)
	for t := 0; t < workers; t++ {
		go func(tidx int) {
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= len(blocks) {
					return
				}
				blk := blocks[i]
				items := parts[blk.part][blk.begin:blk.end]
				for j := range items {
					op(tidx, items[j])
				}
			}
		}(t)
	}
	wg.Wait()
}

// ParallelFor splits [0, n) into one contiguous block per worker and runs fn on each.
func ParallelFor(threads, n int, fn func(tidx, begin, end int)) {
	threads = utils.Max(threads, 1)
	if threads == 1 || n < threads {
		fn(0, 0, n)
		return
	}
	var wg sync.WaitGroup
	wg.Add(threads)
	for t := 0; t < threads; t++ {
		begin, end := blockRange(n, threads, t)
		go func() {
			defer wg.Done()
			fn(t, begin, end)
		}()
	}
	wg.Wait()
}

// ParallelCheck is ParallelFor for blocks that can fail. The context is cancelled
// as soon as one block fails, and the first error is returned.
func ParallelCheck(threads, n int, fn func(ctx context.Context, tidx, begin, end int) error) error {
	threads = utils.Max(threads, 1)
	if threads == 1 || n < threads {
		return fn(context.Background(), 0, 0, n)
	}
	g, ctx := errgroup.WithContext(context.Background())
	for t := 0; t < threads; t++ {
		begin, end := blockRange(n, threads, t)
		g.Go(func() error {
			return fn(ctx, t, begin, end)
		})
	}
	return g.Wait()
}
