package dynamo

import (
	"runtime"
	"sync"
)

// ParallelFor executes fn over [start, end) split into contiguous chunks.
// Ranges shorter than minChunk run on the calling goroutine.
func ParallelFor(start, end, minChunk int, fn func(lo, hi int)) {
	n := end - start
	if n <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if minChunk < 1 {
		minChunk = 1
	}
	if n <= minChunk || workers <= 1 {
		fn(start, end)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := start + w*chunkSize
		if lo >= end {
			break
		}
		hi := lo + chunkSize
		if hi > end {
			hi = end
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(lo, hi)
	}

	wg.Wait()
}
