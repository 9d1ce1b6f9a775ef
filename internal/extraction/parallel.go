package extraction

import (
	"runtime"
	"sync"

	"github.com/inodb/vibe-serve/internal/classification"
	"github.com/inodb/vibe-serve/internal/datamodel"
)

// workItem is an entry with its validated gene.
type workItem struct {
	seq   int
	entry Entry
	gene  string
}

// workResult holds the records produced for one entry.
type workResult struct {
	seq        int
	typ        classification.EventType
	handled    bool
	unresolved bool
	records    datamodel.ExtractionResult
}

// parallelExtract processes items on a pool of workers. Results arrive in
// completion order; use orderedCollect to consume them in sequence order.
// If workers is 0, runtime.NumCPU() is used.
func (x *Extractor) parallelExtract(items <-chan workItem, workers int, p *progress) <-chan workResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make(chan workResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				r := x.extractEntry(item)
				p.inc()
				results <- r
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()
	return results
}

// orderedCollect calls fn for each result in sequence order, buffering
// results that arrive early. Blocks until results is closed.
func orderedCollect(results <-chan workResult, fn func(workResult)) {
	pending := make(map[int]workResult)
	next := 0
	for r := range results {
		pending[r.seq] = r
		for {
			rr, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			fn(rr)
		}
	}
}
