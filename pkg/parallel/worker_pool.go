// Package parallel provides the bounded worker pool behind the
// data-parallel fan-outs: per-sequence community detection during
// training and per-sequence classification during evaluation.
package parallel

import (
	"fmt"
	"runtime"
	"sync"
)

// WorkerPool manages a fixed set of worker goroutines consuming a task
// queue.
type WorkerPool struct {
	workers int
	tasks   chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards closed against concurrent Close during Submit
	closed  bool
}

// NewWorkerPool creates a pool with the given number of workers. A
// count of zero or less uses runtime.NumCPU().
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	p := &WorkerPool{
		workers: workers,
		tasks:   make(chan func(), workers*2),
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Workers returns the pool size.
func (p *WorkerPool) Workers() int {
	return p.workers
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for task := range p.tasks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					// Keep the worker alive; the task owns its failure.
					fmt.Printf("worker panic recovered: %v\n", r)
				}
			}()
			task()
		}()
	}
}

// Submit queues a task. Returns false if the pool is already closed.
func (p *WorkerPool) Submit(task func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return false
	}
	p.tasks <- task
	return true
}

// Close stops accepting tasks and blocks until queued tasks finish.
// Safe to call more than once.
func (p *WorkerPool) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()
	})
	p.wg.Wait()
}

// ForEach runs fn(i) for every i in [0,n) across at most workers
// goroutines and waits for all of them.
func ForEach(n, workers int, fn func(i int)) {
	pool := NewWorkerPool(workers)
	for i := 0; i < n; i++ {
		i := i
		pool.Submit(func() { fn(i) })
	}
	pool.Close()
}

// ForEachChunk splits [0,n) into one contiguous chunk per worker and
// runs fn(start, end) for each. Chunked fan-out lets callers accumulate
// into worker-local state and reduce afterwards instead of sharing
// counters.
func ForEachChunk(n, workers int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	pool := NewWorkerPool(workers)
	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		start := start
		end := start + chunk
		if end > n {
			end = n
		}
		pool.Submit(func() { fn(start, end) })
	}
	pool.Close()
}
