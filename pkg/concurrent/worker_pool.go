package concurrent

import (
	"sync"
)

type Task[J any, R any] func(job J) R

// WorkerPool fans jobs out over a fixed set of workers and collects their
// results on a channel. One pool instance serves one batch: Start, Submit
// all jobs, Close, Wait, then drain Results.
type WorkerPool[J any, R any] struct {
	numWorkers int
	jobs       chan J
	results    chan R
	wg         sync.WaitGroup
}

func NewWorkerPool[J any, R any](numWorkers, queueSize int) *WorkerPool[J, R] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[J, R]{
		numWorkers: numWorkers,
		jobs:       make(chan J, queueSize),
		results:    make(chan R, queueSize),
	}
}

func (wp *WorkerPool[J, R]) worker(task Task[J, R]) {
	defer wp.wg.Done()
	for job := range wp.jobs {
		wp.results <- task(job)
	}
}

func (wp *WorkerPool[J, R]) Start(task Task[J, R]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(task)
	}
}

func (wp *WorkerPool[J, R]) Submit(job J) {
	wp.jobs <- job
}

// Close signals that no further jobs will be submitted.
func (wp *WorkerPool[J, R]) Close() {
	close(wp.jobs)
}

// Wait blocks until every submitted job finished, then closes the results
// channel so ranging over Results terminates.
func (wp *WorkerPool[J, R]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[J, R]) Results() <-chan R {
	return wp.results
}
