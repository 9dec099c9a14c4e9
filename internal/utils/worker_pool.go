package utils

import (
	"sync"
)

// PanicHandler receives the id of a job that panicked and the recovered value.
type PanicHandler func(id string, recovered any)

// job is one unit of work identified for diagnostics.
type job struct {
	id   string
	task func()
}

// WorkerPool runs jobs on a fixed number of goroutines. A job that panics is
// recovered so it cannot take down the other jobs or the caller.
type WorkerPool struct {
	jobQueue  chan job
	waitGroup sync.WaitGroup
	onPanic   PanicHandler
}

// NewWorkerPool creates a WorkerPool with the specified number of workers (at least one).
func NewWorkerPool(workers int, onPanic PanicHandler) *WorkerPool {
	if workers < 1 {
		workers = 1
	}

	pool := &WorkerPool{
		jobQueue: make(chan job, workers),
		onPanic:  onPanic,
	}

	pool.waitGroup.Add(workers)
	for i := 0; i < workers; i++ {
		go pool.worker()
	}

	return pool
}

func (wp *WorkerPool) worker() {
	defer wp.waitGroup.Done()
	for j := range wp.jobQueue {
		wp.run(j)
	}
}

func (wp *WorkerPool) run(j job) {
	defer func() {
		if r := recover(); r != nil && wp.onPanic != nil {
			wp.onPanic(j.id, r)
		}
	}()
	j.task()
}

// Submit queues a task. It blocks while every worker is busy and the queue is full.
func (wp *WorkerPool) Submit(id string, task func()) {
	wp.jobQueue <- job{id: id, task: task}
}

// Shutdown stops accepting jobs and waits for the queued ones to finish.
func (wp *WorkerPool) Shutdown() {
	close(wp.jobQueue)
	wp.waitGroup.Wait()
}
