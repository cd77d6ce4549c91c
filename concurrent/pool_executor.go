/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package concurrent

import (
	"errors"
	"sync"
	"time"
)

// PoolExecutorConfig contains configuration data for initializing a PoolExecutor.
type PoolExecutorConfig struct {
	// NumWorkers specifies the number of worker goroutines processing submitted tasks. It must be a
	// positive value.
	NumWorkers int
}

// Validate checks values in the config.
func (config *PoolExecutorConfig) Validate() error {
	if config.NumWorkers <= 0 {
		return errors.New("concurrent: executor requires at least one worker")
	}
	return nil
}

// States of a poolTask. A task moves from pending to exactly one of the other states.
type poolTaskState int

const (
	poolTaskStatePending poolTaskState = iota
	poolTaskStateRunning
	poolTaskStateCancelled
	poolTaskStateCompleted
)

// poolTask implements TaskHandle for tasks submitted to a PoolExecutor.
type poolTask struct {
	task Task

	// mutex guards state, result and err.
	mutex sync.Mutex
	state poolTaskState

	result interface{}
	err    error

	// done is closed once the task reaches a terminal state.
	done chan struct{}
}

var _ TaskHandle = (*poolTask)(nil)

func newPoolTask(task Task) *poolTask {
	return &poolTask{
		task: task,
		done: make(chan struct{}),
	}
}

// Cancel implements TaskHandle. Cancellation only succeeds before the task starts running.
func (task *poolTask) Cancel() error {
	task.mutex.Lock()
	defer task.mutex.Unlock()
	if task.state != poolTaskStatePending {
		return errors.New("concurrent: task has already started")
	}
	task.state = poolTaskStateCancelled
	task.err = ErrTaskCancelled
	close(task.done)
	return nil
}

// AwaitResult implements TaskHandle.
func (task *poolTask) AwaitResult(timeout time.Duration) (interface{}, error) {
	if timeout > 0 {
		select {
		case <-task.done:
		case <-time.After(timeout):
			return nil, ErrAwaitTaskResultTimeout
		}
	} else {
		<-task.done
	}

	task.mutex.Lock()
	defer task.mutex.Unlock()
	return task.result, task.err
}

// run executes the underlying task unless it was cancelled while queued.
func (task *poolTask) run() {
	task.mutex.Lock()
	if task.state != poolTaskStatePending {
		task.mutex.Unlock()
		return
	}
	task.state = poolTaskStateRunning
	task.mutex.Unlock()

	result, err := task.task.Run()

	task.mutex.Lock()
	task.state = poolTaskStateCompleted
	task.result = result
	task.err = err
	task.mutex.Unlock()
	close(task.done)
}

// PoolExecutor executes submitted tasks on a fixed-size pool of worker goroutines backed by an
// unbounded FIFO queue. Submit therefore never blocks the submitting goroutine, which matters when
// one goroutine schedules more tasks than there are workers.
type PoolExecutor struct {
	// mutex guards queue, shutdown and numWorkers, and backs cond.
	mutex sync.Mutex
	cond  sync.Cond

	queue    []*poolTask
	shutdown bool

	// Number of workers that have not exited yet.
	numWorkers int

	terminated chan bool
}

var _ Executor = (*PoolExecutor)(nil)

// NewPoolExecutor creates a PoolExecutor from the given config and starts its workers.
func NewPoolExecutor(config PoolExecutorConfig) (*PoolExecutor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	executor := &PoolExecutor{
		numWorkers: config.NumWorkers,
		terminated: make(chan bool, 1),
	}
	executor.cond.L = &executor.mutex

	for i := 0; i < config.NumWorkers; i++ {
		go executor.worker()
	}

	return executor, nil
}

// Submit implements Executor.
func (executor *PoolExecutor) Submit(task Task) (TaskHandle, error) {
	handle := newPoolTask(task)

	executor.mutex.Lock()
	if executor.shutdown {
		executor.mutex.Unlock()
		return nil, ErrExecutorShutdown
	}
	executor.queue = append(executor.queue, handle)
	executor.cond.Signal()
	executor.mutex.Unlock()

	return handle, nil
}

// Shutdown implements Executor.
func (executor *PoolExecutor) Shutdown() (<-chan bool, error) {
	executor.mutex.Lock()
	if !executor.shutdown {
		executor.shutdown = true
		executor.cond.Broadcast()
	}
	executor.mutex.Unlock()
	return executor.terminated, nil
}

func (executor *PoolExecutor) worker() {
	for {
		executor.mutex.Lock()
		for len(executor.queue) == 0 && !executor.shutdown {
			executor.cond.Wait()
		}

		if len(executor.queue) == 0 {
			// Shut down and drained; this worker exits. The last one out reports termination.
			executor.numWorkers--
			lastWorker := executor.numWorkers == 0
			executor.mutex.Unlock()
			if lastWorker {
				executor.terminated <- true
			}
			return
		}

		task := executor.queue[0]
		executor.queue = executor.queue[1:]
		executor.mutex.Unlock()

		task.run()
	}
}
