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
	"sync"

	"github.com/botobag/incremental/concurrent/future"
)

// taskFuture adapts the completion of a submitted task to the future poll model.
type taskFuture struct {
	// mutex guards waker, done, result and err.
	mutex sync.Mutex

	// Only the most recent waker passed to Poll receives the wakeup.
	waker future.Waker

	done   bool
	result interface{}
	err    error
}

var _ future.Future = (*taskFuture)(nil)

// Poll implements future.Future.
func (f *taskFuture) Poll(waker future.Waker) (future.PollResult, error) {
	f.mutex.Lock()
	if f.done {
		result, err := f.result, f.err
		f.mutex.Unlock()
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	f.waker = waker
	f.mutex.Unlock()
	return future.PollResultPending, nil
}

// complete records the task settlement and wakes the registered waker, if any.
func (f *taskFuture) complete(result interface{}, err error) {
	f.mutex.Lock()
	f.done = true
	f.result = result
	f.err = err
	waker := f.waker
	f.waker = nil
	f.mutex.Unlock()

	if waker != nil {
		// Wake errors have nowhere to go; the next poll observes the settlement regardless.
		_ = waker.Wake()
	}
}

// SubmitFuture submits task to the executor and returns a Future that settles with the task's
// result. The returned Future never blocks in Poll; it waits for the task by registering a waker.
func SubmitFuture(executor Executor, task Task) (future.Future, error) {
	f := &taskFuture{}
	_, err := executor.Submit(TaskFunc(func() (interface{}, error) {
		result, err := task.Run()
		f.complete(result, err)
		return result, err
	}))
	if err != nil {
		return nil, err
	}
	return f, nil
}
