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

package incremental

import (
	"sync"

	"github.com/botobag/incremental/concurrent/future"
)

// CallState tracks the incremental calls discovered while executing one request. The main engine
// enqueues a call each time it decides a fragment is deferred; once the initial result has been
// produced it starts the calls and streams their payloads to the transport layer.
type CallState struct {
	// mutex guards calls and err.
	mutex sync.Mutex
	calls []IncrementalCall

	// First fatal error observed while driving calls.
	err error
}

// NewCallState creates an empty CallState for one request.
func NewCallState() *CallState {
	return &CallState{}
}

// Enqueue registers a call for later delivery.
func (state *CallState) Enqueue(call IncrementalCall) {
	state.mutex.Lock()
	state.calls = append(state.calls, call)
	state.mutex.Unlock()
}

// HasDeferredCalls reports whether any call is waiting to be started.
func (state *CallState) HasDeferredCalls() bool {
	state.mutex.Lock()
	defer state.mutex.Unlock()
	return len(state.calls) > 0
}

// StartCalls invokes every enqueued call and returns a channel delivering their payloads in
// completion order. The channel closes after the last call settles. A call whose future fails
// fatally delivers no payload; the first such error is available from Err after the channel
// closes.
func (state *CallState) StartCalls() <-chan *DeferPayload {
	state.mutex.Lock()
	calls := state.calls
	state.calls = nil
	state.mutex.Unlock()

	// Buffer every payload so delivery never blocks on a slow consumer.
	payloads := make(chan *DeferPayload, len(calls))

	var wg sync.WaitGroup
	wg.Add(len(calls))
	for _, call := range calls {
		// Invoke on the calling goroutine so field execution starts in enqueue order; only the wait
		// is offloaded.
		f := call.Invoke()
		go func(f future.Future) {
			defer wg.Done()
			result, err := future.BlockOn(f)
			if err != nil {
				state.setErr(err)
				return
			}
			payloads <- result.(*DeferPayload)
		}(f)
	}

	go func() {
		wg.Wait()
		close(payloads)
	}()

	return payloads
}

// Err returns the first fatal error observed by StartCalls, if any. It is meaningful once the
// payload channel has closed.
func (state *CallState) Err() error {
	state.mutex.Lock()
	defer state.mutex.Unlock()
	return state.err
}

func (state *CallState) setErr(err error) {
	state.mutex.Lock()
	if state.err == nil {
		state.err = err
	}
	state.mutex.Unlock()
}
