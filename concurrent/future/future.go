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

package future

// A Future represents an asynchronous computation.
//
// The design is borrowed from Rust's Future [0][1].
//
// A Future is a value that may not have finished computing yet. Futures alone are inert; they must
// be actively polled to make progress. Each time the current task is woken up, it should re-poll
// pending futures that it still has an interest in.
//
// Poll is not called repeatedly in a tight loop; it should only be called when the future indicates
// that it is ready to make progress (by calling waker.Wake).
//
// An implementation of Poll should strive to return quickly, and must *never* block. If it is known
// ahead of time that a call to Poll may end up taking awhile, the work should be offloaded to an
// executor to ensure that Poll can return quickly.
//
// [0]: https://doc.rust-lang.org/std/future/index.html
// [1]: https://aturon.github.io/blog/2016/09/07/futures-design/
type Future interface {
	// Poll attempts to resolve the future to a final value, registering the current task for wakeup
	// if the value is not yet available.
	//
	// This function returns a tuple of (PollResult, error):
	//
	//	* ([any value], err): If an error value is presented, the future finished with the error.
	//	* (PollResultPending, nil): indicates the future is not ready yet.
	//	* ([value other than PollResultPending], nil): the future finished successfully with a value.
	//
	// Once a future has finished, clients should not poll it again.
	//
	// When a future is not ready yet, Poll returns PollResultPending and stores waker to be woken
	// once the future can make progress. Note that on multiple calls to Poll, only the most recent
	// Waker passed to Poll should be scheduled to receive a wakeup.
	Poll(waker Waker) (PollResult, error)
}
