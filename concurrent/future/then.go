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

// then implements Future returned by Then.
type then struct {
	inner Future
	fn    func(interface{}) (interface{}, error)
}

// Poll implements future.Future.
func (f *then) Poll(waker Waker) (PollResult, error) {
	result, err := f.inner.Poll(waker)
	if err != nil {
		return nil, err
	}
	if result == PollResultPending {
		return PollResultPending, nil
	}
	return f.fn(result)
}

// Then creates a Future which applies fn to the resolved value of f. An error from f bypasses fn
// and finishes the returned Future with the same error. fn is called at most once.
func Then(f Future, fn func(interface{}) (interface{}, error)) Future {
	return &then{
		inner: f,
		fn:    fn,
	}
}

// handle implements Future returned by Handle.
type handle struct {
	inner Future
	fn    func(interface{}, error) (interface{}, error)
}

// Poll implements future.Future.
func (f *handle) Poll(waker Waker) (PollResult, error) {
	result, err := f.inner.Poll(waker)
	if err == nil && result == PollResultPending {
		return PollResultPending, nil
	}
	return f.fn(result, err)
}

// Handle creates a Future which observes the settlement of f, value or error, and produces a new
// settlement. Exactly one settlement of f is observed; fn is called at most once.
func Handle(f Future, fn func(interface{}, error) (interface{}, error)) Future {
	return &handle{
		inner: f,
		fn:    fn,
	}
}
