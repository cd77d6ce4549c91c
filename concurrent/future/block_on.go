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

// BlockOn runs a Future to completion on the calling goroutine. The future is polled once
// immediately; while it stays pending, the caller sleeps until the most recently registered Waker
// fires, then polls again. The wakeup channel is buffered so a Wake that races with the poll sweep
// is never lost.
func BlockOn(f Future) (interface{}, error) {
	wakeup := make(chan struct{}, 1)
	waker := WakerFunc(func() error {
		select {
		case wakeup <- struct{}{}:
		default:
			// A wakeup is already queued.
		}
		return nil
	})

	for {
		result, err := f.Poll(waker)
		if err != nil {
			return nil, err
		}
		if result != PollResultPending {
			return result, nil
		}
		<-wakeup
	}
}
