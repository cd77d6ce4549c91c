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

// A CompletionError is the envelope placed around the cause of an asynchronous failure when it
// crosses a future boundary (e.g., when Join reports the failure of one of its inputs). The
// envelope is always exactly one layer thick: NewCompletionError never wraps a CompletionError in
// another one, and CompletionCause strips exactly one layer.
type CompletionError struct {
	// Cause is the failure being carried across the boundary.
	Cause error
}

var _ error = (*CompletionError)(nil)

// Error implements Go's error interface.
func (e *CompletionError) Error() string {
	if e.Cause == nil {
		return "future: asynchronous operation failed"
	}
	return "future: " + e.Cause.Error()
}

// Unwrap returns the carried cause.
func (e *CompletionError) Unwrap() error {
	return e.Cause
}

// NewCompletionError wraps err in a CompletionError. If err is already a CompletionError it is
// returned as-is so the envelope stays exactly one layer thick.
func NewCompletionError(err error) error {
	if completionErr, ok := err.(*CompletionError); ok {
		return completionErr
	}
	return &CompletionError{Cause: err}
}

// CompletionCause strips exactly one CompletionError layer from err. Errors that don't carry the
// envelope are returned unchanged.
func CompletionCause(err error) error {
	if completionErr, ok := err.(*CompletionError); ok && completionErr.Cause != nil {
		return completionErr.Cause
	}
	return err
}
