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
	"github.com/botobag/incremental/concurrent"
	"github.com/botobag/incremental/concurrent/future"
	"github.com/botobag/incremental/graphql"
)

// FieldResult pairs a response field name with the result of resolving that field. It is produced
// once per field by whoever runs the field to completion and is consumed exactly once by the
// owning DeferredCall's merge step; the name, not arrival order, associates the result with its
// field.
type FieldResult struct {
	FieldName string
	Result    graphql.ExecutionResult
}

// A FieldCall lazily starts resolution of one field belonging to a deferred group. Calling it
// begins execution and returns a Future that resolves to a FieldResult; it must be called at most
// once.
type FieldCall func() future.Future

// NewFieldCall builds a FieldCall that runs resolve on the given executor and tags its result with
// fieldName. An error returned from resolve becomes the failure of the field's future.
func NewFieldCall(
	executor concurrent.Executor,
	fieldName string,
	resolve func() (graphql.ExecutionResult, error)) FieldCall {
	return func() future.Future {
		f, err := concurrent.SubmitFuture(executor, concurrent.TaskFunc(func() (interface{}, error) {
			result, err := resolve()
			if err != nil {
				return nil, err
			}
			return FieldResult{
				FieldName: fieldName,
				Result:    result,
			}, nil
		}))
		if err != nil {
			return future.Err(err)
		}
		return f
	}
}
