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
	"github.com/botobag/incremental/concurrent/future"
	"github.com/botobag/incremental/graphql"
)

// DeferredCall represents a deferred call (aka @defer) to get an execution result sometime after
// the initial query has returned.
//
// A deferred call can encompass multiple fields and resolves once all of them resolve. For
// example, this query:
//
//	{
//	    post {
//	        ... @defer(label: "defer-post") {
//	            text
//	            summary
//	        }
//	    }
//	}
//
// results in one DeferredCall containing calls for the 2 fields: "text" and "summary".
type DeferredCall struct {
	label string
	path  graphql.ResponsePath
	calls []FieldCall
	ctx   *DeferredCallContext
}

var _ IncrementalCall = (*DeferredCall)(nil)

// NewDeferredCall creates a DeferredCall for the group of fields described by calls. label may be
// empty. ctx is owned by the returned call for its whole lifetime. The configuration is immutable
// after construction.
func NewDeferredCall(
	label string,
	path graphql.ResponsePath,
	calls []FieldCall,
	ctx *DeferredCallContext) *DeferredCall {
	return &DeferredCall{
		label: label,
		path:  path,
		calls: calls,
		ctx:   ctx,
	}
}

// Invoke implements IncrementalCall. It starts every field call (beginning their concurrent
// execution) and returns a Future that resolves to the call's *DeferPayload. The future fails only
// for causes that are neither ordinary field errors nor a non-null violation; such failures are
// fatal and carry exactly one future.CompletionError layer.
//
// Invoke must be called at most once: a second invocation would re-run all field computations.
func (call *DeferredCall) Invoke() future.Future {
	futures := make([]future.Future, len(call.calls))
	for i, fieldCall := range call.calls {
		futures[i] = fieldCall()
	}

	payload := future.Then(future.Join(futures...), call.buildPayload)
	return future.Handle(payload, call.handleNonNullableFieldError)
}

// buildPayload merges the settled field results with the errors accumulated in the call context.
// The data mapping preserves field declaration order regardless of completion order; the error
// list is the context errors followed by each field's own errors, again in declaration order.
func (call *DeferredCall) buildPayload(value interface{}) (interface{}, error) {
	joined := value.([]interface{})

	results := make([]FieldResult, len(joined))
	for i, result := range joined {
		results[i] = result.(FieldResult)
	}

	errs := call.ctx.Errors()
	for _, result := range results {
		errs.AppendErrors(result.Result.Errors)
	}

	return NewDeferPayload(call.label, call.path, results, errs), nil
}

// handleNonNullableFieldError interprets a failed join.
//
// Non-null violations need special treatment: when one happens, all the sibling fields must be
// ignored in the result. So as soon as one of the field calls fails this way, the results from
// every field associated with this DeferredCall are discarded and the payload collapses to one
// that only captures the violation. Any other failure is re-raised behind exactly one
// CompletionError layer, whether or not the incoming failure already wore one.
func (call *DeferredCall) handleNonNullableFieldError(result interface{}, err error) (interface{}, error) {
	if err == nil {
		return result, nil
	}

	cause := future.CompletionCause(err)
	if nullErr, ok := cause.(*graphql.NonNullableFieldWasNullError); ok {
		return NewErrorOnlyDeferPayload(call.label, call.path, nullErr.GraphQLError()), nil
	}
	return nil, future.NewCompletionError(cause)
}
