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

	"github.com/botobag/incremental/graphql"
)

// DeferredCallContext collects the errors raised out-of-band while the fields of one deferred
// group are being resolved. Field machinery may append from concurrent field executions; the
// owning DeferredCall reads the accumulated list exactly once, after every field has settled
// (Join's all-inputs-settled guarantee is the read barrier).
type DeferredCallContext struct {
	// mutex guards errs against concurrent appends.
	mutex sync.Mutex
	errs  graphql.Errors
}

// NewDeferredCallContext creates an empty context owned by one deferred call.
func NewDeferredCallContext() *DeferredCallContext {
	return &DeferredCallContext{}
}

// AppendError records errors raised during field resolution, in call order.
func (ctx *DeferredCallContext) AppendError(e ...error) {
	ctx.mutex.Lock()
	ctx.errs.Append(e...)
	ctx.mutex.Unlock()
}

// Emplace constructs an error from arguments (see graphql.NewError) and records it.
func (ctx *DeferredCallContext) Emplace(message string, args ...interface{}) {
	ctx.mutex.Lock()
	ctx.errs.Emplace(message, args...)
	ctx.mutex.Unlock()
}

// Errors returns a snapshot of the errors recorded so far, in append order.
func (ctx *DeferredCallContext) Errors() graphql.Errors {
	ctx.mutex.Lock()
	defer ctx.mutex.Unlock()

	if !ctx.errs.HaveOccurred() {
		return graphql.NoErrors()
	}
	errs := make([]*graphql.Error, len(ctx.errs.Errors))
	copy(errs, ctx.errs.Errors)
	return graphql.Errors{Errors: errs}
}
