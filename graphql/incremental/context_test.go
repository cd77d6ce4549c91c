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

package incremental_test

import (
	"fmt"
	"sync"

	"github.com/botobag/incremental/graphql"
	"github.com/botobag/incremental/graphql/incremental"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("DeferredCallContext", func() {
	It("starts empty", func() {
		ctx := incremental.NewDeferredCallContext()
		Expect(ctx.Errors().HaveOccurred()).Should(BeFalse())
	})

	It("records errors appended from concurrent field executions", func() {
		ctx := incremental.NewDeferredCallContext()

		const numAppenders = 16
		var wg sync.WaitGroup
		wg.Add(numAppenders)
		for i := 0; i < numAppenders; i++ {
			go func(i int) {
				defer wg.Done()
				ctx.Emplace(fmt.Sprintf("error %d", i))
			}(i)
		}
		wg.Wait()

		Expect(ctx.Errors().Errors).Should(HaveLen(numAppenders))
	})

	It("returns a snapshot unaffected by later appends", func() {
		ctx := incremental.NewDeferredCallContext()
		ctx.AppendError(graphql.NewError("first"))

		snapshot := ctx.Errors()
		ctx.Emplace("second")

		Expect(snapshot.Errors).Should(HaveLen(1))
		Expect(ctx.Errors().Errors).Should(HaveLen(2))
	})
})
