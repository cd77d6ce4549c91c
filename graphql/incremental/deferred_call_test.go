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
	"errors"

	"github.com/botobag/incremental/concurrent"
	"github.com/botobag/incremental/concurrent/future"
	"github.com/botobag/incremental/graphql"
	"github.com/botobag/incremental/graphql/incremental"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("DeferredCall", func() {
	var executor *concurrent.PoolExecutor

	newPostPath := func() graphql.ResponsePath {
		var path graphql.ResponsePath
		path.AppendFieldName("post")
		return path
	}

	invoke := func(call *incremental.DeferredCall) *incremental.DeferPayload {
		result, err := future.BlockOn(call.Invoke())
		Expect(err).ShouldNot(HaveOccurred())
		return result.(*incremental.DeferPayload)
	}

	BeforeEach(func() {
		var err error
		executor, err = concurrent.NewPoolExecutor(concurrent.PoolExecutorConfig{NumWorkers: 4})
		Expect(err).ShouldNot(HaveOccurred())
	})

	AfterEach(func() {
		terminated, err := executor.Shutdown()
		Expect(err).ShouldNot(HaveOccurred())
		Eventually(terminated).Should(Receive())
	})

	It("resolves a call without fields to the context errors and an empty data mapping", func() {
		ctx := incremental.NewDeferredCallContext()
		ctx.Emplace("raised out of band")

		payload := invoke(incremental.NewDeferredCall("empty", newPostPath(), nil, ctx))
		Expect(payload.HasData()).Should(BeTrue())
		Expect(payload.FieldNames()).Should(BeEmpty())
		Expect(payload.Errors().Errors).Should(HaveLen(1))
		Expect(payload.Errors().Errors[0].Message).Should(Equal("raised out of band"))
	})

	It("preserves field declaration order regardless of completion order", func() {
		// "text" is declared first but deliberately completes after "summary".
		summaryDone := make(chan struct{})
		calls := []incremental.FieldCall{
			incremental.NewFieldCall(executor, "text", func() (graphql.ExecutionResult, error) {
				<-summaryDone
				return graphql.ExecutionResult{Data: "hi"}, nil
			}),
			incremental.NewFieldCall(executor, "summary", func() (graphql.ExecutionResult, error) {
				defer close(summaryDone)
				return graphql.ExecutionResult{Data: "ok"}, nil
			}),
		}

		call := incremental.NewDeferredCall(
			"defer-post", newPostPath(), calls, incremental.NewDeferredCallContext())
		payload := invoke(call)

		Expect(payload.HasData()).Should(BeTrue())
		Expect(payload.FieldNames()).Should(Equal([]string{"text", "summary"}))
		text, ok := payload.FieldValue("text")
		Expect(ok).Should(BeTrue())
		Expect(text).Should(Equal("hi"))
		summary, ok := payload.FieldValue("summary")
		Expect(ok).Should(BeTrue())
		Expect(summary).Should(Equal("ok"))
		Expect(payload.Errors().HaveOccurred()).Should(BeFalse())

		s, err := payload.MarshalJSON()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(s)).Should(
			Equal(`{"data":{"text":"hi","summary":"ok"},"label":"defer-post","path":["post"]}`))
	})

	It("merges context errors before per-field errors in declaration order", func() {
		ctx := incremental.NewDeferredCallContext()
		ctx.Emplace("context error")

		bDone := make(chan struct{})
		calls := []incremental.FieldCall{
			incremental.NewFieldCall(executor, "a", func() (graphql.ExecutionResult, error) {
				// Complete after "b" to show the merge order ignores completion order.
				<-bDone
				return graphql.ExecutionResult{Errors: graphql.ErrorsOf("a error")}, nil
			}),
			incremental.NewFieldCall(executor, "b", func() (graphql.ExecutionResult, error) {
				defer close(bDone)
				return graphql.ExecutionResult{Errors: graphql.ErrorsOf("b error")}, nil
			}),
		}

		payload := invoke(incremental.NewDeferredCall("", newPostPath(), calls, ctx))
		errs := payload.Errors().Errors
		Expect(errs).Should(HaveLen(3))
		Expect(errs[0].Message).Should(Equal("context error"))
		Expect(errs[1].Message).Should(Equal("a error"))
		Expect(errs[2].Message).Should(Equal("b error"))
	})

	It("collapses the whole group when any field hits a non-null violation", func() {
		var fieldPath graphql.ResponsePath
		fieldPath.AppendFieldName("post")
		fieldPath.AppendFieldName("text")

		calls := []incremental.FieldCall{
			incremental.NewFieldCall(executor, "a", func() (graphql.ExecutionResult, error) {
				// This sibling fully succeeds; its data must still be discarded.
				return graphql.ExecutionResult{Data: "succeeded"}, nil
			}),
			incremental.NewFieldCall(executor, "b", func() (graphql.ExecutionResult, error) {
				return graphql.ExecutionResult{}, &graphql.NonNullableFieldWasNullError{
					FieldName: "Post.text",
					FieldPath: fieldPath,
				}
			}),
		}

		call := incremental.NewDeferredCall("defer-post", newPostPath(), calls,
			incremental.NewDeferredCallContext())
		payload := invoke(call)

		Expect(payload.HasData()).Should(BeFalse())
		Expect(payload.Label()).Should(Equal("defer-post"))
		Expect(payload.Path().String()).Should(Equal("post"))
		Expect(payload.Errors().Errors).Should(HaveLen(1))
		Expect(payload.Errors().Errors[0].Message).Should(
			Equal("Cannot return null for non-nullable field Post.text."))

		s, err := payload.MarshalJSON()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(s)).ShouldNot(ContainSubstring(`"data"`))
	})

	It("recognizes a non-null violation already wearing the async envelope", func() {
		nullErr := &graphql.NonNullableFieldWasNullError{FieldName: "Post.text"}
		calls := []incremental.FieldCall{
			func() future.Future {
				return future.Err(future.NewCompletionError(nullErr))
			},
		}

		call := incremental.NewDeferredCall("", newPostPath(), calls,
			incremental.NewDeferredCallContext())
		payload := invoke(call)
		Expect(payload.HasData()).Should(BeFalse())
		Expect(payload.Errors().Errors).Should(HaveLen(1))
	})

	It("re-raises an unrelated failure behind exactly one envelope layer", func() {
		boom := errors.New("boom")
		calls := []incremental.FieldCall{
			incremental.NewFieldCall(executor, "a", func() (graphql.ExecutionResult, error) {
				return graphql.ExecutionResult{Data: "fine"}, nil
			}),
			incremental.NewFieldCall(executor, "b", func() (graphql.ExecutionResult, error) {
				return graphql.ExecutionResult{}, boom
			}),
		}

		call := incremental.NewDeferredCall("", newPostPath(), calls,
			incremental.NewDeferredCallContext())
		_, err := future.BlockOn(call.Invoke())
		Expect(err).Should(HaveOccurred())

		completionErr, ok := err.(*future.CompletionError)
		Expect(ok).Should(BeTrue())
		Expect(completionErr.Cause).Should(MatchError(boom))
	})

	It("keeps the envelope one layer thick even when the failure was pre-wrapped", func() {
		boom := errors.New("boom")
		calls := []incremental.FieldCall{
			func() future.Future {
				return future.Err(future.NewCompletionError(boom))
			},
		}

		call := incremental.NewDeferredCall("", newPostPath(), calls,
			incremental.NewDeferredCallContext())
		_, err := future.BlockOn(call.Invoke())

		completionErr, ok := err.(*future.CompletionError)
		Expect(ok).Should(BeTrue())
		Expect(completionErr.Cause).Should(MatchError(boom))

		_, doubleWrapped := completionErr.Cause.(*future.CompletionError)
		Expect(doubleWrapped).Should(BeFalse())
	})
})
