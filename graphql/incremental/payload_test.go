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
	"github.com/botobag/incremental/graphql"
	"github.com/botobag/incremental/graphql/incremental"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("DeferPayload", func() {
	newPath := func(keys ...interface{}) graphql.ResponsePath {
		var path graphql.ResponsePath
		for _, key := range keys {
			switch key := key.(type) {
			case string:
				path.AppendFieldName(key)
			case int:
				path.AppendIndex(key)
			}
		}
		return path
	}

	It("serializes the data shape with errors first and fields in declaration order", func() {
		results := []incremental.FieldResult{
			{FieldName: "text", Result: graphql.ExecutionResult{Data: "hi"}},
			{FieldName: "summary", Result: graphql.ExecutionResult{Data: "ok"}},
		}
		payload := incremental.NewDeferPayload(
			"defer-post", newPath("post", 1), results, graphql.ErrorsOf("oops"))

		s, err := payload.MarshalJSON()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(s)).Should(Equal(
			`{"errors":[{"message":"oops"}],` +
				`"data":{"text":"hi","summary":"ok"},` +
				`"label":"defer-post","path":["post",1]}`))
	})

	It("omits an absent label", func() {
		payload := incremental.NewDeferPayload("", newPath("post"), nil, graphql.NoErrors())
		s, err := payload.MarshalJSON()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(s)).Should(Equal(`{"data":{},"path":["post"]}`))
	})

	It("serializes a nil field value as null", func() {
		results := []incremental.FieldResult{
			{FieldName: "text", Result: graphql.ExecutionResult{}},
		}
		payload := incremental.NewDeferPayload("", newPath("post"), results, graphql.NoErrors())
		s, err := payload.MarshalJSON()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(s)).Should(Equal(`{"data":{"text":null},"path":["post"]}`))
	})

	It("serializes the error-only shape without a data entry", func() {
		payload := incremental.NewErrorOnlyDeferPayload("defer-post", newPath("post"),
			(&graphql.NonNullableFieldWasNullError{FieldName: "Post.text"}).GraphQLError())

		Expect(payload.HasData()).Should(BeFalse())
		s, err := payload.MarshalJSON()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(s).Should(MatchJSON(
			`{"errors":[{"message":"Cannot return null for non-nullable field Post.text."}],` +
				`"label":"defer-post","path":["post"]}`))
		Expect(string(s)).ShouldNot(ContainSubstring(`"data"`))
	})

	It("reports missing fields from FieldValue", func() {
		payload := incremental.NewDeferPayload("", newPath("post"), nil, graphql.NoErrors())
		_, ok := payload.FieldValue("missing")
		Expect(ok).Should(BeFalse())
	})
})
