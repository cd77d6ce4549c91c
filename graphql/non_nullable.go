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

package graphql

import "fmt"

// NonNullableFieldWasNullError signals that a position declared non-nullable evaluated to null.
// Per "Errors and Non-Nullability" [0], such a value invalidates the entire enclosing selection,
// not just the violating field, so this error must stay distinguishable from ordinary field errors
// all the way up to whoever owns the enclosing result.
//
// [0]: https://graphql.github.io/graphql-spec/June2018/#sec-Errors-and-Non-Nullability
type NonNullableFieldWasNullError struct {
	// FieldName is the response name of the violating field, in "Type.field" notation when the
	// parent type is known.
	FieldName string

	// FieldPath locates the violating field within the response.
	FieldPath ResponsePath
}

var _ error = (*NonNullableFieldWasNullError)(nil)

// Error implements Go's error interface.
func (e *NonNullableFieldWasNullError) Error() string {
	return fmt.Sprintf("Cannot return null for non-nullable field %s.", e.FieldName)
}

// Path implements ErrorWithPath so NewError picks up the field path when wrapping.
func (e *NonNullableFieldWasNullError) Path() ResponsePath {
	return e.FieldPath
}

// GraphQLError converts the violation into the single reportable error carried by an error-only
// payload.
func (e *NonNullableFieldWasNullError) GraphQLError() *Error {
	return NewError(e.Error(), e.FieldPath.Clone(), ErrKindExecution).(*Error)
}
