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
	"unsafe"

	"github.com/botobag/incremental/graphql"

	"github.com/json-iterator/go"
)

// payloadField is one entry in a payload's data mapping.
type payloadField struct {
	name  string
	value interface{}
}

// DeferPayload is the immutable value delivered for one deferred group. It takes exactly one of
// two shapes: merged data plus zero or more reportable errors, or — when the group collapsed on a
// non-null violation — exactly one error and no data at all. It is never a hybrid of partial data
// and a collapse error.
type DeferPayload struct {
	label string
	path  graphql.ResponsePath

	// data preserves field declaration order, which a Go map cannot.
	data    []payloadField
	hasData bool

	errs graphql.Errors
}

// NewDeferPayload constructs the data-carrying payload shape from field results in declaration
// order.
func NewDeferPayload(
	label string,
	path graphql.ResponsePath,
	results []FieldResult,
	errs graphql.Errors) *DeferPayload {
	data := make([]payloadField, len(results))
	for i, result := range results {
		data[i] = payloadField{
			name:  result.FieldName,
			value: result.Result.Data,
		}
	}
	return &DeferPayload{
		label:   label,
		path:    path,
		data:    data,
		hasData: true,
		errs:    errs,
	}
}

// NewErrorOnlyDeferPayload constructs the collapse shape: no data, exactly one error.
func NewErrorOnlyDeferPayload(label string, path graphql.ResponsePath, err *graphql.Error) *DeferPayload {
	return &DeferPayload{
		label: label,
		path:  path,
		errs:  graphql.Errors{Errors: []*graphql.Error{err}},
	}
}

// Label returns the label associated with the deferred group; empty when none was given.
func (payload *DeferPayload) Label() string {
	return payload.label
}

// Path returns the location of the deferred group within the overall response.
func (payload *DeferPayload) Path() graphql.ResponsePath {
	return payload.path
}

// HasData distinguishes the two payload shapes: true for merged data (possibly empty), false for
// the error-only collapse.
func (payload *DeferPayload) HasData() bool {
	return payload.hasData
}

// FieldNames returns the names in the data mapping in field declaration order.
func (payload *DeferPayload) FieldNames() []string {
	names := make([]string, len(payload.data))
	for i, field := range payload.data {
		names[i] = field.name
	}
	return names
}

// FieldValue looks up the value merged for the named field.
func (payload *DeferPayload) FieldValue(name string) (interface{}, bool) {
	for _, field := range payload.data {
		if field.name == name {
			return field.value, true
		}
	}
	return nil, false
}

// Errors returns the payload's error list.
func (payload *DeferPayload) Errors() graphql.Errors {
	return payload.errs
}

// MarshalJSON implements json.Marshaler.
func (payload *DeferPayload) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(payload)
}

// deferPayloadMarshaller implements jsoniter.ValEncoder to encode DeferPayload to JSON.
type deferPayloadMarshaller struct{}

var _ jsoniter.ValEncoder = deferPayloadMarshaller{}

// IsEmpty implements jsoniter.ValEncoder.
func (deferPayloadMarshaller) IsEmpty(ptr unsafe.Pointer) bool {
	return (*DeferPayload)(ptr) == nil
}

// Encode implements jsoniter.ValEncoder. Errors are written before data as suggested for response
// formats [0]; the label is omitted when absent and the data object preserves field declaration
// order.
//
// [0]: See the note for https://graphql.github.io/graphql-spec/June2018/#sec-Response-Format.
func (deferPayloadMarshaller) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	payload := (*DeferPayload)(ptr)
	stream.WriteObjectStart()

	first := true
	more := func() {
		if !first {
			stream.WriteMore()
		}
		first = false
	}

	if payload.errs.HaveOccurred() {
		more()
		stream.WriteObjectField("errors")
		stream.WriteVal(&payload.errs)
	}

	if payload.hasData {
		more()
		stream.WriteObjectField("data")
		stream.WriteObjectStart()
		for i, field := range payload.data {
			stream.WriteObjectField(field.name)
			stream.WriteVal(field.value)
			if i != len(payload.data)-1 {
				stream.WriteMore()
			}
		}
		stream.WriteObjectEnd()
	}

	if len(payload.label) > 0 {
		more()
		stream.WriteObjectField("label")
		stream.WriteString(payload.label)
	}

	if !payload.path.Empty() {
		more()
		stream.WriteObjectField("path")
		stream.WriteVal(&payload.path)
	}

	stream.WriteObjectEnd()
}

func init() {
	jsoniter.RegisterTypeEncoder("incremental.DeferPayload", deferPayloadMarshaller{})
}
