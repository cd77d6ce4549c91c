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

import (
	"fmt"
	"strconv"
	"strings"
	"unsafe"

	"github.com/json-iterator/go"
)

// ResponsePath is an array of "key" where each key is either a string (indicating the field name)
// or an integer (indicating an index to list.) It identifies the location of a field within the
// overall response shape.
type ResponsePath struct {
	// Currently this could only be either int or string.
	keys []interface{}
}

// Empty returns true if the path doesn't contain any path keys.
func (path ResponsePath) Empty() bool {
	return len(path.keys) == 0
}

// AppendFieldName adds a field name to the end of current path.
func (path *ResponsePath) AppendFieldName(name string) {
	path.keys = append(path.keys, name)
}

// AppendIndex adds a list index to the end of current path.
func (path *ResponsePath) AppendIndex(index int) {
	path.keys = append(path.keys, index)
}

// Clone makes a deep copy of the path.
func (path ResponsePath) Clone() ResponsePath {
	if len(path.keys) == 0 {
		return ResponsePath{}
	}

	keys := make([]interface{}, len(path.keys))
	copy(keys, path.keys)
	return ResponsePath{keys}
}

// String serializes a ResponsePath to more readable format.
func (path ResponsePath) String() string {
	var b strings.Builder
	for _, key := range path.keys {
		switch key := key.(type) {
		case string:
			// Field name
			if b.Len() > 0 {
				b.WriteRune('.')
			}
			b.WriteString(key)

		case int:
			// Index
			b.WriteRune('[')
			b.WriteString(strconv.FormatInt(int64(key), 10))
			b.WriteRune(']')

			// Other types should never happen.
		}
	}
	return b.String()
}

// responsePathMarshaller implements jsoniter.ValEncoder to encode ResponsePath to JSON.
type responsePathMarshaller struct{}

var _ jsoniter.ValEncoder = responsePathMarshaller{}

// IsEmpty implements jsoniter.ValEncoder.
func (responsePathMarshaller) IsEmpty(ptr unsafe.Pointer) bool {
	return len((*ResponsePath)(ptr).keys) == 0
}

// Encode implements jsoniter.ValEncoder.
func (responsePathMarshaller) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	path := (*ResponsePath)(ptr)
	stream.WriteArrayStart()
	for i, key := range path.keys {
		switch key := key.(type) {
		case string:
			stream.WriteString(key)
		case int:
			stream.WriteInt(key)
		default:
			stream.Error = fmt.Errorf(`unsupported type "%T" of key in response path`, key)
			return
		}
		if i != len(path.keys)-1 {
			stream.WriteMore()
		}
	}
	stream.WriteArrayEnd()
}
