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
	"log"
	"runtime"
	"strings"
	"unsafe"

	"github.com/json-iterator/go"
)

// Op describes an operation, usually as the package and method, such as "incremental.Invoke".
type Op string

// ErrKind defines the kind of error this is.
type ErrKind uint8

// Enumeration of Kind
const (
	ErrKindOther     ErrKind = iota // Unclassified error. This value is not printed in the error message.
	ErrKindExecution                // Represent an error occurred when executing a query.
	ErrKindInternal                 // Internal error
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindOther:
		return "other error"
	case ErrKindExecution:
		return "execution error"
	case ErrKindInternal:
		return "internal error"
	}
	return "unknown error kind"
}

// ErrorExtensions provides an additional entry to a GraphQL error with key "extensions". It is
// useful for attaching vendor-specific error data (such as error code).
//
// Reference: https://github.com/facebook/graphql/pull/407
type ErrorExtensions map[string]interface{}

// ErrorLocation contains a line number and a column number to point out the beginning of an
// associated syntax element.
type ErrorLocation struct {
	// Both line and column are positive numbers starting from 1
	Line   uint
	Column uint
}

// ErrorWithLocations indicates an error that contains locations. If "locations" is not given in
// the arguments to NewError, NewError will retrieve one from the underlying error (if provided)
// that implements this interface.
type ErrorWithLocations interface {
	Locations() []ErrorLocation
}

// ErrorWithPath indicates an error that is associated with a response field. Like
// ErrorWithLocations, NewError consults it when no path was given in the arguments.
type ErrorWithPath interface {
	Path() ResponsePath
}

// ErrorWithExtensions indicates an error that carries extensions.
type ErrorWithExtensions interface {
	Extensions() ErrorExtensions
}

// Error contains the fields defined for an error in the GraphQL response format [0]. Furthermore,
// you can build an Error by wrapping an error value. Information (if unspecified in the arguments
// to NewError) in the error value will be propagated to the newly created Error.
//
// It also includes Op and ErrKind which will show when printing the error value. This makes it
// helpful for programmers.
//
// [0]: https://graphql.github.io/graphql-spec/June2018/#sec-Errors
type Error struct {
	// Message describes the error for debugging purposes. It is required by a GraphQL Error as per
	// spec..
	Message string

	// Locations is an array of { line, column } locations within the source GraphQL document which
	// correspond to this error.
	Locations []ErrorLocation

	// Path describes the path of the response field which experienced the error.
	Path ResponsePath

	// Extensions contains data to be added to in the error response
	Extensions ErrorExtensions

	// The underlying error that triggered this one
	Err error

	// Op is the operation being performed, usually the name of the method being invoked.
	Op Op

	// Kind is the class of error
	Kind ErrKind
}

// Error implements Go error interface.
var _ error = (*Error)(nil)

// NewError builds an error value from arguments. Inspired by the design of upspin.io/errors [0].
//
// [0]: https://commandcenter.blogspot.com/2017/12/error-handling-in-upspin.html.
func NewError(message string, args ...interface{}) error {
	e := &Error{
		Message: message,
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case ErrorLocation:
			e.Locations = []ErrorLocation{arg}
		case []ErrorLocation:
			e.Locations = arg

		case ResponsePath:
			e.Path = arg

		case ErrorExtensions:
			e.Extensions = arg

		case error:
			e.Err = arg

		case Op:
			e.Op = arg

		case ErrKind:
			e.Kind = arg

		default:
			_, file, line, _ := runtime.Caller(1)
			log.Printf("NewError: bad call from %s:%d: %v", file, line, args)
			return fmt.Errorf("unknown type %T, value %v in error call", arg, arg)
		}
	}

	// Propagate locations, path or extensions from underlying error when one is not provided in
	// argument.
	prev := e.Err
	if prev != nil {
		if len(e.Locations) == 0 {
			switch errWithLocations := prev.(type) {
			case ErrorWithLocations:
				e.Locations = errWithLocations.Locations()
			case *Error:
				if len(errWithLocations.Locations) > 0 {
					e.Locations = make([]ErrorLocation, len(errWithLocations.Locations))
					copy(e.Locations, errWithLocations.Locations)
				}
			}
		}

		if e.Path.Empty() {
			switch errWithPath := prev.(type) {
			case ErrorWithPath:
				e.Path = errWithPath.Path()
			case *Error:
				if !errWithPath.Path.Empty() {
					e.Path = errWithPath.Path.Clone()
				}
			}
		}

		if e.Extensions == nil {
			switch errWithExtensions := prev.(type) {
			case ErrorWithExtensions:
				e.Extensions = errWithExtensions.Extensions()
			case *Error:
				e.Extensions = errWithExtensions.Extensions
			}
		}

		// Pull kind from underlying error.
		if e.Kind == ErrKindOther {
			if prev, ok := prev.(*Error); ok {
				e.Kind = prev.Kind
			}
		}
	}

	return e
}

// WrapError is a convenient wrapper to build an Error value from an underlying error with a
// message.
func WrapError(err error, message string) error {
	return NewError(message, err)
}

// WrapErrorf is similar to WrapError but with the format specifier.
func WrapErrorf(err error, format string, args ...interface{}) error {
	return NewError(fmt.Sprintf(format, args...), err)
}

// Error implements Go's error interface.
func (e *Error) Error() string {
	var b strings.Builder

	// pad appends str to the buffer if the buffer already has some data.
	pad := func(str string) {
		if b.Len() == 0 {
			return
		}
		b.WriteString(str)
	}

	if len(e.Op) > 0 {
		b.WriteString(string(e.Op))
	}

	if len(e.Message) > 0 {
		pad(": ")
		b.WriteString(e.Message)
	}

	if !e.Path.Empty() {
		if b.Len() == 0 {
			b.WriteString("For ")
		} else {
			b.WriteString(" for ")
		}
		b.WriteString("response field in the path ")
		b.WriteString(e.Path.String())
	}

	if e.Kind != ErrKindOther {
		pad(": ")
		b.WriteString(e.Kind.String())
	}

	if e.Err != nil {
		pad(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// MarshalJSON implements json.Marshaler.
func (e *Error) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(e)
}

// errorMarshaller implements jsoniter.ValEncoder to encode Error to JSON.
type errorMarshaller struct{}

var _ jsoniter.ValEncoder = errorMarshaller{}

// IsEmpty implements jsoniter.ValEncoder.
func (errorMarshaller) IsEmpty(ptr unsafe.Pointer) bool {
	return (*Error)(ptr) == nil
}

// Encode implements jsoniter.ValEncoder.
func (errorMarshaller) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	err := (*Error)(ptr)
	stream.WriteObjectStart()

	stream.WriteObjectField("message")
	stream.WriteString(err.Message)

	numLocations := len(err.Locations)
	if numLocations > 0 {
		stream.WriteMore()
		stream.WriteObjectField("locations")
		stream.WriteArrayStart()
		for i := range err.Locations {
			location := &err.Locations[i]
			stream.WriteObjectStart()
			stream.WriteObjectField("line")
			stream.WriteUint(location.Line)
			stream.WriteMore()
			stream.WriteObjectField("column")
			stream.WriteUint(location.Column)
			stream.WriteObjectEnd()
			if i != numLocations-1 {
				stream.WriteMore()
			}
		}
		stream.WriteArrayEnd()
	}

	if !err.Path.Empty() {
		stream.WriteMore()
		stream.WriteObjectField("path")
		stream.WriteVal(&err.Path)
	}

	numExtensions := len(err.Extensions)
	if numExtensions > 0 {
		stream.WriteMore()
		stream.WriteObjectField("extensions")
		stream.WriteObjectStart()
		for k, v := range err.Extensions {
			stream.WriteObjectField(k)
			stream.WriteVal(v)
			numExtensions--
			if numExtensions > 0 {
				stream.WriteMore()
			}
		}
		stream.WriteObjectEnd()
	}

	stream.WriteObjectEnd()
}

// Errors wraps a list of Error. Intentionally wrapped in a struct instead of a simple alias to
// []*Error (i.e., "type Errors []*Error") to enforce error checks to use errs.HaveOccurred()
// instead of (errs != nil) (errs may be an empty array which should be treat as no error).
type Errors struct {
	Errors []*Error
}

// ErrorsOf is an utility function to constructs an Errors value. It takes arguments in one of the
// form otherwise it panics:
//
// 1. An array of *graphql.Error's; or
// 2. Arguments that can be taken by NewError to construct an Error value; That is, a string
//    specified the error message followed by other error context (e.g., path).
// 3. An array of *graphql.Error's followed by arguments that can be taken by NewError.
func ErrorsOf(args ...interface{}) Errors {
	var errs Errors
	for i, arg := range args {
		switch arg := arg.(type) {
		case error:
			errs.Append(arg)

		case string:
			errs.Emplace(arg, args[(i+1):]...)
			return errs

		default:
			panic("ErrorsOf: bad call")
		}
	}
	return errs
}

// NoErrors constructs an empty Errors.
func NoErrors() Errors {
	return Errors{}
}

// Emplace constructs an Error from arguments and append to the errs. It updates the list in the
// receiving Errors object (note about the pointer receiver). Note that it would panic if
// unsupported argument is supplied in args.
func (errs *Errors) Emplace(message string, args ...interface{}) {
	errs.Append(NewError(message, args...))
}

// Append appends list of Error's to the end of the Errors. Note that the given error must be an
// graphql.Error otherwise it panics. The update is occurred in-place to the given Errors.
func (errs *Errors) Append(e ...error) {
	for _, err := range e {
		errs.Errors = append(errs.Errors, err.(*Error))
	}
}

// AppendErrors takes a list of Errors's and pulls every Error in each Errors to append to "errs".
// The update is occurred in-place to the given Errors.
func (errs *Errors) AppendErrors(e ...Errors) {
	for _, err := range e {
		errs.Errors = append(errs.Errors, err.Errors...)
	}
}

// HaveOccurred returns true if some errors exist. Use this instead of relying on "errs != nil" for
// checking existence of error because errs may be an empty array.
func (errs Errors) HaveOccurred() bool {
	return len(errs.Errors) > 0
}

// MarshalJSON implements json.Marshaler.
func (errs Errors) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(&errs)
}

// errorsMarshaller implements jsoniter.ValEncoder to encode Errors to a JSON array.
type errorsMarshaller struct{}

var _ jsoniter.ValEncoder = errorsMarshaller{}

// IsEmpty implements jsoniter.ValEncoder.
func (errorsMarshaller) IsEmpty(ptr unsafe.Pointer) bool {
	return len((*Errors)(ptr).Errors) == 0
}

// Encode implements jsoniter.ValEncoder.
func (errorsMarshaller) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	errs := (*Errors)(ptr)
	numErrors := len(errs.Errors)
	stream.WriteArrayStart()
	for i, err := range errs.Errors {
		stream.WriteVal(err)
		if i != numErrors-1 {
			stream.WriteMore()
		}
	}
	stream.WriteArrayEnd()
}

func init() {
	jsoniter.RegisterTypeEncoder("graphql.ResponsePath", responsePathMarshaller{})
	jsoniter.RegisterTypeEncoder("graphql.Error", errorMarshaller{})
	jsoniter.RegisterTypeEncoder("graphql.Errors", errorsMarshaller{})
}
