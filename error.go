// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sbe

import (
	"errors"
	"fmt"
	"strings"
)

const (
	errCodeOk errCode = iota
	errCodeOutOfRange
	errCodeGroupExhausted
	errCodeNotWrapped
	errCodeAccessOrder
	errCodeAlreadyConsumed
	errCodeCountOverflow
	errCodeNotInBlock
	errCodeTemplateMismatch
	errCodeInvalidValue
)

type errCode int

var (
	// ErrOutOfRange is returned when an access would touch bytes outside of
	// a buffer's capacity.
	ErrOutOfRange = errors.New("access beyond buffer capacity")
	// ErrGroupExhausted is returned when advancing a group with no elements
	// left.
	ErrGroupExhausted = errors.New("group has no more elements")
	// ErrNotWrapped is returned when using a flyweight that was never wrapped
	// over a buffer.
	ErrNotWrapped = errors.New("flyweight is not wrapped")
	// ErrAccessOrder is returned when a group or var-data field is touched
	// before the elements that precede it.
	ErrAccessOrder = errors.New("trailing field accessed out of order")
	// ErrAlreadyConsumed is returned when a group or var-data field is touched
	// after the limit has already moved past it.
	ErrAlreadyConsumed = errors.New("trailing field already consumed")
	// ErrCountOverflow is returned when a group count or var-data length does
	// not fit in its header.
	ErrCountOverflow = errors.New("count does not fit in header")
	// ErrNotInBlock is raised when writing a field that lies outside of the
	// acting block.
	ErrNotInBlock = errors.New("field is not in acting block")
	// ErrTemplateMismatch is returned when a message header names a different
	// template or schema than the one being decoded.
	ErrTemplateMismatch = errors.New("header does not match template")
	// ErrInvalidValue is returned when a textual constant cannot be
	// represented by its primitive type.
	ErrInvalidValue = errors.New("invalid primitive value")
)

var errs = [...]error{
	errCodeOk:               nil,
	errCodeOutOfRange:       ErrOutOfRange,
	errCodeGroupExhausted:   ErrGroupExhausted,
	errCodeNotWrapped:       ErrNotWrapped,
	errCodeAccessOrder:      ErrAccessOrder,
	errCodeAlreadyConsumed:  ErrAlreadyConsumed,
	errCodeCountOverflow:    ErrCountOverflow,
	errCodeNotInBlock:       ErrNotInBlock,
	errCodeTemplateMismatch: ErrTemplateMismatch,
	errCodeInvalidValue:     ErrInvalidValue,
}

// Error is an error returned by a buffer or flyweight operation.
//
// Use [errors.Is] with one of the Err* sentinels to classify it.
type Error struct {
	code     errCode
	offset   int
	width    int
	capacity int
	field    string
	detail   string
}

// Offset returns the offset at which the error occurred, or -1 if the error
// is not tied to a position in a buffer.
func (e *Error) Offset() int {
	return e.offset
}

// Width returns the number of bytes the failing access needed, if any.
func (e *Error) Width() int {
	return e.width
}

// Capacity returns the capacity of the buffer at the time of the failure.
func (e *Error) Capacity() int {
	return e.capacity
}

// Field returns the name of the field being accessed, if known.
func (e *Error) Field() string {
	return e.field
}

// Unwrap implements error unwrapping viz [errors.Unwrap].
func (e *Error) Unwrap() error {
	return errs[e.code]
}

// Error implements [error].
func (e *Error) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "sbe: %v", e.Unwrap())
	if e.offset >= 0 || e.code == errCodeOutOfRange {
		fmt.Fprintf(&buf, " at offset %d/%#x", e.offset, e.offset)
	}
	if e.field != "" {
		fmt.Fprintf(&buf, " (%s)", e.field)
	}
	if e.code == errCodeOutOfRange {
		fmt.Fprintf(&buf, ": width=%d capacity=%d", e.width, e.capacity)
	}
	if e.detail != "" {
		fmt.Fprintf(&buf, ": %s", e.detail)
	}
	return buf.String()
}

// errRange constructs an out-of-range error.
func errRange(offset, width, capacity int) *Error {
	return &Error{code: errCodeOutOfRange, offset: offset, width: width, capacity: capacity}
}

// withField attaches a field name to err if it is an *Error without one.
//
// The error itself is returned unchanged otherwise.
func withField(err error, name string) error {
	var e *Error
	if errors.As(err, &e) && e.field == "" {
		e.field = name
	}
	return err
}
