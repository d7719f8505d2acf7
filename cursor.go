// Copyright 2025 Buf Technologies, Inc.
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
	"fmt"

	"buf.build/go/sbe/internal/debug"
)

// Cursor is the limit shared by a message and every group and var-data field
// nested in it, for the duration of one encode or decode pass.
//
// The limit is the position of the next byte that has not been claimed by
// the fixed block, a group header, a group element or a var-data field.
// Groups and var-data fields never hold their own copy of it.
type Cursor struct {
	buf   *Buffer
	limit int
	// Bumped on every wrap, so that groups from a previous pass can be
	// detected.
	pass uint32
}

// Buffer returns the buffer this cursor moves over.
func (c *Cursor) Buffer() *Buffer { return c.buf }

// Limit returns the current limit.
func (c *Cursor) Limit() int { return c.limit }

// SetLimit moves the limit, checking it against the buffer's capacity first.
//
// A buffer configured with a [GrowFunc] may grow as a result.
func (c *Cursor) SetLimit(limit int) error {
	if c.buf == nil {
		return &Error{code: errCodeNotWrapped, offset: limit}
	}
	if err := c.buf.CheckLimit(limit); err != nil {
		return err
	}
	c.limit = limit
	return nil
}

// advance claims n bytes at the limit and returns where they start.
func (c *Cursor) advance(n int) (int, error) {
	debug.Assert(n >= 0, "negative advance: %d", n)
	start := c.limit
	return start, c.SetLimit(start + n)
}

// scope tracks which trailing element (group or var-data field) of a message
// or group element may be touched next.
//
// Trailing elements live wherever the limit happens to be, so touching them
// out of declaration order, or twice, reads or writes the wrong bytes.
type scope struct {
	next     int    // Ordinal of the next trailing element.
	trailing int    // Number of trailing elements declared.
	open     *Group // The group most recently wrapped in this scope.
}

func (s *scope) reset(trailing int) {
	*s = scope{trailing: trailing}
}

// check verifies that ordinal is the next element to be touched, without
// consuming it.
func (s *scope) check(c *Cursor, ordinal int, name string) error {
	if s.open != nil && s.open.remaining() {
		return &Error{
			code: errCodeAccessOrder, offset: c.limit, field: name,
			detail: fmt.Sprintf("group %s has unread elements", s.open.desc.Name),
		}
	}

	switch {
	case ordinal < s.next:
		return &Error{code: errCodeAlreadyConsumed, offset: c.limit, field: name}
	case ordinal > s.next:
		return &Error{
			code: errCodeAccessOrder, offset: c.limit, field: name,
			detail: fmt.Sprintf("expected trailing field #%d, got #%d", s.next, ordinal),
		}
	}
	return nil
}

// commit consumes the element that the last successful check allowed.
// Callers commit only once the element has been read or written, so a failed
// access leaves the scope where it was.
func (s *scope) commit() {
	s.open = nil
	s.next++
}

// done returns whether every trailing element in this scope has been touched.
func (s *scope) done() bool {
	return s.next >= s.trailing && (s.open == nil || !s.open.remaining())
}
