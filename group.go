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

	"buf.build/go/sbe/internal/dbg"
	"buf.build/go/sbe/internal/debug"
)

// GroupField describes a repeating group as declared in its schema.
type GroupField struct {
	Name string
	ID   uint16
	// Position of this group among the groups and var-data fields of its
	// parent, in declaration order.
	Ordinal     int
	BlockLength int // Declared block length of each element.
	Dimension   Dimension
	Since       uint16
	// Number of groups and var-data fields inside each element.
	Trailing int
}

// Group is a flyweight over a repeating group, and is its own cursor: at most
// one element is visible at a time, selected with [Group.Next].
//
// Iteration is forward-only. The only way to read a group again is to
// re-wrap the message that contains it.
type Group struct {
	desc   *GroupField
	cursor *Cursor
	pass   uint32

	order         ByteOrder
	actingVersion uint16
	blockLength   int
	count         int
	index         int
	offset        int

	scope scope // For the current element.
}

// WrapForDecode wraps g over the group described by gf, whose dimension
// header is at parent's limit. The limit moves past the header.
//
// A group that is newer than the parent's acting version was never written;
// it is wrapped as an empty group and the limit does not move.
func (g *Group) WrapForDecode(parent Block, gf *GroupField) error {
	cursor, scope, err := parent.state()
	if err != nil {
		return withField(err, gf.Name)
	}
	if err := scope.check(cursor, gf.Ordinal, gf.Name); err != nil {
		return err
	}

	g.init(parent, gf, cursor)
	if g.actingVersion < gf.Since {
		g.blockLength = gf.BlockLength
		scope.commit()
		scope.open = g
		return nil
	}

	start, err := cursor.advance(gf.Dimension.Size())
	if err != nil {
		return withField(err, gf.Name)
	}
	g.blockLength, g.count, err = gf.Dimension.read(cursor.buf, start, g.order)
	if err != nil {
		return withField(err, gf.Name)
	}
	scope.commit()
	scope.open = g

	debug.Log([]any{"%s", gf.Name}, "group", "%v", g)
	return nil
}

// WrapForEncode wraps g over a new group described by gf with count elements,
// writing its dimension header at parent's limit. The limit moves past the
// header.
func (g *Group) WrapForEncode(parent Block, gf *GroupField, count int) error {
	cursor, scope, err := parent.state()
	if err != nil {
		return withField(err, gf.Name)
	}
	if count < 0 || count > gf.Dimension.MaxCount() {
		return &Error{
			code: errCodeCountOverflow, offset: cursor.limit, field: gf.Name,
			detail: fmt.Sprintf("%d not in [0, %d]", count, gf.Dimension.MaxCount()),
		}
	}
	if err := scope.check(cursor, gf.Ordinal, gf.Name); err != nil {
		return err
	}

	g.init(parent, gf, cursor)
	start, err := cursor.advance(gf.Dimension.Size())
	if err != nil {
		return withField(err, gf.Name)
	}
	if err := gf.Dimension.write(cursor.buf, start, g.order, gf.BlockLength, count); err != nil {
		return withField(err, gf.Name)
	}
	g.blockLength = gf.BlockLength
	g.count = count
	scope.commit()
	scope.open = g

	debug.Log([]any{"%s", gf.Name}, "group", "%v", g)
	return nil
}

func (g *Group) init(parent Block, gf *GroupField, cursor *Cursor) {
	*g = Group{
		desc:          gf,
		cursor:        cursor,
		pass:          cursor.pass,
		order:         parent.Order(),
		actingVersion: parent.ActingVersion(),
		index:         -1,
		offset:        -1,
	}
}

// Next advances to the next element, claiming its block at the limit.
//
// Fails with [ErrGroupExhausted] if there are no elements left, and with
// [ErrAccessOrder] if the current element has groups or var-data fields that
// were never visited.
func (g *Group) Next() error {
	if err := g.live(); err != nil {
		return err
	}
	if g.index+1 >= g.count {
		return &Error{
			code: errCodeGroupExhausted, offset: g.cursor.limit, field: g.desc.Name,
			detail: fmt.Sprintf("count is %d", g.count),
		}
	}
	if g.index >= 0 && !g.scope.done() {
		return &Error{
			code: errCodeAccessOrder, offset: g.cursor.limit, field: g.desc.Name,
			detail: fmt.Sprintf("element %d has unread trailing fields", g.index),
		}
	}

	start, err := g.cursor.advance(g.blockLength)
	if err != nil {
		return withField(err, g.desc.Name)
	}
	g.offset = start
	g.index++
	g.scope.reset(g.desc.Trailing)
	return nil
}

// HasNext returns whether [Group.Next] would succeed in moving to another
// element.
func (g *Group) HasNext() bool { return g.index+1 < g.count }

// Count returns the number of elements in the group.
func (g *Group) Count() int { return g.count }

// Index returns the index of the current element, or -1 before the first
// call to [Group.Next].
func (g *Group) Index() int { return g.index }

// Desc returns the descriptor g was wrapped with.
func (g *Group) Desc() *GroupField { return g.desc }

// Buffer implements [Flyweight].
func (g *Group) Buffer() *Buffer {
	if g.cursor == nil {
		return nil
	}
	return g.cursor.buf
}

// Offset implements [Flyweight]. It is -1 until the first call to
// [Group.Next].
func (g *Group) Offset() int {
	if g.cursor == nil || g.pass != g.cursor.pass {
		return -1
	}
	return g.offset
}

// Limit returns the limit of the enclosing message.
func (g *Group) Limit() int {
	if g.cursor == nil {
		return 0
	}
	return g.cursor.limit
}

// ActingBlockLength implements [Flyweight]. It is the block length recorded
// in the dimension header, which may differ from the declared one.
func (g *Group) ActingBlockLength() int { return g.blockLength }

// ActingVersion implements [Flyweight].
func (g *Group) ActingVersion() uint16 { return g.actingVersion }

// Order implements [Flyweight].
func (g *Group) Order() ByteOrder { return g.order }

// Format implements [fmt.Formatter].
func (g *Group) Format(s fmt.State, verb rune) {
	name := "<unwrapped>"
	if g.desc != nil {
		name = g.desc.Name
	}
	dbg.Dict(name, "count", g.count, "index", g.index, "block", g.blockLength, "offset", g.offset).
		Format(s, verb)
}

// live checks that g is wrapped and belongs to the cursor's current pass.
func (g *Group) live() error {
	if g.cursor == nil || g.desc == nil {
		return &Error{code: errCodeNotWrapped, offset: -1}
	}
	if g.pass != g.cursor.pass {
		return &Error{
			code: errCodeNotWrapped, offset: -1, field: g.desc.Name,
			detail: "message was re-wrapped",
		}
	}
	return nil
}

// remaining returns whether any part of g is yet to be visited.
func (g *Group) remaining() bool {
	return g.index+1 < g.count || (g.index >= 0 && !g.scope.done())
}

func (g *Group) state() (*Cursor, *scope, error) {
	if err := g.live(); err != nil {
		return nil, nil, err
	}
	if g.index < 0 {
		return nil, nil, &Error{
			code: errCodeNotWrapped, offset: g.cursor.limit, field: g.desc.Name,
			detail: "no current element",
		}
	}
	return g.cursor, &g.scope, nil
}
