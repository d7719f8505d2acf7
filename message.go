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
	"buf.build/go/sbe/internal/dbg"
	"buf.build/go/sbe/internal/debug"
	"buf.build/go/sbe/internal/xunsafe"
)

// Template describes a message as declared in its schema.
//
// Generated code declares one of these per message, as a package variable.
type Template struct {
	Name        string
	ID          uint16 // The template id.
	SchemaID    uint16
	Version     uint16 // The schema version this template was compiled at.
	BlockLength int
	// Number of groups and var-data fields at the top level of the message.
	Trailing int
	Order    ByteOrder
}

// Flyweight is a view of a fixed-size block in a buffer. It is implemented by
// [Message], [Group] and [Composite].
type Flyweight interface {
	Buffer() *Buffer
	// Offset is where the block starts, or -1 if the flyweight is not
	// positioned over a block.
	Offset() int
	// ActingBlockLength is the length of the block as written.
	ActingBlockLength() int
	// ActingVersion is the schema version the block was written with.
	ActingVersion() uint16
	Order() ByteOrder
}

// Block is a [Flyweight] that can be followed by groups and var-data fields.
// It is implemented by [Message] and [Group].
type Block interface {
	Flyweight
	Limit() int

	state() (*Cursor, *scope, error)
}

// Message is the flyweight over one message. Generated message types embed
// it.
//
// A Message must be wrapped with [Message.WrapForEncode] or
// [Message.WrapForDecode] before use. Once wrapped, it must not be copied,
// since groups wrapped through it refer back to its cursor.
type Message struct {
	_ xunsafe.NoCopy

	template          *Template
	cursor            Cursor
	offset            int
	actingBlockLength int
	actingVersion     uint16
	scope             scope
}

// WrapForEncode positions m at offset in buf to write a new message, using
// the template's declared block length and version.
//
// The fixed block is reserved immediately: the limit is set to the end of it.
func (m *Message) WrapForEncode(t *Template, buf *Buffer, offset int) error {
	return m.wrap(t, buf, offset, t.BlockLength, t.Version)
}

// WrapForDecode positions m at offset in buf to read a message that was
// written with the given block length and version, normally taken from the
// message header.
//
// Trusting the writer's block length rather than the template's is what
// lets readers skip fields they do not know about.
func (m *Message) WrapForDecode(t *Template, buf *Buffer, offset, actingBlockLength int, actingVersion uint16) error {
	return m.wrap(t, buf, offset, actingBlockLength, actingVersion)
}

// WrapAndApplyHeader writes a message header for t at offset, then wraps m
// for encoding immediately after it.
func (m *Message) WrapAndApplyHeader(t *Template, buf *Buffer, offset int) error {
	var h MessageHeader
	if err := h.Wrap(buf, offset, t.Order); err != nil {
		return err
	}
	if err := h.Apply(t); err != nil {
		return err
	}
	return m.WrapForEncode(t, buf, offset+HeaderSize)
}

// WrapFromHeader reads the message header at offset and wraps m for decoding
// the message that follows it, using the acting block length and version
// recorded in the header.
//
// Fails with [ErrTemplateMismatch] if the header is for another template or
// schema.
func (m *Message) WrapFromHeader(t *Template, buf *Buffer, offset int) error {
	var h MessageHeader
	if err := h.Wrap(buf, offset, t.Order); err != nil {
		return err
	}
	hdr, err := h.Read()
	if err != nil {
		return err
	}
	if hdr.TemplateID != t.ID || hdr.SchemaID != t.SchemaID {
		return &Error{
			code: errCodeTemplateMismatch, offset: offset, field: t.Name,
			detail: dbg.Fprintf("got template %d/schema %d, want %d/%d",
				hdr.TemplateID, hdr.SchemaID, t.ID, t.SchemaID).String(),
		}
	}
	return m.WrapForDecode(t, buf, offset+HeaderSize, int(hdr.BlockLength), hdr.Version)
}

func (m *Message) wrap(t *Template, buf *Buffer, offset, blockLength int, version uint16) error {
	if buf == nil {
		return &Error{code: errCodeNotWrapped, offset: offset, field: t.Name}
	}
	if offset < 0 || blockLength < 0 {
		return errRange(offset, blockLength, buf.Capacity())
	}
	if err := buf.CheckLimit(offset + blockLength); err != nil {
		return withField(err, t.Name)
	}

	m.template = t
	m.cursor.buf = buf
	m.cursor.limit = offset + blockLength
	m.cursor.pass++
	m.offset = offset
	m.actingBlockLength = blockLength
	m.actingVersion = version
	m.scope.reset(t.Trailing)

	debug.Log([]any{"%s", t.Name}, "wrap", "%v", dbg.Dict("",
		"offset", offset, "block", blockLength, "version", version, "pass", m.cursor.pass))
	return nil
}

// Template returns the template m was wrapped with, or nil.
func (m *Message) Template() *Template { return m.template }

// Buffer returns the buffer m is wrapped over.
func (m *Message) Buffer() *Buffer { return m.cursor.buf }

// Cursor returns the cursor shared by m and everything nested in it.
func (m *Message) Cursor() *Cursor { return &m.cursor }

// Offset returns the offset of the start of the fixed block.
func (m *Message) Offset() int {
	if m.cursor.buf == nil {
		return -1
	}
	return m.offset
}

// Limit returns the current limit.
func (m *Message) Limit() int { return m.cursor.limit }

// SetLimit moves the limit. It may not move before the start of the message.
func (m *Message) SetLimit(limit int) error {
	if m.cursor.buf != nil && limit < m.offset {
		return errRange(limit, 0, m.cursor.buf.Capacity())
	}
	return m.cursor.SetLimit(limit)
}

// ActingBlockLength returns the block length m was wrapped with.
func (m *Message) ActingBlockLength() int { return m.actingBlockLength }

// ActingVersion returns the version m was wrapped with.
func (m *Message) ActingVersion() uint16 { return m.actingVersion }

// InActingVersion returns whether an element added in since is present in the
// message, that is, whether the writer knew about it.
func (m *Message) InActingVersion(since uint16) bool { return m.actingVersion >= since }

// EncodedLength returns the number of bytes between the start of the message
// and the limit. After encoding everything, this is the message's size, not
// counting the header.
func (m *Message) EncodedLength() int { return m.cursor.limit - m.offset }

// Order returns the byte order of the message's template.
func (m *Message) Order() ByteOrder {
	if m.template == nil {
		return LittleEndian
	}
	return m.template.Order
}

// Done returns whether every trailing group and var-data field of the
// message has been fully visited.
func (m *Message) Done() bool { return m.scope.done() }

func (m *Message) state() (*Cursor, *scope, error) {
	if m.cursor.buf == nil {
		return nil, nil, &Error{code: errCodeNotWrapped, offset: -1}
	}
	return &m.cursor, &m.scope, nil
}
