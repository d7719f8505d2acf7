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
	"bytes"
	"fmt"
	"unsafe"

	"buf.build/go/sbe/internal/debug"
)

// Presence is whether a field may hold its type's null value.
type Presence uint8

const (
	Required Presence = iota
	Optional
	// Constant fields take no space in the block; their value comes from the
	// schema.
	Constant
)

// String implements [fmt.Stringer].
func (p Presence) String() string {
	switch p {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case Constant:
		return "constant"
	default:
		return fmt.Sprintf("Presence(%d)", uint8(p))
	}
}

// MetaAttribute names a piece of free-form schema metadata attached to a field.
type MetaAttribute uint8

const (
	MetaEpoch MetaAttribute = iota
	MetaTimeUnit
	MetaSemanticType
	MetaPresence

	metaAttributeCount
)

// Meta holds the metadata of a field, indexed by [MetaAttribute]. The
// presence slot is ignored in favor of [Field.Presence].
type Meta [metaAttributeCount]string

// Field describes a fixed-position field in a message, group or composite.
//
// Generated code declares one of these per field as a package variable, and
// passes it to [Read], [Write] and friends.
type Field struct {
	Name   string
	ID     uint16
	Type   PrimitiveType
	Offset int // Relative to the start of the enclosing block.
	// Number of elements for array fields, such as char[6]. Zero and one both
	// mean a scalar.
	Length   int
	Since    uint16
	Presence Presence
	Constant Value // Only for Constant presence.
	// The value of a constant char array, such as a constant string.
	ConstantText string
	Meta         Meta
}

// Size returns the number of bytes this field occupies in its block.
func (f *Field) Size() int {
	if f.Presence == Constant {
		return 0
	}
	return f.Type.Size() * max(f.Length, 1)
}

// Attribute returns a metadata attribute of this field.
func (f *Field) Attribute(attr MetaAttribute) string {
	if attr == MetaPresence {
		return f.Presence.String()
	}
	if attr >= metaAttributeCount {
		return ""
	}
	return f.Meta[attr]
}

// Present returns whether this field's bytes were written as part of the
// block fly is positioned over.
//
// A field is absent when it was added in a later version than the writer's,
// or when it lies past the writer's block length.
func (f *Field) Present(fly Flyweight) bool {
	_, ok := f.locate(fly, 0)
	return ok
}

// locate returns the absolute offset of element i of f.
//
// Panics if fly is not positioned over a block.
func (f *Field) locate(fly Flyweight, i int) (int, bool) {
	base := fly.Offset()
	if base < 0 || fly.Buffer() == nil {
		panic(&Error{code: errCodeNotWrapped, offset: -1, field: f.Name})
	}
	if n := max(f.Length, 1); i < 0 || i >= n {
		panic(fmt.Sprintf("sbe: index %d out of range for %s[%d]", i, f.Name, n))
	}

	if f.Presence == Constant ||
		fly.ActingVersion() < f.Since ||
		f.Offset+f.Size() > fly.ActingBlockLength() {
		return 0, false
	}
	return base + f.Offset + i*f.Type.Size(), true
}

func assertWidth[T Number](f *Field) {
	var z T
	debug.Assert(int(unsafe.Sizeof(z)) == f.Type.Size(),
		"%T used for %s of type %v", z, f.Name, f.Type)
}

// Read reads a scalar field from the block fly is positioned over.
//
// Absent fields read as their type's null value, and constant fields read as
// their constant, without touching the buffer.
//
// Read panics if fly is not positioned over a block, or if its buffer was
// re-wrapped over a region too small for the block: wrapping a flyweight
// checks that the whole acting block is in bounds, so either indicates misuse.
func Read[T Number](fly Flyweight, f *Field) T {
	return ReadIndex[T](fly, f, 0)
}

// ReadIndex is like [Read], but reads element i of an array field.
func ReadIndex[T Number](fly Flyweight, f *Field, i int) T {
	assertWidth[T](f)
	if f.Presence == Constant {
		return ValueAs[T](f.Constant)
	}

	offset, ok := f.locate(fly, i)
	if !ok {
		return ValueAs[T](f.Type.Null())
	}

	v, err := Get[T](fly.Buffer(), offset, fly.Order())
	if err != nil {
		panic(withField(err, f.Name))
	}
	return v
}

// Write writes a scalar field in the block fly is positioned over.
//
// Writing a constant field does nothing. Writing a field that is not present
// in the acting block panics with [ErrNotInBlock], as does any other misuse
// described in [Read].
func Write[T Number](fly Flyweight, f *Field, v T) {
	WriteIndex(fly, f, 0, v)
}

// WriteIndex is like [Write], but writes element i of an array field.
func WriteIndex[T Number](fly Flyweight, f *Field, i int, v T) {
	assertWidth[T](f)
	if f.Presence == Constant {
		return
	}

	offset, ok := f.locate(fly, i)
	if !ok {
		panic(&Error{code: errCodeNotInBlock, offset: fly.Offset() + f.Offset, field: f.Name})
	}

	if err := Put(fly.Buffer(), offset, fly.Order(), v); err != nil {
		panic(withField(err, f.Name))
	}
}

// ReadValue reads element i of a field as a [Value] of the field's type.
func ReadValue(fly Flyweight, f *Field, i int) Value {
	switch f.Type {
	case Char:
		return CharValue(ReadIndex[byte](fly, f, i))
	case Int8:
		return IntValue(f.Type, int64(ReadIndex[int8](fly, f, i)))
	case Int16:
		return IntValue(f.Type, int64(ReadIndex[int16](fly, f, i)))
	case Int32:
		return IntValue(f.Type, int64(ReadIndex[int32](fly, f, i)))
	case Int64:
		return IntValue(f.Type, ReadIndex[int64](fly, f, i))
	case Uint8:
		return UintValue(f.Type, uint64(ReadIndex[uint8](fly, f, i)))
	case Uint16:
		return UintValue(f.Type, uint64(ReadIndex[uint16](fly, f, i)))
	case Uint32:
		return UintValue(f.Type, uint64(ReadIndex[uint32](fly, f, i)))
	case Uint64:
		return UintValue(f.Type, ReadIndex[uint64](fly, f, i))
	case Float:
		return FloatValue(f.Type, float64(ReadIndex[float32](fly, f, i)))
	case Double:
		return FloatValue(f.Type, ReadIndex[float64](fly, f, i))
	default:
		panic(fmt.Sprintf("sbe: field %s has invalid type %v", f.Name, f.Type))
	}
}

// WriteValue writes v into element i of a field, converting it to the field's
// type.
func WriteValue(fly Flyweight, f *Field, i int, v Value) {
	switch f.Type {
	case Char:
		WriteIndex(fly, f, i, v.Byte())
	case Int8:
		WriteIndex(fly, f, i, ValueAs[int8](v))
	case Int16:
		WriteIndex(fly, f, i, ValueAs[int16](v))
	case Int32:
		WriteIndex(fly, f, i, ValueAs[int32](v))
	case Int64:
		WriteIndex(fly, f, i, ValueAs[int64](v))
	case Uint8:
		WriteIndex(fly, f, i, ValueAs[uint8](v))
	case Uint16:
		WriteIndex(fly, f, i, ValueAs[uint16](v))
	case Uint32:
		WriteIndex(fly, f, i, ValueAs[uint32](v))
	case Uint64:
		WriteIndex(fly, f, i, ValueAs[uint64](v))
	case Float:
		WriteIndex(fly, f, i, ValueAs[float32](v))
	case Double:
		WriteIndex(fly, f, i, ValueAs[float64](v))
	default:
		panic(fmt.Sprintf("sbe: field %s has invalid type %v", f.Name, f.Type))
	}
}

// GetChars copies a char array field into dst, returning the number of bytes
// copied. An absent field copies nothing.
func GetChars(fly Flyweight, f *Field, dst []byte) int {
	offset, ok := f.locate(fly, 0)
	if !ok {
		return 0
	}
	n := min(len(dst), max(f.Length, 1))
	return fly.Buffer().GetBytes(offset, dst[:n])
}

// PutChars copies src into a char array field, padding the rest of the field
// with NUL. Returns the number of bytes of src that fit.
func PutChars(fly Flyweight, f *Field, src []byte) int {
	offset, ok := f.locate(fly, 0)
	if !ok {
		panic(&Error{code: errCodeNotInBlock, offset: fly.Offset() + f.Offset, field: f.Name})
	}

	field := fly.Buffer().Bytes()[offset : offset+max(f.Length, 1)]
	n := copy(field, src)
	clear(field[n:])
	return n
}

// ReadString reads a char array field as a string, stopping at the first NUL.
func ReadString(fly Flyweight, f *Field) string {
	if f.Presence == Constant {
		if f.ConstantText != "" {
			return f.ConstantText
		}
		return f.Constant.String()
	}

	var buf [64]byte
	dst := buf[:]
	if n := max(f.Length, 1); n > len(dst) {
		dst = make([]byte, n)
	}
	dst = dst[:GetChars(fly, f, dst)]
	if i := bytes.IndexByte(dst, 0); i >= 0 {
		dst = dst[:i]
	}
	return string(dst)
}
