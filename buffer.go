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
	"unsafe"

	"buf.build/go/sbe/internal/debug"
	"buf.build/go/sbe/internal/endian"
	"buf.build/go/sbe/internal/xunsafe"
)

// ByteOrder is the byte order of a multi-byte value on the wire.
type ByteOrder = endian.Order

const (
	LittleEndian = endian.Little
	BigEndian    = endian.Big
)

// NativeEndian is the byte order of the host.
var NativeEndian = endian.Native

// Number is any fixed-width primitive that can be loaded from or stored to
// a [Buffer].
type Number = endian.Number

// Buffer is a bounds-checked view over a caller-owned byte region.
//
// A Buffer never allocates on the access path. It is not safe for concurrent
// use; independent Buffers may be used from different goroutines freely.
type Buffer struct {
	_ xunsafe.NoCopy

	buf  []byte
	grow GrowFunc
}

// NewBuffer wraps region, which may be empty and populated later with
// [Buffer.Wrap].
func NewBuffer(region []byte, opts ...BufferOption) *Buffer {
	var o bufferOptions
	for _, opt := range opts {
		if opt.apply != nil {
			opt.apply(&o)
		}
	}
	return &Buffer{buf: region, grow: o.grow}
}

// Wrap re-points this buffer at a different region, dropping its reference to
// the previous one. Passing nil leaves the buffer with zero capacity until
// the next call to Wrap.
//
// Flyweights wrapped over the previous region must be re-wrapped.
func (b *Buffer) Wrap(region []byte) {
	debug.Log(nil, "wrap", "%p[%d] -> %p[%d]",
		unsafe.SliceData(b.buf), len(b.buf), unsafe.SliceData(region), len(region))
	b.buf = region
}

// Bytes returns the region this buffer currently wraps.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Capacity returns the number of addressable bytes.
func (b *Buffer) Capacity() int {
	return len(b.buf)
}

// CheckLimit checks that limit is a valid position in this buffer, that is,
// that 0 <= limit <= Capacity().
//
// If a [GrowFunc] was configured and limit is beyond the capacity, it is
// called once to obtain a larger region, into which the current contents are
// copied.
func (b *Buffer) CheckLimit(limit int) error {
	if limit >= 0 && limit <= len(b.buf) {
		return nil
	}

	err := errRange(limit, 0, len(b.buf))
	if limit < 0 || b.grow == nil {
		return err
	}

	next := b.grow(len(b.buf), limit)
	if len(next) < limit {
		debug.Log(nil, "grow", "refused: %d < %d", len(next), limit)
		return err
	}

	copy(next, b.buf)
	b.Wrap(next)
	return nil
}

// check checks that [offset, offset+width) is inside the buffer.
func (b *Buffer) check(offset, width int) error {
	if offset < 0 || width > len(b.buf)-offset {
		return errRange(offset, width, len(b.buf))
	}
	return nil
}

// Get loads a T at offset, stored in the given byte order.
func Get[T Number](b *Buffer, offset int, order ByteOrder) (T, error) {
	var z T
	if err := b.check(offset, int(unsafe.Sizeof(z))); err != nil {
		return z, err
	}
	v := xunsafe.ByteLoad[T](unsafe.SliceData(b.buf), offset)
	return endian.Apply(order, v), nil
}

// Put stores v at offset, in the given byte order.
func Put[T Number](b *Buffer, offset int, order ByteOrder, v T) error {
	if err := b.check(offset, int(unsafe.Sizeof(v))); err != nil {
		return err
	}
	xunsafe.ByteStore(unsafe.SliceData(b.buf), offset, endian.Apply(order, v))
	return nil
}

// GetBytes copies bytes starting at offset into dst.
//
// At most Capacity()-offset bytes are copied; the number actually copied is
// returned. A short copy is not an error: callers detect truncation by
// comparing the result with len(dst).
func (b *Buffer) GetBytes(offset int, dst []byte) int {
	if offset < 0 || offset > len(b.buf) {
		return 0
	}
	return copy(dst, b.buf[offset:])
}

// PutBytes copies src into the buffer starting at offset.
//
// Like [Buffer.GetBytes], this truncates to the available room and returns
// the number of bytes copied.
func (b *Buffer) PutBytes(offset int, src []byte) int {
	if offset < 0 || offset > len(b.buf) {
		return 0
	}
	return copy(b.buf[offset:], src)
}
