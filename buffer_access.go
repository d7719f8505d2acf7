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

// Typed accessors. Every one of these is a thin wrapper over [Get] and
// [Put]; generated code that is generic over byte order calls those directly.

// Int8 loads an int8 at offset.
func (b *Buffer) Int8(offset int) (int8, error) { return Get[int8](b, offset, NativeEndian) }

// PutInt8 stores an int8 at offset.
func (b *Buffer) PutInt8(offset int, v int8) error { return Put(b, offset, NativeEndian, v) }

// Uint8 loads a uint8 at offset.
func (b *Buffer) Uint8(offset int) (uint8, error) { return Get[uint8](b, offset, NativeEndian) }

// PutUint8 stores a uint8 at offset.
func (b *Buffer) PutUint8(offset int, v uint8) error { return Put(b, offset, NativeEndian, v) }

// Char loads a single-byte character at offset.
func (b *Buffer) Char(offset int) (byte, error) { return Get[byte](b, offset, NativeEndian) }

// PutChar stores a single-byte character at offset.
func (b *Buffer) PutChar(offset int, v byte) error { return Put(b, offset, NativeEndian, v) }

// Int16LE loads a little-endian int16 at offset.
func (b *Buffer) Int16LE(offset int) (int16, error) { return Get[int16](b, offset, LittleEndian) }

// PutInt16LE stores a little-endian int16 at offset.
func (b *Buffer) PutInt16LE(offset int, v int16) error { return Put(b, offset, LittleEndian, v) }

// Int16BE loads a big-endian int16 at offset.
func (b *Buffer) Int16BE(offset int) (int16, error) { return Get[int16](b, offset, BigEndian) }

// PutInt16BE stores a big-endian int16 at offset.
func (b *Buffer) PutInt16BE(offset int, v int16) error { return Put(b, offset, BigEndian, v) }

// Uint16LE loads a little-endian uint16 at offset.
func (b *Buffer) Uint16LE(offset int) (uint16, error) { return Get[uint16](b, offset, LittleEndian) }

// PutUint16LE stores a little-endian uint16 at offset.
func (b *Buffer) PutUint16LE(offset int, v uint16) error { return Put(b, offset, LittleEndian, v) }

// Uint16BE loads a big-endian uint16 at offset.
func (b *Buffer) Uint16BE(offset int) (uint16, error) { return Get[uint16](b, offset, BigEndian) }

// PutUint16BE stores a big-endian uint16 at offset.
func (b *Buffer) PutUint16BE(offset int, v uint16) error { return Put(b, offset, BigEndian, v) }

// Int32LE loads a little-endian int32 at offset.
func (b *Buffer) Int32LE(offset int) (int32, error) { return Get[int32](b, offset, LittleEndian) }

// PutInt32LE stores a little-endian int32 at offset.
func (b *Buffer) PutInt32LE(offset int, v int32) error { return Put(b, offset, LittleEndian, v) }

// Int32BE loads a big-endian int32 at offset.
func (b *Buffer) Int32BE(offset int) (int32, error) { return Get[int32](b, offset, BigEndian) }

// PutInt32BE stores a big-endian int32 at offset.
func (b *Buffer) PutInt32BE(offset int, v int32) error { return Put(b, offset, BigEndian, v) }

// Uint32LE loads a little-endian uint32 at offset.
func (b *Buffer) Uint32LE(offset int) (uint32, error) { return Get[uint32](b, offset, LittleEndian) }

// PutUint32LE stores a little-endian uint32 at offset.
func (b *Buffer) PutUint32LE(offset int, v uint32) error { return Put(b, offset, LittleEndian, v) }

// Uint32BE loads a big-endian uint32 at offset.
func (b *Buffer) Uint32BE(offset int) (uint32, error) { return Get[uint32](b, offset, BigEndian) }

// PutUint32BE stores a big-endian uint32 at offset.
func (b *Buffer) PutUint32BE(offset int, v uint32) error { return Put(b, offset, BigEndian, v) }

// Int64LE loads a little-endian int64 at offset.
func (b *Buffer) Int64LE(offset int) (int64, error) { return Get[int64](b, offset, LittleEndian) }

// PutInt64LE stores a little-endian int64 at offset.
func (b *Buffer) PutInt64LE(offset int, v int64) error { return Put(b, offset, LittleEndian, v) }

// Int64BE loads a big-endian int64 at offset.
func (b *Buffer) Int64BE(offset int) (int64, error) { return Get[int64](b, offset, BigEndian) }

// PutInt64BE stores a big-endian int64 at offset.
func (b *Buffer) PutInt64BE(offset int, v int64) error { return Put(b, offset, BigEndian, v) }

// Uint64LE loads a little-endian uint64 at offset.
func (b *Buffer) Uint64LE(offset int) (uint64, error) { return Get[uint64](b, offset, LittleEndian) }

// PutUint64LE stores a little-endian uint64 at offset.
func (b *Buffer) PutUint64LE(offset int, v uint64) error { return Put(b, offset, LittleEndian, v) }

// Uint64BE loads a big-endian uint64 at offset.
func (b *Buffer) Uint64BE(offset int) (uint64, error) { return Get[uint64](b, offset, BigEndian) }

// PutUint64BE stores a big-endian uint64 at offset.
func (b *Buffer) PutUint64BE(offset int, v uint64) error { return Put(b, offset, BigEndian, v) }

// Float32LE loads a little-endian float32 at offset.
func (b *Buffer) Float32LE(offset int) (float32, error) { return Get[float32](b, offset, LittleEndian) }

// PutFloat32LE stores a little-endian float32 at offset.
func (b *Buffer) PutFloat32LE(offset int, v float32) error { return Put(b, offset, LittleEndian, v) }

// Float32BE loads a big-endian float32 at offset.
func (b *Buffer) Float32BE(offset int) (float32, error) { return Get[float32](b, offset, BigEndian) }

// PutFloat32BE stores a big-endian float32 at offset.
func (b *Buffer) PutFloat32BE(offset int, v float32) error { return Put(b, offset, BigEndian, v) }

// Float64LE loads a little-endian float64 at offset.
func (b *Buffer) Float64LE(offset int) (float64, error) { return Get[float64](b, offset, LittleEndian) }

// PutFloat64LE stores a little-endian float64 at offset.
func (b *Buffer) PutFloat64LE(offset int, v float64) error { return Put(b, offset, LittleEndian, v) }

// Float64BE loads a big-endian float64 at offset.
func (b *Buffer) Float64BE(offset int) (float64, error) { return Get[float64](b, offset, BigEndian) }

// PutFloat64BE stores a big-endian float64 at offset.
func (b *Buffer) PutFloat64BE(offset int, v float64) error { return Put(b, offset, BigEndian, v) }
