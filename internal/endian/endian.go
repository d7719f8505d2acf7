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

// Package endian converts fixed-width numbers between the host's byte order
// and a wire byte order.
package endian

import (
	"fmt"
	"math/bits"
	"unsafe"

	"buf.build/go/sbe/internal/xunsafe"
)

// Order is a byte order.
type Order uint8

const (
	Little Order = iota
	Big
)

// Native is the byte order of the machine we are running on.
var Native = func() Order {
	x := uint16(0x0102)
	if xunsafe.Bytes(&x)[0] == 0x02 {
		return Little
	}
	return Big
}()

// Word is any integer type wider than a byte.
type Word interface {
	~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

// Number is any fixed-width numeric type that can appear on the wire.
type Number interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 |
		~float32 | ~float64
}

// Swap reverses the bytes of v.
func Swap[T Word](v T) T {
	switch unsafe.Sizeof(v) {
	case 2:
		return T(bits.ReverseBytes16(uint16(v)))
	case 4:
		return T(bits.ReverseBytes32(uint32(v)))
	default:
		return T(bits.ReverseBytes64(uint64(v)))
	}
}

// Apply converts v between native order and o.
//
// Conversion is an involution, so the same function is used for loads and
// stores.
func Apply[T Number](o Order, v T) T {
	if o == Native {
		return v
	}

	switch unsafe.Sizeof(v) {
	case 2:
		return xunsafe.BitCast[T](bits.ReverseBytes16(xunsafe.BitCast[uint16](v)))
	case 4:
		return xunsafe.BitCast[T](bits.ReverseBytes32(xunsafe.BitCast[uint32](v)))
	case 8:
		return xunsafe.BitCast[T](bits.ReverseBytes64(xunsafe.BitCast[uint64](v)))
	default:
		return v
	}
}

// String implements [fmt.Stringer].
//
// The names match the spelling used in schema files.
func (o Order) String() string {
	switch o {
	case Little:
		return "littleEndian"
	case Big:
		return "bigEndian"
	default:
		return fmt.Sprintf("Order(%d)", uint8(o))
	}
}

// ParseOrder parses the name of a byte order, as returned by [Order.String].
func ParseOrder(name string) (Order, error) {
	switch name {
	case "littleEndian", "":
		return Little, nil
	case "bigEndian":
		return Big, nil
	default:
		return 0, fmt.Errorf("endian: unknown byte order %q", name)
	}
}
