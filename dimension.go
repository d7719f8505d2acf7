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

import "fmt"

// Dimension is the layout of a group's dimension header: a uint16 element
// block length followed by an element count.
//
// The zero value is [DimensionU16].
type Dimension struct {
	count PrimitiveType
}

var (
	// DimensionU8 has a uint8 count, for a 3-byte header.
	DimensionU8 = Dimension{Uint8}
	// DimensionU16 has a uint16 count, for a 4-byte header. This is the
	// standard groupSizeEncoding.
	DimensionU16 = Dimension{Uint16}
)

// CountType returns the type of the count field.
func (d Dimension) CountType() PrimitiveType {
	if d.count == 0 {
		return Uint16
	}
	return d.count
}

// Size returns the size of the header in bytes.
func (d Dimension) Size() int {
	return Uint16.Size() + d.CountType().Size()
}

// MaxCount returns the largest count the header can hold. The largest
// representable value is reserved as null.
func (d Dimension) MaxCount() int {
	return int(d.CountType().Max().Uint())
}

// String implements [fmt.Stringer].
func (d Dimension) String() string {
	return fmt.Sprintf("dimension(uint16, %v)", d.CountType())
}

func (d Dimension) read(buf *Buffer, offset int, order ByteOrder) (blockLength, count int, err error) {
	bl, err := Get[uint16](buf, offset, order)
	if err != nil {
		return 0, 0, err
	}

	switch d.CountType() {
	case Uint8:
		n, err := Get[uint8](buf, offset+2, order)
		return int(bl), int(n), err
	default:
		n, err := Get[uint16](buf, offset+2, order)
		return int(bl), int(n), err
	}
}

func (d Dimension) write(buf *Buffer, offset int, order ByteOrder, blockLength, count int) error {
	if err := Put(buf, offset, order, uint16(blockLength)); err != nil {
		return err
	}

	switch d.CountType() {
	case Uint8:
		return Put(buf, offset+2, order, uint8(count))
	default:
		return Put(buf, offset+2, order, uint16(count))
	}
}
