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

// Composite is a flyweight over a fixed-size composite type embedded in the
// block of a message, group, or another composite, such as a
// mantissa/exponent pair.
//
// A composite has no limit of its own; it shares its parent's acting version.
type Composite struct {
	parent Flyweight
	offset int
	size   int
}

// Wrap positions c over the composite at offset (relative to parent's block)
// spanning size bytes.
func (c *Composite) Wrap(parent Flyweight, offset, size int) *Composite {
	c.parent = parent
	c.offset = offset
	c.size = size
	return c
}

// Buffer implements [Flyweight].
func (c *Composite) Buffer() *Buffer {
	if c.parent == nil {
		return nil
	}
	return c.parent.Buffer()
}

// Offset implements [Flyweight].
func (c *Composite) Offset() int {
	if c.parent == nil || c.parent.Offset() < 0 {
		return -1
	}
	return c.parent.Offset() + c.offset
}

// ActingBlockLength implements [Flyweight].
//
// A composite that lies (even partially) past its parent's acting block was
// not written; it reports a length of zero, so all of its fields read as
// null.
func (c *Composite) ActingBlockLength() int {
	if c.parent == nil || c.offset+c.size > c.parent.ActingBlockLength() {
		return 0
	}
	return c.size
}

// ActingVersion implements [Flyweight].
func (c *Composite) ActingVersion() uint16 {
	if c.parent == nil {
		return 0
	}
	return c.parent.ActingVersion()
}

// Order implements [Flyweight].
func (c *Composite) Order() ByteOrder {
	if c.parent == nil {
		return LittleEndian
	}
	return c.parent.Order()
}

// Size returns the encoded size of the composite.
func (c *Composite) Size() int { return c.size }
