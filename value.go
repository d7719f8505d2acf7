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
	"math"
	"strconv"
)

// Value is a primitive value tagged with its type.
//
// The zero Value has no type and reports itself as null.
type Value struct {
	typ  PrimitiveType
	bits uint64
}

// IntValue returns a value of signed integer type t.
func IntValue(t PrimitiveType, v int64) Value { return Value{t, uint64(v)} }

// UintValue returns a value of unsigned integer type t.
func UintValue(t PrimitiveType, v uint64) Value { return Value{t, v} }

// FloatValue returns a value of floating point type t.
func FloatValue(t PrimitiveType, v float64) Value {
	if t == Float {
		v = float64(float32(v))
	}
	return Value{t, math.Float64bits(v)}
}

// CharValue returns a value of type [Char].
func CharValue(c byte) Value { return Value{Char, uint64(c)} }

// Type returns this value's type.
func (v Value) Type() PrimitiveType { return v.typ }

// Int returns this value as a signed integer.
func (v Value) Int() int64 {
	if v.isFloat() {
		return int64(v.Float())
	}
	return int64(v.bits)
}

// Uint returns this value as an unsigned integer.
func (v Value) Uint() uint64 {
	if v.isFloat() {
		return uint64(v.Float())
	}
	return v.bits
}

// Float returns this value as a float64.
func (v Value) Float() float64 {
	switch {
	case v.isFloat():
		return math.Float64frombits(v.bits)
	case v.typ.Valid() && v.typ.Signed():
		return float64(int64(v.bits))
	default:
		return float64(v.bits)
	}
}

// Byte returns the low byte of this value; this is the character for [Char]
// values.
func (v Value) Byte() byte { return byte(v.bits) }

// IsNull returns whether this is the null sentinel of its type.
func (v Value) IsNull() bool {
	switch {
	case !v.typ.Valid():
		return true
	case v.isFloat():
		return math.IsNaN(v.Float())
	default:
		return v.bits == v.typ.Null().bits
	}
}

// String implements [fmt.Stringer].
func (v Value) String() string {
	switch {
	case !v.typ.Valid():
		return "<invalid>"
	case v.typ == Char:
		return string(rune(v.bits))
	case v.isFloat():
		return strconv.FormatFloat(v.Float(), 'g', -1, v.typ.Size()*8)
	case v.typ.Signed():
		return strconv.FormatInt(v.Int(), 10)
	default:
		return strconv.FormatUint(v.bits, 10)
	}
}

func (v Value) isFloat() bool { return v.typ == Float || v.typ == Double }

// ValueAs converts v into a Go value of type T.
//
// Integers are truncated to the width of T; null sentinels therefore only
// survive when T matches the width of v's type.
func ValueAs[T Number](v Value) T {
	switch {
	case v.isFloat():
		return T(v.Float())
	case v.typ.Valid() && v.typ.Signed():
		return T(v.Int())
	default:
		return T(v.Uint())
	}
}
