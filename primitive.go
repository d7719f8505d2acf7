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
	"math"
	"strconv"
)

// PrimitiveType is one of the fixed-width primitive types a schema is built
// from.
type PrimitiveType uint8

const (
	Char PrimitiveType = iota + 1
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float
	Double
)

type primitiveInfo struct {
	name            string
	size            int
	min, max, null  Value
	signed, isFloat bool
}

// primitives is indexed by PrimitiveType. Signed types reserve their most
// negative value as null; unsigned types reserve their largest.
var primitives = [...]primitiveInfo{
	Char: {
		name: "char", size: 1,
		min: CharValue(0x20), max: CharValue(0x7e), null: CharValue(0),
	},
	Int8: {
		name: "int8", size: 1, signed: true,
		min: IntValue(Int8, math.MinInt8+1), max: IntValue(Int8, math.MaxInt8), null: IntValue(Int8, math.MinInt8),
	},
	Int16: {
		name: "int16", size: 2, signed: true,
		min: IntValue(Int16, math.MinInt16+1), max: IntValue(Int16, math.MaxInt16), null: IntValue(Int16, math.MinInt16),
	},
	Int32: {
		name: "int32", size: 4, signed: true,
		min: IntValue(Int32, math.MinInt32+1), max: IntValue(Int32, math.MaxInt32), null: IntValue(Int32, math.MinInt32),
	},
	Int64: {
		name: "int64", size: 8, signed: true,
		min: IntValue(Int64, math.MinInt64+1), max: IntValue(Int64, math.MaxInt64), null: IntValue(Int64, math.MinInt64),
	},
	Uint8: {
		name: "uint8", size: 1,
		min: UintValue(Uint8, 0), max: UintValue(Uint8, math.MaxUint8-1), null: UintValue(Uint8, math.MaxUint8),
	},
	Uint16: {
		name: "uint16", size: 2,
		min: UintValue(Uint16, 0), max: UintValue(Uint16, math.MaxUint16-1), null: UintValue(Uint16, math.MaxUint16),
	},
	Uint32: {
		name: "uint32", size: 4,
		min: UintValue(Uint32, 0), max: UintValue(Uint32, math.MaxUint32-1), null: UintValue(Uint32, math.MaxUint32),
	},
	Uint64: {
		name: "uint64", size: 8,
		min: UintValue(Uint64, 0), max: UintValue(Uint64, math.MaxUint64-1), null: UintValue(Uint64, math.MaxUint64),
	},
	Float: {
		name: "float", size: 4, signed: true, isFloat: true,
		min: FloatValue(Float, -math.MaxFloat32), max: FloatValue(Float, math.MaxFloat32), null: FloatValue(Float, math.NaN()),
	},
	Double: {
		name: "double", size: 8, signed: true, isFloat: true,
		min: FloatValue(Double, -math.MaxFloat64), max: FloatValue(Double, math.MaxFloat64), null: FloatValue(Double, math.NaN()),
	},
}

// LookupPrimitive finds a primitive type by its schema name, such as "uint16".
func LookupPrimitive(name string) (PrimitiveType, bool) {
	for i := Char; i <= Double; i++ {
		if primitives[i].name == name {
			return i, true
		}
	}
	return 0, false
}

// Valid returns whether this is one of the declared primitive types.
func (t PrimitiveType) Valid() bool {
	return t >= Char && t <= Double
}

func (t PrimitiveType) info() *primitiveInfo {
	if !t.Valid() {
		panic(fmt.Sprintf("sbe: invalid primitive type %d", uint8(t)))
	}
	return &primitives[t]
}

// Name returns the schema name of this type.
func (t PrimitiveType) Name() string { return t.info().name }

// Size returns the encoded size of this type in bytes.
func (t PrimitiveType) Size() int { return t.info().size }

// Min returns the smallest valid, non-null value of this type.
func (t PrimitiveType) Min() Value { return t.info().min }

// Max returns the largest valid, non-null value of this type.
func (t PrimitiveType) Max() Value { return t.info().max }

// Null returns the sentinel value that marks this type as absent.
func (t PrimitiveType) Null() Value { return t.info().null }

// Signed returns whether this is a signed integer or a floating-point type.
func (t PrimitiveType) Signed() bool { return t.info().signed }

// IsFloat returns whether this is a floating-point type.
func (t PrimitiveType) IsFloat() bool { return t.info().isFloat }

// String implements [fmt.Stringer].
func (t PrimitiveType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("PrimitiveType(%d)", uint8(t))
	}
	return t.Name()
}

// ParseValue parses a textual constant, such as one appearing in a schema,
// as a value of type t.
//
// Integers may be written in any base accepted by [strconv.ParseInt] with
// base 0; characters must be a single byte.
func ParseValue(t PrimitiveType, text string) (Value, error) {
	fail := func() (Value, error) {
		return Value{}, &Error{
			code:   errCodeInvalidValue,
			offset: -1,
			detail: fmt.Sprintf("%q as %v", text, t),
		}
	}

	if !t.Valid() {
		return fail()
	}

	info := t.info()
	switch {
	case t == Char:
		if len(text) != 1 {
			return fail()
		}
		return CharValue(text[0]), nil
	case info.isFloat:
		f, err := strconv.ParseFloat(text, info.size*8)
		if err != nil {
			return fail()
		}
		return FloatValue(t, f), nil
	case info.signed:
		n, err := strconv.ParseInt(text, 0, info.size*8)
		if err != nil {
			return fail()
		}
		return IntValue(t, n), nil
	default:
		n, err := strconv.ParseUint(text, 0, info.size*8)
		if err != nil {
			return fail()
		}
		return UintValue(t, n), nil
	}
}

// MustParseValue is like [ParseValue], but panics on error. It is intended
// for initializing static field tables.
func MustParseValue(t PrimitiveType, text string) Value {
	v, err := ParseValue(t, text)
	if err != nil {
		panic(err)
	}
	return v
}
