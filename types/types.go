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

// Package types contains flyweights for the composite types that commonly
// appear in SBE schemas, and conversions between them and the Go types that
// represent them best.
package types

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"buf.build/go/sbe"
)

// Semantic types recognized by this package, as they appear in the
// semanticType attribute of a schema.
const (
	SemanticDecimal = "Decimal"
	SemanticUUID    = "UUID"
)

// DecimalSize is the encoded size of [Decimal].
const DecimalSize = 9

var (
	DecimalMantissa = &sbe.Field{Name: "mantissa", Type: sbe.Int64, Offset: 0, Presence: sbe.Optional}
	DecimalExponent = &sbe.Field{Name: "exponent", Type: sbe.Int8, Offset: 8}
)

// Decimal is a floating-point decimal composite: an int64 mantissa followed
// by an int8 base-10 exponent. A null mantissa marks the whole value as null.
type Decimal struct{ sbe.Composite }

// Mantissa returns the raw mantissa.
func (d *Decimal) Mantissa() int64 { return sbe.Read[int64](d, DecimalMantissa) }

// Exponent returns the raw exponent.
func (d *Decimal) Exponent() int8 { return sbe.Read[int8](d, DecimalExponent) }

// IsNull returns whether the mantissa holds its null value.
func (d *Decimal) IsNull() bool { return d.Mantissa() == math.MinInt64 }

// Value returns the decimal, or false if it is null.
func (d *Decimal) Value() (decimal.Decimal, bool) {
	if d.IsNull() {
		return decimal.Decimal{}, false
	}
	return decimal.New(d.Mantissa(), int32(d.Exponent())), true
}

// Set writes v. It fails if v cannot be written without losing precision.
func (d *Decimal) Set(v decimal.Decimal) error {
	mantissa, exp := v.Coefficient(), v.Exponent()

	// Move trailing zeros of the mantissa into the exponent until the
	// exponent fits.
	ten := big.NewInt(10)
	for exp < math.MinInt8 || !mantissa.IsInt64() {
		if exp >= math.MaxInt8 {
			break
		}
		q, r := new(big.Int).QuoRem(mantissa, ten, new(big.Int))
		if r.Sign() != 0 {
			break
		}
		mantissa = q
		exp++
	}

	if exp < math.MinInt8 || exp > math.MaxInt8 || !mantissa.IsInt64() ||
		mantissa.Int64() == math.MinInt64 {
		return fmt.Errorf("types: %v does not fit in a decimal64 composite", v)
	}

	sbe.Write(d, DecimalMantissa, mantissa.Int64())
	sbe.Write(d, DecimalExponent, int8(exp))
	return nil
}

// SetNull writes the null value.
func (d *Decimal) SetNull() {
	sbe.Write(d, DecimalMantissa, int64(math.MinInt64))
	sbe.Write(d, DecimalExponent, int8(0))
}

// UUIDSize is the encoded size of [UUID].
const UUIDSize = 16

var (
	UUIDMostSigBits  = &sbe.Field{Name: "mostSigBits", Type: sbe.Uint64, Offset: 0}
	UUIDLeastSigBits = &sbe.Field{Name: "leastSigBits", Type: sbe.Uint64, Offset: 8}
)

// UUID is a composite holding the two halves of a 128-bit UUID, most
// significant first, each in the schema's byte order.
type UUID struct{ sbe.Composite }

// Value returns the UUID.
func (u *UUID) Value() uuid.UUID {
	var id uuid.UUID
	binary.BigEndian.PutUint64(id[:8], sbe.Read[uint64](u, UUIDMostSigBits))
	binary.BigEndian.PutUint64(id[8:], sbe.Read[uint64](u, UUIDLeastSigBits))
	return id
}

// Set writes id.
func (u *UUID) Set(id uuid.UUID) {
	sbe.Write(u, UUIDMostSigBits, binary.BigEndian.Uint64(id[:8]))
	sbe.Write(u, UUIDLeastSigBits, binary.BigEndian.Uint64(id[8:]))
}
