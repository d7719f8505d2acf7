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

// Package baseline is the Car example schema (id 1, version 0), written in
// the shape that generated code takes: a [sbe.Template] plus static field
// tables, and thin typed accessors over them.
//
// It doubles as the fixture for interoperability tests against buffers
// produced by other SBE implementations.
package baseline

import (
	"strings"

	"buf.build/go/sbe"
)

const (
	SchemaID      = 1
	SchemaVersion = 0
)

// BooleanType is a uint8 enum.
type BooleanType uint8

const (
	BooleanTypeF    BooleanType = 0
	BooleanTypeT    BooleanType = 1
	BooleanTypeNull BooleanType = 255
)

func (b BooleanType) String() string {
	switch b {
	case BooleanTypeF:
		return "F"
	case BooleanTypeT:
		return "T"
	default:
		return "NULL_VALUE"
	}
}

// Model is a char enum.
type Model byte

const (
	ModelA    Model = 'A'
	ModelB    Model = 'B'
	ModelC    Model = 'C'
	ModelNull Model = 0
)

func (m Model) String() string {
	switch m {
	case ModelA, ModelB, ModelC:
		return string(rune(m))
	default:
		return "NULL_VALUE"
	}
}

// BoostType is a char enum.
type BoostType byte

const (
	BoostTypeTurbo        BoostType = 'T'
	BoostTypeSupercharger BoostType = 'S'
	BoostTypeNitrous      BoostType = 'N'
	BoostTypeKers         BoostType = 'K'
	BoostTypeNull         BoostType = 0
)

func (b BoostType) String() string {
	switch b {
	case BoostTypeTurbo:
		return "TURBO"
	case BoostTypeSupercharger:
		return "SUPERCHARGER"
	case BoostTypeNitrous:
		return "NITROUS"
	case BoostTypeKers:
		return "KERS"
	default:
		return "NULL_VALUE"
	}
}

// OptionalExtras is a uint8 bit set.
type OptionalExtras uint8

const (
	OptionalExtrasSunRoof       OptionalExtras = 1 << 0
	OptionalExtrasSportsPack    OptionalExtras = 1 << 1
	OptionalExtrasCruiseControl OptionalExtras = 1 << 2
)

// Has returns whether every choice in x is set.
func (o OptionalExtras) Has(x OptionalExtras) bool { return o&x == x }

func (o OptionalExtras) String() string {
	var names []string
	for _, c := range [...]struct {
		bit  OptionalExtras
		name string
	}{
		{OptionalExtrasSunRoof, "SunRoof"},
		{OptionalExtrasSportsPack, "SportsPack"},
		{OptionalExtrasCruiseControl, "CruiseControl"},
	} {
		if o.Has(c.bit) {
			names = append(names, c.name)
		}
	}
	return "[" + strings.Join(names, ",") + "]"
}

// BoosterSize is the encoded size of [Booster].
const BoosterSize = 2

var (
	boosterBoostType  = &sbe.Field{Name: "BoostType", Type: sbe.Char, Offset: 0}
	boosterHorsePower = &sbe.Field{Name: "horsePower", Type: sbe.Uint8, Offset: 1}
)

// Booster is a composite nested in [Engine].
type Booster struct{ sbe.Composite }

func (b *Booster) BoostType() BoostType { return BoostType(sbe.Read[byte](b, boosterBoostType)) }
func (b *Booster) HorsePower() uint8    { return sbe.Read[uint8](b, boosterHorsePower) }

func (b *Booster) SetBoostType(v BoostType) *Booster {
	sbe.Write(b, boosterBoostType, byte(v))
	return b
}

func (b *Booster) SetHorsePower(v uint8) *Booster {
	sbe.Write(b, boosterHorsePower, v)
	return b
}

// EngineSize is the encoded size of [Engine].
const EngineSize = 10

var (
	engineCapacity     = &sbe.Field{Name: "capacity", Type: sbe.Uint16, Offset: 0}
	engineNumCylinders = &sbe.Field{Name: "numCylinders", Type: sbe.Uint8, Offset: 2}
	engineMaxRpm       = &sbe.Field{
		Name: "maxRpm", Type: sbe.Uint16, Offset: 3,
		Presence: sbe.Constant, Constant: sbe.MustParseValue(sbe.Uint16, "9000"),
	}
	engineManufacturerCode = &sbe.Field{Name: "manufacturerCode", Type: sbe.Char, Offset: 3, Length: 3}
	engineFuel             = &sbe.Field{
		Name: "fuel", Type: sbe.Char, Offset: 6, Length: 6,
		Presence: sbe.Constant, ConstantText: "Petrol",
	}
	engineEfficiency     = &sbe.Field{Name: "efficiency", Type: sbe.Int8, Offset: 6}
	engineBoosterEnabled = &sbe.Field{Name: "boosterEnabled", Type: sbe.Uint8, Offset: 7}
)

// Engine is a composite in the block of [Car].
type Engine struct {
	sbe.Composite
	booster Booster
}

func (e *Engine) Capacity() uint16         { return sbe.Read[uint16](e, engineCapacity) }
func (e *Engine) NumCylinders() uint8      { return sbe.Read[uint8](e, engineNumCylinders) }
func (e *Engine) MaxRpm() uint16           { return sbe.Read[uint16](e, engineMaxRpm) }
func (e *Engine) ManufacturerCode() string { return sbe.ReadString(e, engineManufacturerCode) }
func (e *Engine) Fuel() string             { return sbe.ReadString(e, engineFuel) }
func (e *Engine) Efficiency() int8         { return sbe.Read[int8](e, engineEfficiency) }

func (e *Engine) BoosterEnabled() BooleanType {
	return BooleanType(sbe.Read[uint8](e, engineBoosterEnabled))
}

// Booster returns the booster composite, positioned inside e.
func (e *Engine) Booster() *Booster {
	e.booster.Wrap(e, 8, BoosterSize)
	return &e.booster
}

func (e *Engine) SetCapacity(v uint16) *Engine {
	sbe.Write(e, engineCapacity, v)
	return e
}

func (e *Engine) SetNumCylinders(v uint8) *Engine {
	sbe.Write(e, engineNumCylinders, v)
	return e
}

func (e *Engine) SetManufacturerCode(v string) *Engine {
	sbe.PutChars(e, engineManufacturerCode, []byte(v))
	return e
}

func (e *Engine) SetEfficiency(v int8) *Engine {
	sbe.Write(e, engineEfficiency, v)
	return e
}

func (e *Engine) SetBoosterEnabled(v BooleanType) *Engine {
	sbe.Write(e, engineBoosterEnabled, uint8(v))
	return e
}
