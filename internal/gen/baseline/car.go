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

package baseline

import "buf.build/go/sbe"

// CarTemplate is the template for [Car].
var CarTemplate = &sbe.Template{
	Name:        "Car",
	ID:          1,
	SchemaID:    SchemaID,
	Version:     SchemaVersion,
	BlockLength: 45,
	Trailing:    5,
	Order:       sbe.LittleEndian,
}

var (
	carSerialNumber = &sbe.Field{Name: "serialNumber", ID: 1, Type: sbe.Uint64, Offset: 0}
	carModelYear    = &sbe.Field{Name: "modelYear", ID: 2, Type: sbe.Uint16, Offset: 8}
	carAvailable    = &sbe.Field{Name: "available", ID: 3, Type: sbe.Uint8, Offset: 10}
	carCode         = &sbe.Field{Name: "code", ID: 4, Type: sbe.Char, Offset: 11}
	carSomeNumbers  = &sbe.Field{Name: "someNumbers", ID: 5, Type: sbe.Uint32, Offset: 12, Length: 4}
	carVehicleCode  = &sbe.Field{Name: "vehicleCode", ID: 6, Type: sbe.Char, Offset: 28, Length: 6}
	carExtras       = &sbe.Field{Name: "extras", ID: 7, Type: sbe.Uint8, Offset: 34}

	carDiscountedModel = &sbe.Field{
		Name: "discountedModel", ID: 8, Type: sbe.Char, Offset: 35,
		Presence: sbe.Constant, Constant: sbe.CharValue(byte(ModelC)),
	}

	carFuelFigures = &sbe.GroupField{
		Name: "fuelFigures", ID: 10, Ordinal: 0,
		BlockLength: 6, Dimension: sbe.DimensionU16, Trailing: 1,
	}
	fuelFiguresSpeed            = &sbe.Field{Name: "speed", ID: 11, Type: sbe.Uint16, Offset: 0}
	fuelFiguresMpg              = &sbe.Field{Name: "mpg", ID: 12, Type: sbe.Float, Offset: 2}
	fuelFiguresUsageDescription = &sbe.VarField{Name: "usageDescription", ID: 200, Ordinal: 0, Encoding: "UTF-8"}

	carPerformanceFigures = &sbe.GroupField{
		Name: "performanceFigures", ID: 13, Ordinal: 1,
		BlockLength: 1, Dimension: sbe.DimensionU16, Trailing: 1,
	}
	performanceFiguresOctaneRating = &sbe.Field{Name: "octaneRating", ID: 14, Type: sbe.Uint8, Offset: 0}
	performanceFiguresAcceleration = &sbe.GroupField{
		Name: "acceleration", ID: 15, Ordinal: 0,
		BlockLength: 6, Dimension: sbe.DimensionU16,
	}
	accelerationMph     = &sbe.Field{Name: "mph", ID: 16, Type: sbe.Uint16, Offset: 0}
	accelerationSeconds = &sbe.Field{Name: "seconds", ID: 17, Type: sbe.Float, Offset: 2}

	carManufacturer   = &sbe.VarField{Name: "manufacturer", ID: 18, Ordinal: 2, Encoding: "UTF-8"}
	carModel          = &sbe.VarField{Name: "model", ID: 19, Ordinal: 3, Encoding: "UTF-8"}
	carActivationCode = &sbe.VarField{Name: "activationCode", ID: 20, Ordinal: 4, Encoding: "UTF-8"}
)

// carEngineOffset is where the engine composite starts in the block of [Car].
const carEngineOffset = 35

// CarFields lists the scalar and array fields of [Car], in declaration
// order. Composites are reached through their own accessors.
var CarFields = []*sbe.Field{
	carSerialNumber, carModelYear, carAvailable, carCode, carSomeNumbers,
	carVehicleCode, carExtras, carDiscountedModel,
}

// Car is the flyweight for the Car message.
type Car struct {
	sbe.Message

	engine             Engine
	fuelFigures        CarFuelFigures
	performanceFigures CarPerformanceFigures
}

// WrapForEncode wraps c to encode a new Car at offset.
func (c *Car) WrapForEncode(buf *sbe.Buffer, offset int) error {
	return c.Message.WrapForEncode(CarTemplate, buf, offset)
}

// WrapForDecode wraps c to decode a Car at offset, written with the given
// block length and version.
func (c *Car) WrapForDecode(buf *sbe.Buffer, offset, actingBlockLength int, actingVersion uint16) error {
	return c.Message.WrapForDecode(CarTemplate, buf, offset, actingBlockLength, actingVersion)
}

// WrapAndApplyHeader writes a message header at offset and wraps c to encode
// a Car after it.
func (c *Car) WrapAndApplyHeader(buf *sbe.Buffer, offset int) error {
	return c.Message.WrapAndApplyHeader(CarTemplate, buf, offset)
}

// WrapFromHeader decodes the message header at offset and wraps c over the
// Car that follows it.
func (c *Car) WrapFromHeader(buf *sbe.Buffer, offset int) error {
	return c.Message.WrapFromHeader(CarTemplate, buf, offset)
}

func (c *Car) SerialNumber() uint64 { return sbe.Read[uint64](c, carSerialNumber) }
func (c *Car) ModelYear() uint16 { return sbe.Read[uint16](c, carModelYear) }
func (c *Car) Available() BooleanType { return BooleanType(sbe.Read[uint8](c, carAvailable)) }
func (c *Car) Code() Model { return Model(sbe.Read[byte](c, carCode)) }
func (c *Car) SomeNumbers(i int) uint32 { return sbe.ReadIndex[uint32](c, carSomeNumbers, i) }
func (c *Car) VehicleCode() string { return sbe.ReadString(c, carVehicleCode) }
func (c *Car) Extras() OptionalExtras { return OptionalExtras(sbe.Read[uint8](c, carExtras)) }
func (c *Car) DiscountedModel() Model { return Model(sbe.Read[byte](c, carDiscountedModel)) }
func (c *Car) SomeNumbersLength() int { return carSomeNumbers.Length }
func (c *Car) VehicleCodeLength() int { return carVehicleCode.Length }

// Engine returns the engine composite, positioned inside c.
func (c *Car) Engine() *Engine {
	c.engine.Wrap(c, carEngineOffset, EngineSize)
	return &c.engine
}

func (c *Car) SetSerialNumber(v uint64) *Car {
	sbe.Write(c, carSerialNumber, v)
	return c
}

func (c *Car) SetModelYear(v uint16) *Car {
	sbe.Write(c, carModelYear, v)
	return c
}

func (c *Car) SetAvailable(v BooleanType) *Car {
	sbe.Write(c, carAvailable, uint8(v))
	return c
}

func (c *Car) SetCode(v Model) *Car {
	sbe.Write(c, carCode, byte(v))
	return c
}

func (c *Car) SetSomeNumbers(i int, v uint32) *Car {
	sbe.WriteIndex(c, carSomeNumbers, i, v)
	return c
}

func (c *Car) SetVehicleCode(v string) *Car {
	sbe.PutChars(c, carVehicleCode, []byte(v))
	return c
}

func (c *Car) SetExtras(v OptionalExtras) *Car {
	sbe.Write(c, carExtras, uint8(v))
	return c
}

// FuelFigures wraps the fuelFigures group for decoding.
func (c *Car) FuelFigures() (*CarFuelFigures, error) {
	return &c.fuelFigures, c.fuelFigures.WrapForDecode(c, carFuelFigures)
}

// FuelFiguresCount wraps the fuelFigures group for encoding n elements.
func (c *Car) FuelFiguresCount(n int) (*CarFuelFigures, error) {
	return &c.fuelFigures, c.fuelFigures.WrapForEncode(c, carFuelFigures, n)
}

// PerformanceFigures wraps the performanceFigures group for decoding.
func (c *Car) PerformanceFigures() (*CarPerformanceFigures, error) {
	return &c.performanceFigures, c.performanceFigures.WrapForDecode(c, carPerformanceFigures)
}

// PerformanceFiguresCount wraps the performanceFigures group for encoding n
// elements.
func (c *Car) PerformanceFiguresCount(n int) (*CarPerformanceFigures, error) {
	return &c.performanceFigures, c.performanceFigures.WrapForEncode(c, carPerformanceFigures, n)
}

func (c *Car) Manufacturer() (string, error) { return sbe.VarDataString(c, carManufacturer) }
func (c *Car) Model() (string, error) { return sbe.VarDataString(c, carModel) }
func (c *Car) ActivationCode() (string, error) { return sbe.VarDataString(c, carActivationCode) }

// GetManufacturer copies at most len(dst) bytes of the manufacturer into dst.
func (c *Car) GetManufacturer(dst []byte) (int, error) {
	return sbe.GetVarData(c, carManufacturer, dst)
}

func (c *Car) PutManufacturer(v string) error {
	_, err := sbe.PutVarDataString(c, carManufacturer, v)
	return err
}

func (c *Car) PutModel(v string) error {
	_, err := sbe.PutVarDataString(c, carModel, v)
	return err
}

func (c *Car) PutActivationCode(v string) error {
	_, err := sbe.PutVarDataString(c, carActivationCode, v)
	return err
}

// CarFuelFigures is the fuelFigures group of [Car].
type CarFuelFigures struct{ sbe.Group }

func (g *CarFuelFigures) Speed() uint16 { return sbe.Read[uint16](g, fuelFiguresSpeed) }
func (g *CarFuelFigures) Mpg() float32 { return sbe.Read[float32](g, fuelFiguresMpg) }

func (g *CarFuelFigures) SetSpeed(v uint16) *CarFuelFigures {
	sbe.Write(g, fuelFiguresSpeed, v)
	return g
}

func (g *CarFuelFigures) SetMpg(v float32) *CarFuelFigures {
	sbe.Write(g, fuelFiguresMpg, v)
	return g
}

func (g *CarFuelFigures) UsageDescription() (string, error) {
	return sbe.VarDataString(g, fuelFiguresUsageDescription)
}

func (g *CarFuelFigures) PutUsageDescription(v string) error {
	_, err := sbe.PutVarDataString(g, fuelFiguresUsageDescription, v)
	return err
}

// CarPerformanceFigures is the performanceFigures group of [Car].
type CarPerformanceFigures struct {
	sbe.Group
	acceleration CarPerformanceFiguresAcceleration
}

func (g *CarPerformanceFigures) OctaneRating() uint8 {
	return sbe.Read[uint8](g, performanceFiguresOctaneRating)
}

func (g *CarPerformanceFigures) SetOctaneRating(v uint8) *CarPerformanceFigures {
	sbe.Write(g, performanceFiguresOctaneRating, v)
	return g
}

// Acceleration wraps the nested acceleration group for decoding.
func (g *CarPerformanceFigures) Acceleration() (*CarPerformanceFiguresAcceleration, error) {
	return &g.acceleration, g.acceleration.WrapForDecode(g, performanceFiguresAcceleration)
}

// AccelerationCount wraps the nested acceleration group for encoding n
// elements.
func (g *CarPerformanceFigures) AccelerationCount(n int) (*CarPerformanceFiguresAcceleration, error) {
	return &g.acceleration, g.acceleration.WrapForEncode(g, performanceFiguresAcceleration, n)
}

// CarPerformanceFiguresAcceleration is the acceleration group nested in
// [CarPerformanceFigures].
type CarPerformanceFiguresAcceleration struct{ sbe.Group }

func (g *CarPerformanceFiguresAcceleration) Mph() uint16 { return sbe.Read[uint16](g, accelerationMph) }
func (g *CarPerformanceFiguresAcceleration) Seconds() float32 {
	return sbe.Read[float32](g, accelerationSeconds)
}

func (g *CarPerformanceFiguresAcceleration) SetMph(v uint16) *CarPerformanceFiguresAcceleration {
	sbe.Write(g, accelerationMph, v)
	return g
}

func (g *CarPerformanceFiguresAcceleration) SetSeconds(v float32) *CarPerformanceFiguresAcceleration {
	sbe.Write(g, accelerationSeconds, v)
	return g
}
