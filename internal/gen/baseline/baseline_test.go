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

package baseline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buf.build/go/sbe"
	"buf.build/go/sbe/internal/gen/baseline"
)

// javaCar is a Car encoded by the Java reference implementation, header
// included.
var javaCar = []byte{
	45, 0, 1, 0, 1, 0, 0, 0, 210, 4, 0, 0, 0, 0, 0, 0, 221, 7, 1, 65, 1, 0, 0, 0,
	2, 0, 0, 0, 3, 0, 0, 0, 4, 0, 0, 0, 97, 98, 99, 100, 101, 102, 6, 208, 7, 4,
	49, 50, 51, 35, 1, 78, 200, 6, 0, 3, 0, 30, 0, 154, 153, 15, 66, 11, 0, 0, 0,
	85, 114, 98, 97, 110, 32, 67, 121, 99, 108, 101, 55, 0, 0, 0, 68, 66, 14, 0,
	0, 0, 67, 111, 109, 98, 105, 110, 101, 100, 32, 67, 121, 99, 108, 101, 75, 0,
	0, 0, 32, 66, 13, 0, 0, 0, 72, 105, 103, 104, 119, 97, 121, 32, 67, 121, 99,
	108, 101, 1, 0, 2, 0, 95, 6, 0, 3, 0, 30, 0, 0, 0, 128, 64, 60, 0, 0, 0, 240,
	64, 100, 0, 51, 51, 67, 65, 99, 6, 0, 3, 0, 30, 0, 51, 51, 115, 64, 60, 0, 51,
	51, 227, 64, 100, 0, 205, 204, 60, 65, 5, 0, 0, 0, 72, 111, 110, 100, 97, 9, 0,
	0, 0, 67, 105, 118, 105, 99, 32, 86, 84, 105, 6, 0, 0, 0, 97, 98, 99, 100, 101,
	102,
}

type fuelFigure struct {
	speed uint16
	mpg   float32
	usage string
}

var fuelFigures = []fuelFigure{
	{30, 35.9, "Urban Cycle"},
	{55, 49, "Combined Cycle"},
	{75, 40, "Highway Cycle"},
}

type acceleration struct {
	mph     uint16
	seconds float32
}

var performanceFigures = []struct {
	octane uint8
	accel  []acceleration
}{
	{95, []acceleration{{30, 4.0}, {60, 7.5}, {100, 12.2}}},
	{99, []acceleration{{30, 3.8}, {60, 7.1}, {100, 11.8}}},
}

func encodeCar(t *testing.T, buf *sbe.Buffer) int {
	t.Helper()

	car := new(baseline.Car)
	require.NoError(t, car.WrapAndApplyHeader(buf, 0))

	car.SetSerialNumber(1234).
		SetModelYear(2013).
		SetAvailable(baseline.BooleanTypeT).
		SetCode(baseline.ModelA).
		SetVehicleCode("abcdef").
		SetExtras(baseline.OptionalExtrasSportsPack | baseline.OptionalExtrasCruiseControl)
	for i := range car.SomeNumbersLength() {
		car.SetSomeNumbers(i, uint32(i+1))
	}

	engine := car.Engine().
		SetCapacity(2000).
		SetNumCylinders(4).
		SetManufacturerCode("123").
		SetEfficiency(35).
		SetBoosterEnabled(baseline.BooleanTypeT)
	engine.Booster().SetBoostType(baseline.BoostTypeNitrous).SetHorsePower(200)

	fuel, err := car.FuelFiguresCount(len(fuelFigures))
	require.NoError(t, err)
	for _, ff := range fuelFigures {
		require.NoError(t, fuel.Next())
		fuel.SetSpeed(ff.speed).SetMpg(ff.mpg)
		require.NoError(t, fuel.PutUsageDescription(ff.usage))
	}

	perf, err := car.PerformanceFiguresCount(len(performanceFigures))
	require.NoError(t, err)
	for _, pf := range performanceFigures {
		require.NoError(t, perf.Next())
		perf.SetOctaneRating(pf.octane)
		accel, err := perf.AccelerationCount(len(pf.accel))
		require.NoError(t, err)
		for _, a := range pf.accel {
			require.NoError(t, accel.Next())
			accel.SetMph(a.mph).SetSeconds(a.seconds)
		}
	}

	require.NoError(t, car.PutManufacturer("Honda"))
	require.NoError(t, car.PutModel("Civic VTi"))
	require.NoError(t, car.PutActivationCode("abcdef"))
	assert.True(t, car.Done())

	return sbe.HeaderSize + car.EncodedLength()
}

func decodeCar(t *testing.T, buf *sbe.Buffer) {
	t.Helper()

	car := new(baseline.Car)
	require.NoError(t, car.WrapFromHeader(buf, 0))

	assert.Equal(t, 45, car.ActingBlockLength())
	assert.Equal(t, uint16(0), car.ActingVersion())
	assert.Equal(t, uint64(1234), car.SerialNumber())
	assert.Equal(t, uint16(2013), car.ModelYear())
	assert.Equal(t, baseline.BooleanTypeT, car.Available())
	assert.Equal(t, baseline.ModelA, car.Code())
	for i := range car.SomeNumbersLength() {
		assert.Equal(t, uint32(i+1), car.SomeNumbers(i))
	}
	assert.Equal(t, "abcdef", car.VehicleCode())
	assert.Equal(t, "[SportsPack,CruiseControl]", car.Extras().String())
	assert.False(t, car.Extras().Has(baseline.OptionalExtrasSunRoof))
	assert.Equal(t, baseline.ModelC, car.DiscountedModel())

	engine := car.Engine()
	assert.Equal(t, uint16(2000), engine.Capacity())
	assert.Equal(t, uint8(4), engine.NumCylinders())
	assert.Equal(t, uint16(9000), engine.MaxRpm())
	assert.Equal(t, "123", engine.ManufacturerCode())
	assert.Equal(t, "Petrol", engine.Fuel())
	assert.Equal(t, int8(35), engine.Efficiency())
	assert.Equal(t, baseline.BooleanTypeT, engine.BoosterEnabled())
	assert.Equal(t, baseline.BoostTypeNitrous, engine.Booster().BoostType())
	assert.Equal(t, uint8(200), engine.Booster().HorsePower())

	fuel, err := car.FuelFigures()
	require.NoError(t, err)
	require.Equal(t, len(fuelFigures), fuel.Count())
	for _, want := range fuelFigures {
		require.NoError(t, fuel.Next())
		assert.Equal(t, want.speed, fuel.Speed())
		assert.InDelta(t, want.mpg, fuel.Mpg(), 1e-6)
		usage, err := fuel.UsageDescription()
		require.NoError(t, err)
		assert.Equal(t, want.usage, usage)
	}
	assert.False(t, fuel.HasNext())

	perf, err := car.PerformanceFigures()
	require.NoError(t, err)
	require.Equal(t, len(performanceFigures), perf.Count())
	for _, want := range performanceFigures {
		require.NoError(t, perf.Next())
		assert.Equal(t, want.octane, perf.OctaneRating())
		accel, err := perf.Acceleration()
		require.NoError(t, err)
		require.Equal(t, len(want.accel), accel.Count())
		for _, a := range want.accel {
			require.NoError(t, accel.Next())
			assert.Equal(t, a.mph, accel.Mph())
			assert.InDelta(t, a.seconds, accel.Seconds(), 1e-6)
		}
	}

	for _, tt := range []struct {
		get  func() (string, error)
		want string
	}{
		{car.Manufacturer, "Honda"},
		{car.Model, "Civic VTi"},
		{car.ActivationCode, "abcdef"},
	} {
		got, err := tt.get()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	assert.True(t, car.Done())
	assert.Equal(t, len(javaCar), sbe.HeaderSize+car.EncodedLength())
}

func TestDecodeJava(t *testing.T) {
	t.Parallel()
	decodeCar(t, sbe.NewBuffer(javaCar))
}

func TestEncodeMatchesJava(t *testing.T) {
	t.Parallel()

	region := make([]byte, 512)
	n := encodeCar(t, sbe.NewBuffer(region))
	assert.Equal(t, javaCar, region[:n])
}

func TestRoundTripGrowing(t *testing.T) {
	t.Parallel()

	buf := sbe.NewBuffer(nil, sbe.WithGrow(sbe.GrowDoubling))
	n := encodeCar(t, buf)
	assert.Equal(t, len(javaCar), n)
	assert.GreaterOrEqual(t, buf.Capacity(), n)
	decodeCar(t, buf)
}

func TestEncodeLayout(t *testing.T) {
	t.Parallel()

	region := make([]byte, 512)
	buf := sbe.NewBuffer(region)
	car := new(baseline.Car)
	require.NoError(t, car.WrapAndApplyHeader(buf, 0))
	car.SetSerialNumber(1234)

	assert.Equal(t, []byte{45, 0, 1, 0, 1, 0, 0, 0}, region[:8])
	assert.Equal(t, []byte{0xd2, 0x04, 0, 0, 0, 0, 0, 0}, region[8:16])
	assert.Equal(t, 53, car.Limit())

	fuel, err := car.FuelFiguresCount(3)
	require.NoError(t, err)
	// blockLength=6, numInGroup=3, both uint16.
	assert.Equal(t, []byte{6, 0, 3, 0}, region[53:57])
	assert.Equal(t, 57, car.Limit())

	require.NoError(t, fuel.Next())
	assert.Equal(t, 57, fuel.Offset())
	fuel.SetSpeed(30)
	require.NoError(t, fuel.PutUsageDescription("Urban Cycle"))
	assert.Equal(t, []byte{11, 0, 0, 0}, region[63:67])
	assert.Equal(t, 63+4+11, car.Limit())

	require.NoError(t, fuel.Next())
	assert.Equal(t, 78, fuel.Offset())
}

func TestJavaGroupOffsets(t *testing.T) {
	t.Parallel()

	car := new(baseline.Car)
	require.NoError(t, car.WrapFromHeader(sbe.NewBuffer(javaCar), 0))
	fuel, err := car.FuelFigures()
	require.NoError(t, err)
	assert.Equal(t, 3, fuel.Count())
	assert.Equal(t, 57, car.Limit())

	offsets := []int{57, 78, 102}
	for i, want := range fuelFigures {
		require.NoError(t, fuel.Next())
		assert.Equal(t, offsets[i], fuel.Offset())
		assert.Equal(t, want.speed, fuel.Speed())
		assert.InDelta(t, want.mpg, fuel.Mpg(), 0)
		usage, err := fuel.UsageDescription()
		require.NoError(t, err)
		assert.Equal(t, want.usage, usage)
	}
}

func TestAccessOrder(t *testing.T) {
	t.Parallel()

	wrap := func(t *testing.T) *baseline.Car {
		t.Helper()
		car := new(baseline.Car)
		require.NoError(t, car.WrapFromHeader(sbe.NewBuffer(javaCar), 0))
		return car
	}

	t.Run("var-data-before-groups", func(t *testing.T) {
		t.Parallel()
		car := wrap(t)
		_, err := car.Manufacturer()
		require.ErrorIs(t, err, sbe.ErrAccessOrder)
		assert.Equal(t, 53, car.Limit())
	})

	t.Run("group-twice", func(t *testing.T) {
		t.Parallel()
		car := wrap(t)
		fuel, err := car.FuelFigures()
		require.NoError(t, err)
		for fuel.HasNext() {
			require.NoError(t, fuel.Next())
			_, err := fuel.UsageDescription()
			require.NoError(t, err)
		}
		_, err = car.FuelFigures()
		require.ErrorIs(t, err, sbe.ErrAlreadyConsumed)
	})

	t.Run("skip-unread-elements", func(t *testing.T) {
		t.Parallel()
		car := wrap(t)
		fuel, err := car.FuelFigures()
		require.NoError(t, err)
		require.NoError(t, fuel.Next())
		_, err = car.PerformanceFigures()
		require.ErrorIs(t, err, sbe.ErrAccessOrder)
	})

	t.Run("next-before-trailing", func(t *testing.T) {
		t.Parallel()
		car := wrap(t)
		fuel, err := car.FuelFigures()
		require.NoError(t, err)
		require.NoError(t, fuel.Next())
		require.ErrorIs(t, fuel.Next(), sbe.ErrAccessOrder)
	})

	t.Run("exhausted", func(t *testing.T) {
		t.Parallel()
		car := wrap(t)
		fuel, err := car.FuelFigures()
		require.NoError(t, err)
		for fuel.HasNext() {
			require.NoError(t, fuel.Next())
			_, err := fuel.UsageDescription()
			require.NoError(t, err)
		}
		require.ErrorIs(t, fuel.Next(), sbe.ErrGroupExhausted)
	})

	t.Run("stale-after-rewrap", func(t *testing.T) {
		t.Parallel()
		car := wrap(t)
		fuel, err := car.FuelFigures()
		require.NoError(t, err)
		require.NoError(t, car.WrapFromHeader(car.Buffer(), 0))
		require.ErrorIs(t, fuel.Next(), sbe.ErrNotWrapped)
		assert.Equal(t, -1, fuel.Offset())
	})
}

func TestTemplateMismatch(t *testing.T) {
	t.Parallel()

	region := append([]byte(nil), javaCar...)
	region[2] = 7 // Template id.
	car := new(baseline.Car)
	err := car.WrapFromHeader(sbe.NewBuffer(region), 0)
	require.ErrorIs(t, err, sbe.ErrTemplateMismatch)
}

func TestTruncatedVarData(t *testing.T) {
	t.Parallel()

	car := new(baseline.Car)
	require.NoError(t, car.WrapFromHeader(sbe.NewBuffer(javaCar), 0))
	fuel, err := car.FuelFigures()
	require.NoError(t, err)
	for fuel.HasNext() {
		require.NoError(t, fuel.Next())
		_, err := fuel.UsageDescription()
		require.NoError(t, err)
	}
	perf, err := car.PerformanceFigures()
	require.NoError(t, err)
	for perf.HasNext() {
		require.NoError(t, perf.Next())
		accel, err := perf.Acceleration()
		require.NoError(t, err)
		for accel.HasNext() {
			require.NoError(t, accel.Next())
		}
	}

	before := car.Limit()
	dst := make([]byte, 3)
	n, err := car.GetManufacturer(dst)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "Hon", string(dst))
	assert.Equal(t, before+4+5, car.Limit())
}
