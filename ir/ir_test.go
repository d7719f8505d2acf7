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

package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buf.build/go/sbe"
	"buf.build/go/sbe/internal/testdata"
	"buf.build/go/sbe/ir"
)

func TestCarLayout(t *testing.T) {
	t.Parallel()

	s, err := testdata.Schema("car")
	require.NoError(t, err)
	assert.Equal(t, sbe.LittleEndian, s.Order())

	engine := s.Type("Engine")
	require.NotNil(t, engine)
	assert.Equal(t, 10, engine.Size())
	assert.Equal(t, 2, s.Type("Booster").Size())

	car := s.MessageByName("Car")
	require.NotNil(t, car)
	assert.Same(t, car, s.Message(1))

	tmpl := car.Template()
	assert.Equal(t, 45, tmpl.BlockLength)
	assert.Equal(t, 5, tmpl.Trailing)
	assert.Equal(t, uint16(1), tmpl.SchemaID)

	offsets := map[string]int{}
	for _, f := range car.Fields {
		offsets[f.Name] = f.Start()
	}
	assert.Equal(t, map[string]int{
		"serialNumber":    0,
		"modelYear":       8,
		"available":       10,
		"code":            11,
		"someNumbers":     12,
		"vehicleCode":     28,
		"extras":          34,
		"discountedModel": 35,
		"engine":          35,
	}, offsets)

	fuel := car.Groups[0].Desc()
	assert.Equal(t, 0, fuel.Ordinal)
	assert.Equal(t, 6, fuel.BlockLength)
	assert.Equal(t, 1, fuel.Trailing)
	assert.Equal(t, sbe.DimensionU16, fuel.Dimension)

	perf := car.Groups[1].Desc()
	assert.Equal(t, 1, perf.Ordinal)
	assert.Equal(t, 0, car.Groups[1].Groups[0].Desc().Ordinal)

	for i, d := range car.Data {
		assert.Equal(t, i+2, d.Desc().Ordinal, d.Name)
		assert.Equal(t, "UTF-8", d.Desc().Encoding)
	}
}

func TestTypes(t *testing.T) {
	t.Parallel()

	s, err := testdata.Schema("car")
	require.NoError(t, err)

	extras := s.Type("OptionalExtras")
	assert.Equal(t, sbe.Uint8, extras.Prim())
	assert.Equal(t, []string{"sportsPack", "cruiseControl"}, extras.Choices(0b110))
	assert.Empty(t, extras.Choices(0))

	model := s.Type("Model")
	c := model.Choice(sbe.CharValue('B'))
	require.NotNil(t, c)
	assert.Equal(t, "B", c.Name)
	assert.Nil(t, model.Choice(sbe.CharValue('Z')))

	var constant *ir.Field
	for _, f := range s.MessageByName("Car").Fields {
		if f.Name == "discountedModel" {
			constant = f
		}
	}
	require.NotNil(t, constant)
	assert.Equal(t, sbe.Constant, constant.Desc().Presence)
	assert.Equal(t, 0, constant.Size())
}

func TestAsOfVersion(t *testing.T) {
	t.Parallel()

	s, err := testdata.Schema("quote")
	require.NoError(t, err)

	quote := s.MessageByName("Quote")
	assert.Equal(t, 28, quote.Template().BlockLength)
	assert.Equal(t, 2, quote.Template().Trailing)

	v0, err := s.AsOfVersion(0)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), v0.Version)

	old := v0.MessageByName("Quote")
	require.NotNil(t, old)
	assert.Equal(t, 16, old.Template().BlockLength)
	assert.Equal(t, 0, old.Template().Trailing)
	assert.Len(t, old.Fields, 2)
	assert.Empty(t, old.Groups)
	assert.Empty(t, old.Data)

	// The original is untouched.
	assert.Len(t, quote.Fields, 4)
	assert.Equal(t, 28, quote.Template().BlockLength)

	_, err = s.AsOfVersion(2)
	assert.ErrorContains(t, err, "newer than the schema")
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, yaml, err string
	}{
		{
			name: "unknown-key",
			yaml: "id: 1\nversoin: 2\nmessages: []\n",
			err:  "field versoin not found",
		},
		{
			name: "byte-order",
			yaml: "id: 1\nbyteOrder: middleEndian\nmessages: []\n",
			err:  "byteOrder",
		},
		{
			name: "unknown-type",
			yaml: "id: 1\nmessages: [{name: M, id: 1, fields: [{name: a, type: uint128}]}]\n",
			err:  `unknown type "uint128"`,
		},
		{
			name: "duplicate-template",
			yaml: "id: 1\nmessages: [{name: M, id: 1}, {name: N, id: 1}]\n",
			err:  "duplicate template id 1",
		},
		{
			name: "overlap",
			yaml: "id: 1\nmessages: [{name: M, id: 1, fields: [{name: a, type: uint32}, {name: b, type: uint8, offset: 2}]}]\n",
			err:  "overlaps the previous field",
		},
		{
			name: "short-block",
			yaml: "id: 1\nmessages: [{name: M, id: 1, blockLength: 2, fields: [{name: a, type: uint32}]}]\n",
			err:  "block length 2",
		},
		{
			name: "null-choice",
			yaml: "id: 1\ntypes: [{name: E, kind: enum, encoding: uint8, values: [{name: X, value: \"255\"}]}]\nmessages: []\n",
			err:  "uses the null value",
		},
		{
			name: "set-bit",
			yaml: "id: 1\ntypes: [{name: S, kind: set, encoding: uint8, values: [{name: X, value: \"8\"}]}]\nmessages: []\n",
			err:  "out of range",
		},
		{
			name: "recursive",
			yaml: "id: 1\ntypes: [{name: C, kind: composite, fields: [{name: c, type: C}]}]\nmessages: []\n",
			err:  "contains itself",
		},
		{
			name: "presence",
			yaml: "id: 1\nmessages: [{name: M, id: 1, fields: [{name: a, type: uint8, presence: sometimes}]}]\n",
			err:  `unknown presence "sometimes"`,
		},
		{
			name: "dimension",
			yaml: "id: 1\nmessages: [{name: M, id: 1, groups: [{name: g, dimension: uint32}]}]\n",
			err:  `unknown dimension "uint32"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ir.Parse([]byte(tt.yaml))
			assert.ErrorContains(t, err, tt.err)
		})
	}
}

func TestExplicitLayout(t *testing.T) {
	t.Parallel()

	s, err := ir.Parse([]byte(`
id: 4
byteOrder: bigEndian
messages:
  - name: Padded
    id: 2
    blockLength: 16
    fields:
      - {name: a, type: uint16, offset: 4}
      - {name: b, type: uint8}
      - {name: c, type: int32, offset: 8, presence: optional}
    groups:
      - name: legs
        dimension: uint8
        fields: [{name: qty, type: uint32}]
`))
	require.NoError(t, err)
	assert.Equal(t, sbe.BigEndian, s.Order())

	m := s.Message(2)
	assert.Equal(t, 16, m.Template().BlockLength)
	assert.Equal(t, 4, m.Fields[0].Start())
	assert.Equal(t, 6, m.Fields[1].Start())
	assert.Equal(t, 8, m.Fields[2].Start())
	assert.Equal(t, sbe.Optional, m.Fields[2].Desc().Presence)

	legs := m.Groups[0].Desc()
	assert.Equal(t, sbe.DimensionU8, legs.Dimension)
	assert.Equal(t, 4, legs.BlockLength)
	assert.Equal(t, 1, m.Template().Trailing)
}
