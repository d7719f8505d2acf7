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

package sbe_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buf.build/go/sbe"
)

// A small big-endian schema exercising every kind of element:
//
//	order (block 12): qty u32, kind char constant 'L', price i64 since 2
//	  legs (block 4, uint16 count): leg u32
//	    tag: var data
//	  note: var data
var (
	orderTemplate = &sbe.Template{
		Name: "Order", ID: 9, SchemaID: 5, Version: 2,
		BlockLength: 12, Trailing: 2, Order: sbe.BigEndian,
	}

	orderQty   = &sbe.Field{Name: "qty", Type: sbe.Uint32, Offset: 0}
	orderKind  = &sbe.Field{Name: "kind", Type: sbe.Char, Presence: sbe.Constant, Constant: sbe.CharValue('L')}
	orderPrice = &sbe.Field{
		Name: "price", Type: sbe.Int64, Offset: 4, Since: 2,
		Presence: sbe.Optional,
	}

	orderLegs = &sbe.GroupField{
		Name: "legs", Ordinal: 0, BlockLength: 4,
		Dimension: sbe.DimensionU16, Trailing: 1,
	}
	legID  = &sbe.Field{Name: "leg", Type: sbe.Uint32, Offset: 0}
	legTag = &sbe.VarField{Name: "tag", Ordinal: 0}

	orderNote = &sbe.VarField{Name: "note", Ordinal: 1, Encoding: "UTF-8"}
)

// recovered runs f and returns the error it panicked with, if any.
func recovered(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	f()
	return nil
}

func TestMessageWrap(t *testing.T) {
	t.Parallel()

	var m sbe.Message
	assert.Equal(t, -1, m.Offset())
	require.ErrorIs(t, m.WrapForEncode(orderTemplate, nil, 0), sbe.ErrNotWrapped)

	buf := sbe.NewBuffer(make([]byte, 15))
	require.ErrorIs(t, m.WrapForEncode(orderTemplate, buf, 4), sbe.ErrOutOfRange)
	require.ErrorIs(t, m.WrapForEncode(orderTemplate, buf, -1), sbe.ErrOutOfRange)

	require.NoError(t, m.WrapForEncode(orderTemplate, buf, 3))
	assert.Equal(t, 3, m.Offset())
	assert.Equal(t, 15, m.Limit())
	assert.Equal(t, 12, m.EncodedLength())
	assert.Equal(t, 12, m.ActingBlockLength())
	assert.Equal(t, uint16(2), m.ActingVersion())
	assert.True(t, m.InActingVersion(2))
	assert.False(t, m.InActingVersion(3))
	assert.Same(t, orderTemplate, m.Template())
	assert.Equal(t, sbe.BigEndian, m.Order())
	assert.False(t, m.Done())

	require.ErrorIs(t, m.SetLimit(2), sbe.ErrOutOfRange)
	require.ErrorIs(t, m.SetLimit(16), sbe.ErrOutOfRange)
	require.NoError(t, m.SetLimit(3))
	assert.Equal(t, 3, m.Cursor().Limit())
}

func TestMessageFields(t *testing.T) {
	t.Parallel()

	region := make([]byte, 12)
	buf := sbe.NewBuffer(region)

	var m sbe.Message
	require.NoError(t, m.WrapForEncode(orderTemplate, buf, 0))
	sbe.Write(&m, orderQty, uint32(0x01020304))
	sbe.Write(&m, orderPrice, int64(-2))
	sbe.Write(&m, orderKind, byte('X'))

	assert.Equal(t, []byte{1, 2, 3, 4, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe}, region)
	assert.Equal(t, uint32(0x01020304), sbe.Read[uint32](&m, orderQty))
	assert.Equal(t, int64(-2), sbe.Read[int64](&m, orderPrice))
	assert.Equal(t, byte('L'), sbe.Read[byte](&m, orderKind))
	assert.Equal(t, "L", sbe.ReadString(&m, orderKind))
	assert.Equal(t, "-2", sbe.ReadValue(&m, orderPrice, 0).String())

	sbe.WriteValue(&m, orderQty, 0, sbe.UintValue(sbe.Uint32, 7))
	assert.Equal(t, uint32(7), sbe.Read[uint32](&m, orderQty))
}

func TestMessageAbsentFields(t *testing.T) {
	t.Parallel()

	region := make([]byte, 12)
	for i := range region {
		region[i] = 0xaa
	}
	buf := sbe.NewBuffer(region)

	var m sbe.Message
	// Written by version 1, which did not have price.
	require.NoError(t, m.WrapForDecode(orderTemplate, buf, 0, 4, 1))
	assert.False(t, orderPrice.Present(&m))
	assert.True(t, orderQty.Present(&m))
	assert.Equal(t, int64(math.MinInt64), sbe.Read[int64](&m, orderPrice))
	assert.True(t, sbe.ReadValue(&m, orderPrice, 0).IsNull())

	err := recovered(func() { sbe.Write(&m, orderPrice, int64(1)) })
	require.ErrorIs(t, err, sbe.ErrNotInBlock)

	// Written by version 2, but with a short block.
	require.NoError(t, m.WrapForDecode(orderTemplate, buf, 0, 8, 2))
	assert.False(t, orderPrice.Present(&m))
	assert.Equal(t, int64(math.MinInt64), sbe.Read[int64](&m, orderPrice))
}

func TestMessageMisuse(t *testing.T) {
	t.Parallel()

	var m sbe.Message
	err := recovered(func() { sbe.Read[uint32](&m, orderQty) })
	require.ErrorIs(t, err, sbe.ErrNotWrapped)

	require.NoError(t, m.WrapForEncode(orderTemplate, sbe.NewBuffer(make([]byte, 12)), 0))
	assert.Panics(t, func() { sbe.ReadIndex[uint32](&m, orderQty, 1) })
}

func TestHeader(t *testing.T) {
	t.Parallel()

	region := make([]byte, 32)
	buf := sbe.NewBuffer(region)

	var m sbe.Message
	require.NoError(t, m.WrapAndApplyHeader(orderTemplate, buf, 2))
	assert.Equal(t, []byte{0, 12, 0, 9, 0, 5, 0, 2}, region[2:10])
	assert.Equal(t, 10, m.Offset())

	var h sbe.MessageHeader
	require.NoError(t, h.Wrap(buf, 2, sbe.BigEndian))
	hdr, err := h.Read()
	require.NoError(t, err)
	assert.Equal(t, sbe.Header{BlockLength: 12, TemplateID: 9, SchemaID: 5, Version: 2}, hdr)

	require.NoError(t, h.SetVersion(1))
	require.NoError(t, h.SetBlockLength(4))
	require.NoError(t, m.WrapFromHeader(orderTemplate, buf, 2))
	assert.Equal(t, uint16(1), m.ActingVersion())
	assert.Equal(t, 4, m.ActingBlockLength())
	assert.Equal(t, 14, m.Limit())

	require.NoError(t, h.SetSchemaID(6))
	require.ErrorIs(t, m.WrapFromHeader(orderTemplate, buf, 2), sbe.ErrTemplateMismatch)

	require.ErrorIs(t, h.Wrap(buf, 25, sbe.BigEndian), sbe.ErrOutOfRange)
	require.ErrorIs(t, h.Wrap(nil, 0, sbe.BigEndian), sbe.ErrNotWrapped)

	var unwrapped sbe.MessageHeader
	_, err = unwrapped.TemplateID()
	require.ErrorIs(t, err, sbe.ErrNotWrapped)
}

func TestError(t *testing.T) {
	t.Parallel()

	buf := sbe.NewBuffer(make([]byte, 4))
	_, err := buf.Uint64BE(2)
	assert.EqualError(t, err, "sbe: access beyond buffer capacity at offset 2/0x2: width=8 capacity=4")

	var m sbe.Message
	require.NoError(t, m.WrapForEncode(orderTemplate, sbe.NewBuffer(make([]byte, 12)), 0))
	_, err = sbe.VarDataString(&m, orderNote)
	assert.ErrorContains(t, err, "(note)")
	require.ErrorIs(t, err, sbe.ErrAccessOrder)
}
