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

// Package evolution is a schema at two versions, used to test that readers
// and writers at different versions interoperate.
//
// Version 1 of Quote extends the block with qty and ts, and adds a fills
// group and a note var-data field. A version 0 reader skips all of these; a
// version 1 reader sees them as null or empty in version 0 messages.
package evolution

import "buf.build/go/sbe"

const SchemaID = 2

var (
	// QuoteV0Template is Quote as declared at version 0.
	QuoteV0Template = &sbe.Template{
		Name: "Quote", ID: 1, SchemaID: SchemaID, Version: 0,
		BlockLength: 16, Order: sbe.LittleEndian,
	}
	// QuoteV1Template is Quote as declared at version 1.
	QuoteV1Template = &sbe.Template{
		Name: "Quote", ID: 1, SchemaID: SchemaID, Version: 1,
		BlockLength: 28, Trailing: 2, Order: sbe.LittleEndian,
	}
)

var (
	quoteID    = &sbe.Field{Name: "id", ID: 1, Type: sbe.Uint64, Offset: 0}
	quotePrice = &sbe.Field{Name: "price", ID: 2, Type: sbe.Int64, Offset: 8, Presence: sbe.Optional}
	quoteQty   = &sbe.Field{Name: "qty", ID: 3, Type: sbe.Uint32, Offset: 16, Since: 1, Presence: sbe.Optional}
	quoteTS    = &sbe.Field{
		Name: "ts", ID: 4, Type: sbe.Uint64, Offset: 20, Since: 1, Presence: sbe.Optional,
		Meta: sbe.Meta{
			sbe.MetaEpoch:        "unix",
			sbe.MetaTimeUnit:     "nanosecond",
			sbe.MetaSemanticType: "UTCTimestamp",
		},
	}

	quoteFills = &sbe.GroupField{
		Name: "fills", ID: 5, Ordinal: 0, Since: 1,
		BlockLength: 12, Dimension: sbe.DimensionU16,
	}
	fillPrice = &sbe.Field{Name: "px", ID: 6, Type: sbe.Int64, Offset: 0}
	fillSize  = &sbe.Field{Name: "size", ID: 7, Type: sbe.Uint32, Offset: 8}

	quoteNote = &sbe.VarField{Name: "note", ID: 8, Ordinal: 1, Since: 1, Encoding: "UTF-8"}
)

// QuoteTimestamp is the descriptor of the ts field, for inspecting its
// metadata.
var QuoteTimestamp = quoteTS

// QuoteV0 is the flyweight for Quote, as generated from version 0.
type QuoteV0 struct{ sbe.Message }

func (q *QuoteV0) WrapForEncode(buf *sbe.Buffer, offset int) error {
	return q.Message.WrapAndApplyHeader(QuoteV0Template, buf, offset)
}

func (q *QuoteV0) WrapForDecode(buf *sbe.Buffer, offset int) error {
	return q.Message.WrapFromHeader(QuoteV0Template, buf, offset)
}

func (q *QuoteV0) ID() uint64   { return sbe.Read[uint64](q, quoteID) }
func (q *QuoteV0) Price() int64 { return sbe.Read[int64](q, quotePrice) }

func (q *QuoteV0) SetID(v uint64) *QuoteV0 {
	sbe.Write(q, quoteID, v)
	return q
}

func (q *QuoteV0) SetPrice(v int64) *QuoteV0 {
	sbe.Write(q, quotePrice, v)
	return q
}

// QuoteV1 is the flyweight for Quote, as generated from version 1.
type QuoteV1 struct {
	sbe.Message
	fills QuoteFills
}

func (q *QuoteV1) WrapForEncode(buf *sbe.Buffer, offset int) error {
	return q.Message.WrapAndApplyHeader(QuoteV1Template, buf, offset)
}

func (q *QuoteV1) WrapForDecode(buf *sbe.Buffer, offset int) error {
	return q.Message.WrapFromHeader(QuoteV1Template, buf, offset)
}

func (q *QuoteV1) ID() uint64   { return sbe.Read[uint64](q, quoteID) }
func (q *QuoteV1) Price() int64 { return sbe.Read[int64](q, quotePrice) }
func (q *QuoteV1) Qty() uint32  { return sbe.Read[uint32](q, quoteQty) }
func (q *QuoteV1) TS() uint64   { return sbe.Read[uint64](q, quoteTS) }

// HasQty returns whether qty was written, that is, whether the writer was at
// version 1 or later.
func (q *QuoteV1) HasQty() bool { return quoteQty.Present(q) }

func (q *QuoteV1) SetID(v uint64) *QuoteV1 {
	sbe.Write(q, quoteID, v)
	return q
}

func (q *QuoteV1) SetPrice(v int64) *QuoteV1 {
	sbe.Write(q, quotePrice, v)
	return q
}

func (q *QuoteV1) SetQty(v uint32) *QuoteV1 {
	sbe.Write(q, quoteQty, v)
	return q
}

func (q *QuoteV1) SetTS(v uint64) *QuoteV1 {
	sbe.Write(q, quoteTS, v)
	return q
}

func (q *QuoteV1) Fills() (*QuoteFills, error) {
	return &q.fills, q.fills.WrapForDecode(q, quoteFills)
}

func (q *QuoteV1) FillsCount(n int) (*QuoteFills, error) {
	return &q.fills, q.fills.WrapForEncode(q, quoteFills, n)
}

func (q *QuoteV1) Note() (string, error) { return sbe.VarDataString(q, quoteNote) }

func (q *QuoteV1) PutNote(v string) error {
	_, err := sbe.PutVarDataString(q, quoteNote, v)
	return err
}

// QuoteFills is the fills group of [QuoteV1].
type QuoteFills struct{ sbe.Group }

func (g *QuoteFills) Px() int64    { return sbe.Read[int64](g, fillPrice) }
func (g *QuoteFills) Size() uint32 { return sbe.Read[uint32](g, fillSize) }

func (g *QuoteFills) SetPx(v int64) *QuoteFills {
	sbe.Write(g, fillPrice, v)
	return g
}

func (g *QuoteFills) SetSize(v uint32) *QuoteFills {
	sbe.Write(g, fillSize, v)
	return g
}
