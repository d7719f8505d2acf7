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

// Package otf decodes SBE messages "on the fly", using only a schema loaded
// with package ir, into self-describing [structpb.Struct] values.
//
// Enums render as the names of their choices, sets as lists of the names of
// the choices they contain, char arrays as strings, groups as lists of
// objects, and var data as strings (or base64 for raw bytes). Null optional
// fields render as null. 64-bit integers that cannot be represented exactly
// by a JSON number render as decimal strings.
package otf

import (
	"encoding/base64"
	"math"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/types/known/structpb"

	"buf.build/go/sbe"
	"buf.build/go/sbe/internal/debug"
	"buf.build/go/sbe/internal/sync2"
	"buf.build/go/sbe/ir"
	"buf.build/go/sbe/types"
)

// ErrUnknownTemplate is returned when decoding a message whose template id
// does not appear in the schema.
var ErrUnknownTemplate = errors.New("otf: unknown template")

// maxSafeInt is the largest integer a float64 represents exactly.
const maxSafeInt = 1 << 53

var messages = sync2.Pool[sbe.Message]{}

// Decoder decodes messages of a single schema.
//
// A Decoder is safe for concurrent use.
type Decoder struct {
	schema *ir.Schema
	opts   options
}

// Result is a decoded message.
type Result struct {
	Header  sbe.Header
	Message *ir.Message
	Value   *structpb.Struct
	// Number of bytes consumed, including the header.
	Size int
}

// NewDecoder returns a decoder for messages of schema.
func NewDecoder(schema *ir.Schema, opts ...Option) *Decoder {
	d := &Decoder{schema: schema}
	for _, opt := range opts {
		if opt.apply != nil {
			opt.apply(&d.opts)
		}
	}
	return d
}

// Decode decodes the message at the start of data.
func Decode(schema *ir.Schema, data []byte, opts ...Option) (*Result, error) {
	return NewDecoder(schema, opts...).Decode(sbe.NewBuffer(data), 0)
}

// Decode decodes the header-prefixed message at offset in buf.
func (d *Decoder) Decode(buf *sbe.Buffer, offset int) (*Result, error) {
	var h sbe.MessageHeader
	if err := h.Wrap(buf, offset, d.schema.Order()); err != nil {
		return nil, errors.Wrap(err, "otf: reading header")
	}
	hdr, err := h.Read()
	if err != nil {
		return nil, errors.Wrap(err, "otf: reading header")
	}

	m := d.schema.Message(hdr.TemplateID)
	if m == nil || hdr.SchemaID != d.schema.ID {
		return nil, errors.Wrapf(ErrUnknownTemplate, "template %d of schema %d", hdr.TemplateID, hdr.SchemaID)
	}

	msg, drop := messages.Get()
	defer drop()
	if err := msg.WrapFromHeader(m.Template(), buf, offset); err != nil {
		return nil, errors.Wrapf(err, "otf: %s", m.Name)
	}
	debug.Log(nil, "decode", "%s: block=%d version=%d", m.Name, hdr.BlockLength, hdr.Version)

	value, err := d.block(msg, m.Fields, m.Groups, m.Data)
	if err != nil {
		return nil, errors.Wrapf(err, "otf: %s", m.Name)
	}
	return &Result{
		Header:  hdr,
		Message: m,
		Value:   value,
		Size:    msg.Limit() - offset,
	}, nil
}

// block renders the fields of a message or group element, followed by its
// groups and var data, in wire order.
func (d *Decoder) block(b sbe.Block, fields []*ir.Field, groups []*ir.Group, data []*ir.Data) (*structpb.Struct, error) {
	out := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(fields)+len(groups)+len(data))}
	d.fields(out, b, fields)

	for _, g := range groups {
		list, err := d.group(b, g)
		if err != nil {
			return nil, err
		}
		out.Fields[g.Name] = structpb.NewListValue(list)
	}

	for _, v := range data {
		payload, err := sbe.VarDataBytes(b, v.Desc())
		if err != nil {
			return nil, err
		}
		if v.Text() {
			out.Fields[v.Name] = structpb.NewStringValue(string(payload))
		} else {
			out.Fields[v.Name] = structpb.NewStringValue(base64.StdEncoding.EncodeToString(payload))
		}
	}
	return out, nil
}

func (d *Decoder) group(parent sbe.Block, g *ir.Group) (*structpb.ListValue, error) {
	grp := new(sbe.Group)
	if err := grp.WrapForDecode(parent, g.Desc()); err != nil {
		return nil, err
	}

	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, grp.Count())}
	for grp.HasNext() {
		if err := grp.Next(); err != nil {
			return nil, err
		}
		elem, err := d.block(grp, g.Fields, g.Groups, g.Data)
		if err != nil {
			return nil, errors.Wrapf(err, "%s[%d]", g.Name, grp.Index())
		}
		list.Values = append(list.Values, structpb.NewStructValue(elem))
	}
	return list, nil
}

func (d *Decoder) fields(out *structpb.Struct, fly sbe.Flyweight, fields []*ir.Field) {
	for _, f := range fields {
		if d.opts.noConstants && f.Desc().Presence == sbe.Constant {
			continue
		}
		out.Fields[f.Name] = d.field(fly, f)
	}
}

func (d *Decoder) field(fly sbe.Flyweight, f *ir.Field) *structpb.Value {
	desc := f.Desc()
	if ref := f.Ref(); ref != nil && ref.Kind == ir.KindComposite {
		return d.composite(fly, f, ref)
	}

	if desc.Presence != sbe.Constant && !desc.Present(fly) {
		return structpb.NewNullValue()
	}

	switch {
	case desc.Type == sbe.Char && desc.Length > 1:
		return structpb.NewStringValue(sbe.ReadString(fly, desc))

	case desc.Length > 1:
		list := &structpb.ListValue{Values: make([]*structpb.Value, desc.Length)}
		for i := range list.Values {
			list.Values[i] = d.scalar(sbe.ReadValue(fly, desc, i), f, false)
		}
		return structpb.NewListValue(list)
	}

	v := sbe.ReadValue(fly, desc, 0)
	ref := f.Ref()
	switch {
	case ref == nil:
		return d.scalar(v, f, desc.Presence == sbe.Optional)

	case ref.Kind == ir.KindSet:
		names := ref.Choices(v.Uint())
		list := &structpb.ListValue{Values: make([]*structpb.Value, len(names))}
		for i, name := range names {
			list.Values[i] = structpb.NewStringValue(name)
		}
		return structpb.NewListValue(list)

	default:
		if v.IsNull() {
			return structpb.NewNullValue()
		}
		if c := ref.Choice(v); c != nil && !d.opts.enumNumbers {
			return structpb.NewStringValue(c.Name)
		}
		return d.scalar(v, f, false)
	}
}

func (d *Decoder) scalar(v sbe.Value, f *ir.Field, optional bool) *structpb.Value {
	if (optional && v.IsNull()) || (v.Type().IsFloat() && math.IsNaN(v.Float())) {
		return structpb.NewNullValue()
	}

	switch v.Type() {
	case sbe.Char:
		return structpb.NewStringValue(v.String())
	case sbe.Float, sbe.Double:
		if math.IsInf(v.Float(), 0) {
			return structpb.NewStringValue(v.String())
		}
		// Go through the shortest representation, so that float32 values
		// come out the way they were written.
		n, _ := strconv.ParseFloat(v.String(), 64)
		return structpb.NewNumberValue(n)
	}

	if f.SemanticType == "UTCTimestamp" && !d.opts.rawTime {
		if t, ok := timestamp(v.Int(), f); ok {
			return structpb.NewStringValue(t.Format(time.RFC3339Nano))
		}
	}

	if v.Type().Signed() {
		n := v.Int()
		if n > maxSafeInt || n < -maxSafeInt {
			return structpb.NewStringValue(v.String())
		}
		return structpb.NewNumberValue(float64(n))
	}
	n := v.Uint()
	if n > maxSafeInt {
		return structpb.NewStringValue(v.String())
	}
	return structpb.NewNumberValue(float64(n))
}

// timestamp interprets v as a point in time, according to the epoch and
// time unit of f.
func timestamp(v int64, f *ir.Field) (time.Time, bool) {
	if f.Epoch != "" && f.Epoch != "unix" {
		return time.Time{}, false
	}

	var unit time.Duration
	switch f.TimeUnit {
	case "nanosecond", "":
		unit = time.Nanosecond
	case "microsecond":
		unit = time.Microsecond
	case "millisecond":
		unit = time.Millisecond
	case "second":
		unit = time.Second
	default:
		return time.Time{}, false
	}
	return time.Unix(0, 0).Add(time.Duration(v) * unit).UTC(), true
}

func (d *Decoder) composite(fly sbe.Flyweight, f *ir.Field, ref *ir.Type) *structpb.Value {
	var c sbe.Composite
	c.Wrap(fly, f.Start(), ref.Size())
	if c.ActingBlockLength() == 0 || fly.ActingVersion() < f.Since {
		return structpb.NewNullValue()
	}

	semantic := f.Desc().Attribute(sbe.MetaSemanticType)
	switch {
	case semantic == types.SemanticDecimal && ref.Size() == types.DecimalSize:
		dec := types.Decimal{Composite: c}
		v, ok := dec.Value()
		if !ok {
			return structpb.NewNullValue()
		}
		return structpb.NewStringValue(v.String())

	case semantic == types.SemanticUUID && ref.Size() == types.UUIDSize:
		id := types.UUID{Composite: c}
		return structpb.NewStringValue(id.Value().String())
	}

	out := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(ref.Fields))}
	d.fields(out, &c, ref.Fields)
	return structpb.NewStructValue(out)
}
