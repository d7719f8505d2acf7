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

package ir

import (
	"iter"

	"github.com/pkg/errors"

	"buf.build/go/sbe"
	"buf.build/go/sbe/internal/endian"
	"buf.build/go/sbe/internal/scc"
)

// Validate checks a schema for consistency, and computes its layout and
// runtime descriptors. [Load] calls it; it only needs to be called again
// after modifying a schema by hand.
func (s *Schema) Validate() error {
	order, err := endian.ParseOrder(s.ByteOrder)
	if err != nil {
		return errors.Wrap(err, "ir: byteOrder")
	}
	s.order = order

	s.types = make(map[string]*Type, len(s.Types))
	for _, t := range s.Types {
		if _, ok := sbe.LookupPrimitive(t.Name); ok || t.Name == "" {
			return errors.Errorf("ir: invalid type name %q", t.Name)
		}
		if s.types[t.Name] != nil {
			return errors.Errorf("ir: duplicate type %s", t.Name)
		}
		t.resolved = false
		s.types[t.Name] = t
	}

	// Resolve types after the types they contain. The root of the graph is
	// nil, which depends on every type.
	for _, c := range scc.Sort(nil, s.typeDeps) {
		if c.Cyclic {
			return errors.Errorf("ir: composite %s contains itself", c.Members[0].Name)
		}
		if t := c.Members[0]; t != nil {
			if err := s.resolveType(t); err != nil {
				return err
			}
		}
	}

	s.byID = make(map[uint16]*Message, len(s.Messages))
	s.byName = make(map[string]*Message, len(s.Messages))
	for _, m := range s.Messages {
		if s.byID[m.ID] != nil {
			return errors.Errorf("ir: duplicate template id %d (%s)", m.ID, m.Name)
		}
		if s.byName[m.Name] != nil {
			return errors.Errorf("ir: duplicate message %s", m.Name)
		}
		s.byID[m.ID] = m
		s.byName[m.Name] = m

		blockLength, err := s.layout(m.Name, m.Fields, m.BlockLength)
		if err != nil {
			return err
		}
		m.BlockLength = blockLength
		if err := s.trailing(m.Name, m.Groups, m.Data); err != nil {
			return err
		}
		m.template = &sbe.Template{
			Name:        m.Name,
			ID:          m.ID,
			SchemaID:    s.ID,
			Version:     s.Version,
			BlockLength: blockLength,
			Trailing:    len(m.Groups) + len(m.Data),
			Order:       s.order,
		}
	}
	return nil
}

// typeDeps returns the named types that a composite contains.
func (s *Schema) typeDeps(t *Type) iter.Seq[*Type] {
	return func(yield func(*Type) bool) {
		if t == nil {
			for _, t := range s.Types {
				if !yield(t) {
					return
				}
			}
			return
		}
		if t.Kind != KindComposite {
			return
		}
		for _, f := range t.Fields {
			if ref := s.types[f.Type]; ref != nil && !yield(ref) {
				return
			}
		}
	}
}

func (s *Schema) resolveType(t *Type) error {
	if t.resolved {
		return nil
	}

	switch t.Kind {
	case KindEnum, KindSet:
		prim, ok := sbe.LookupPrimitive(t.Encoding)
		if !ok || prim.IsFloat() || (t.Kind == KindSet && (prim == sbe.Char || prim.Signed())) {
			return errors.Errorf("ir: %s %s cannot be encoded as %q", t.Kind, t.Name, t.Encoding)
		}
		t.prim = prim
		t.size = prim.Size()

		names := make(map[string]bool)
		for _, c := range t.Values {
			if names[c.Name] {
				return errors.Errorf("ir: duplicate choice %s.%s", t.Name, c.Name)
			}
			names[c.Name] = true

			if t.Kind == KindSet {
				v, err := sbe.ParseValue(sbe.Uint8, c.Value)
				if err != nil || v.Uint() >= uint64(prim.Size()*8) {
					return errors.Errorf("ir: bit %q of %s is out of range", c.Value, t.Name)
				}
				c.value = v
				continue
			}

			v, err := sbe.ParseValue(prim, c.Value)
			if err != nil {
				return errors.Wrapf(err, "ir: %s.%s", t.Name, c.Name)
			}
			if v.IsNull() {
				return errors.Errorf("ir: %s.%s uses the null value", t.Name, c.Name)
			}
			c.value = v
		}

	case KindComposite:
		size, err := s.layout(t.Name, t.Fields, 0)
		if err != nil {
			return err
		}
		t.size = size

	default:
		return errors.Errorf("ir: type %s has unknown kind %q", t.Name, t.Kind)
	}

	t.resolved = true
	return nil
}

// layout assigns offsets and descriptors to fields, and returns the block
// length.
func (s *Schema) layout(scope string, fields []*Field, blockLength int) (int, error) {
	var next int
	names := make(map[string]bool)
	for _, f := range fields {
		if names[f.Name] {
			return 0, errors.Errorf("ir: duplicate field %s.%s", scope, f.Name)
		}
		names[f.Name] = true

		if err := s.resolveField(scope, f); err != nil {
			return 0, err
		}

		size := f.Size()
		switch {
		case f.Offset == nil:
			f.offset = next
		case *f.Offset < next:
			return 0, errors.Errorf("ir: %s.%s at offset %d overlaps the previous field, which ends at %d",
				scope, f.Name, *f.Offset, next)
		default:
			f.offset = *f.Offset
		}
		f.desc.Offset = f.offset
		next = f.offset + size
	}

	switch {
	case blockLength == 0:
		blockLength = next
	case blockLength < next:
		return 0, errors.Errorf("ir: %s has block length %d, but its fields need %d", scope, blockLength, next)
	}
	return blockLength, nil
}

func (s *Schema) resolveField(scope string, f *Field) error {
	path := scope + "." + f.Name

	prim, ok := sbe.LookupPrimitive(f.Type)
	if !ok {
		f.ref = s.types[f.Type]
		if f.ref == nil {
			return errors.Errorf("ir: %s has unknown type %q", path, f.Type)
		}
		if err := s.resolveType(f.ref); err != nil {
			return err
		}
		prim = f.ref.prim
		if f.Length > 1 {
			return errors.Errorf("ir: %s: arrays of %s are not supported", path, f.Type)
		}
	}
	if f.Length < 0 {
		return errors.Errorf("ir: %s has negative length", path)
	}

	d := &sbe.Field{
		Name:   f.Name,
		ID:     f.ID,
		Type:   prim,
		Length: f.Length,
		Since:  f.Since,
		Meta: sbe.Meta{
			sbe.MetaEpoch:        f.Epoch,
			sbe.MetaTimeUnit:     f.TimeUnit,
			sbe.MetaSemanticType: f.SemanticType,
		},
	}
	if f.ref != nil && f.ref.Kind == KindComposite {
		// Composites are accessed through their members.
		d.Type = sbe.Uint8
		d.Length = f.ref.size
		if f.SemanticType == "" {
			d.Meta[sbe.MetaSemanticType] = f.ref.SemanticType
		}
	}

	switch f.Presence {
	case "", "required":
		d.Presence = sbe.Required
	case "optional":
		d.Presence = sbe.Optional
	case "constant":
		d.Presence = sbe.Constant
		if err := constant(path, f, d); err != nil {
			return err
		}
	default:
		return errors.Errorf("ir: %s has unknown presence %q", path, f.Presence)
	}

	f.desc = d
	return nil
}

// constant fills in the constant value of d.
func constant(path string, f *Field, d *sbe.Field) error {
	switch {
	case f.ref != nil && f.ref.Kind == KindEnum:
		for _, c := range f.ref.Values {
			if c.Name == f.Constant {
				d.Constant = c.value
				return nil
			}
		}
		return errors.Errorf("ir: %s: %q is not a choice of %s", path, f.Constant, f.ref.Name)

	case f.ref != nil:
		return errors.Errorf("ir: %s: a %s cannot be constant", path, f.ref.Kind)

	case d.Type == sbe.Char && (f.Length > 1 || len(f.Constant) != 1):
		d.ConstantText = f.Constant
		d.Length = max(f.Length, len(f.Constant))
		return nil

	default:
		v, err := sbe.ParseValue(d.Type, f.Constant)
		if err != nil {
			return errors.Wrapf(err, "ir: %s", path)
		}
		d.Constant = v
		return nil
	}
}

// trailing validates and assigns ordinals to the groups and var-data fields
// of a message or group.
func (s *Schema) trailing(scope string, groups []*Group, data []*Data) error {
	names := make(map[string]bool)
	for i, g := range groups {
		path := scope + "." + g.Name
		if names[g.Name] {
			return errors.Errorf("ir: duplicate group %s", path)
		}
		names[g.Name] = true

		var dim sbe.Dimension
		switch g.Dimension {
		case "", "uint16":
			dim = sbe.DimensionU16
		case "uint8":
			dim = sbe.DimensionU8
		default:
			return errors.Errorf("ir: %s has unknown dimension %q", path, g.Dimension)
		}

		blockLength, err := s.layout(path, g.Fields, g.BlockLength)
		if err != nil {
			return err
		}
		g.BlockLength = blockLength
		if err := s.trailing(path, g.Groups, g.Data); err != nil {
			return err
		}

		g.desc = &sbe.GroupField{
			Name:        g.Name,
			ID:          g.ID,
			Ordinal:     i,
			BlockLength: blockLength,
			Dimension:   dim,
			Since:       g.Since,
			Trailing:    len(g.Groups) + len(g.Data),
		}
	}

	for i, d := range data {
		if names[d.Name] {
			return errors.Errorf("ir: duplicate var-data field %s.%s", scope, d.Name)
		}
		names[d.Name] = true

		if d.Encoding == "" {
			d.Encoding = "UTF-8"
		}
		enc := d.Encoding
		if !d.Text() {
			enc = ""
		}
		d.desc = &sbe.VarField{
			Name:     d.Name,
			ID:       d.ID,
			Ordinal:  len(groups) + i,
			Since:    d.Since,
			Encoding: enc,
		}
	}
	return nil
}
