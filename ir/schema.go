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

// Package ir is an intermediate representation of an SBE schema, loaded from
// YAML, from which runtime descriptors can be built without generating code.
//
// A schema looks like this:
//
//	package: baseline
//	id: 1
//	version: 0
//	byteOrder: littleEndian
//	types:
//	  - name: BooleanType
//	    kind: enum
//	    encoding: uint8
//	    values: [{name: F, value: "0"}, {name: T, value: "1"}]
//	messages:
//	  - name: Car
//	    id: 1
//	    fields:
//	      - {name: serialNumber, id: 1, type: uint64}
//	      - {name: available, id: 3, type: BooleanType}
//	    groups:
//	      - name: fuelFigures
//	        id: 10
//	        dimension: uint8
//	        fields: [{name: speed, id: 11, type: uint16}]
//	    data:
//	      - {name: manufacturer, id: 18}
//
// Offsets and block lengths may be omitted, in which case fields are laid out
// back to back in declaration order.
package ir

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"buf.build/go/sbe"
)

// Kinds of named types.
const (
	KindEnum      = "enum"
	KindSet       = "set"
	KindComposite = "composite"
)

// Schema is a complete schema: its named types and messages.
type Schema struct {
	Package   string     `yaml:"package"`
	ID        uint16     `yaml:"id"`
	Version   uint16     `yaml:"version"`
	ByteOrder string     `yaml:"byteOrder,omitempty"`
	Types     []*Type    `yaml:"types,omitempty"`
	Messages  []*Message `yaml:"messages"`

	order  sbe.ByteOrder
	types  map[string]*Type
	byID   map[uint16]*Message
	byName map[string]*Message
}

// Type is a named enum, set or composite type.
type Type struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
	// The primitive type that encodes an enum or set.
	Encoding     string    `yaml:"encoding,omitempty"`
	Values       []*Choice `yaml:"values,omitempty"`
	Fields       []*Field  `yaml:"fields,omitempty"`
	SemanticType string    `yaml:"semanticType,omitempty"`

	prim     sbe.PrimitiveType
	size     int
	resolved bool
}

// Choice is an enum value, or a bit of a set. For enums, Value is the
// encoded value; for sets, it is the bit position.
type Choice struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
	Since uint16 `yaml:"since,omitempty"`

	value sbe.Value
}

// Field is a fixed-position field of a message, group or composite.
type Field struct {
	Name string `yaml:"name"`
	ID   uint16 `yaml:"id,omitempty"`
	// A primitive type name, or the name of a [Type].
	Type     string `yaml:"type"`
	Offset   *int   `yaml:"offset,omitempty"`
	Length   int    `yaml:"length,omitempty"`
	Since    uint16 `yaml:"since,omitempty"`
	Presence string `yaml:"presence,omitempty"`
	// For constant fields: the value, the name of an enum choice, or the
	// contents of a char array.
	Constant     string `yaml:"constant,omitempty"`
	Epoch        string `yaml:"epoch,omitempty"`
	TimeUnit     string `yaml:"timeUnit,omitempty"`
	SemanticType string `yaml:"semanticType,omitempty"`

	ref    *Type
	offset int
	desc   *sbe.Field
}

// Group is a repeating group.
type Group struct {
	Name        string   `yaml:"name"`
	ID          uint16   `yaml:"id,omitempty"`
	Since       uint16   `yaml:"since,omitempty"`
	Dimension   string   `yaml:"dimension,omitempty"` // "uint16" (default) or "uint8".
	BlockLength int      `yaml:"blockLength,omitempty"`
	Fields      []*Field `yaml:"fields,omitempty"`
	Groups      []*Group `yaml:"groups,omitempty"`
	Data        []*Data  `yaml:"data,omitempty"`

	desc *sbe.GroupField
}

// Data is a var-data field.
type Data struct {
	Name  string `yaml:"name"`
	ID    uint16 `yaml:"id,omitempty"`
	Since uint16 `yaml:"since,omitempty"`
	// A character encoding such as "UTF-8" (the default), or "none" for
	// raw bytes.
	Encoding string `yaml:"encoding,omitempty"`

	desc *sbe.VarField
}

// Message is a message template.
type Message struct {
	Name        string   `yaml:"name"`
	ID          uint16   `yaml:"id"`
	Since       uint16   `yaml:"since,omitempty"`
	BlockLength int      `yaml:"blockLength,omitempty"`
	Fields      []*Field `yaml:"fields,omitempty"`
	Groups      []*Group `yaml:"groups,omitempty"`
	Data        []*Data  `yaml:"data,omitempty"`

	template *sbe.Template
}

// Load reads and validates a schema.
func Load(r io.Reader) (*Schema, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	s := new(Schema)
	if err := dec.Decode(s); err != nil {
		return nil, errors.Wrap(err, "ir: decoding schema")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Parse is like [Load], for a schema held in memory.
func Parse(data []byte) (*Schema, error) {
	return Load(bytes.NewReader(data))
}

// LoadFile is like [Load], for a schema in a file.
func LoadFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "ir")
	}
	defer f.Close()

	s, err := Load(f)
	return s, errors.Wrapf(err, "%s", path)
}

// Order returns the byte order of the schema.
func (s *Schema) Order() sbe.ByteOrder { return s.order }

// Message returns the message with the given template id, or nil.
func (s *Schema) Message(id uint16) *Message { return s.byID[id] }

// MessageByName returns the message with the given name, or nil.
func (s *Schema) MessageByName(name string) *Message { return s.byName[name] }

// Type returns the named type with the given name, or nil.
func (s *Schema) Type(name string) *Type { return s.types[name] }

// Template returns the runtime template for m.
func (m *Message) Template() *sbe.Template { return m.template }

// Prim returns the primitive type that encodes an enum or set.
func (t *Type) Prim() sbe.PrimitiveType { return t.prim }

// Size returns the encoded size of the type.
func (t *Type) Size() int { return t.size }

// Choice returns the enum choice with the given encoded value, or nil.
func (t *Type) Choice(v sbe.Value) *Choice {
	for _, c := range t.Values {
		if c.value.Uint() == v.Uint() {
			return c
		}
	}
	return nil
}

// Choices returns the names of the set choices whose bits are set in bits.
func (t *Type) Choices(bits uint64) []string {
	names := []string{}
	for _, c := range t.Values {
		if bits&(1<<c.value.Uint()) != 0 {
			names = append(names, c.Name)
		}
	}
	return names
}

// Val returns the encoded value of the choice: the enum value, or the bit
// position within a set.
func (c *Choice) Val() sbe.Value { return c.value }

// Ref returns the named type of the field, or nil if it is a primitive.
func (f *Field) Ref() *Type { return f.ref }

// Start returns the offset of the field within its block.
func (f *Field) Start() int { return f.offset }

// Size returns the number of bytes the field occupies in its block.
func (f *Field) Size() int {
	switch {
	case f.desc.Presence == sbe.Constant:
		return 0
	case f.ref != nil && f.ref.Kind == KindComposite:
		return f.ref.size
	default:
		return f.desc.Size()
	}
}

// Desc returns the runtime descriptor of the field. For composite fields,
// only the name, offset and presence are meaningful; their members have
// descriptors of their own.
func (f *Field) Desc() *sbe.Field { return f.desc }

// Desc returns the runtime descriptor of the group.
func (g *Group) Desc() *sbe.GroupField { return g.desc }

// Desc returns the runtime descriptor of the var-data field.
func (d *Data) Desc() *sbe.VarField { return d.desc }

// Text returns whether the payload is character data.
func (d *Data) Text() bool { return d.Encoding != "none" }
