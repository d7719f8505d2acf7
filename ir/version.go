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
	"github.com/pkg/errors"
	"github.com/tiendc/go-deepcopy"
)

// AsOfVersion returns a copy of s as it was declared at version v: every
// message, field, group, var-data field and choice added after v is removed.
//
// Block lengths that were computed from the layout are recomputed; explicit
// block lengths are kept unless a field they covered was removed.
//
// This is useful for producing messages as an older writer would.
func (s *Schema) AsOfVersion(v uint16) (*Schema, error) {
	if v > s.Version {
		return nil, errors.Errorf("ir: version %d is newer than the schema (%d)", v, s.Version)
	}

	var out *Schema
	if err := deepcopy.Copy(&out, &s); err != nil {
		return nil, errors.Wrap(err, "ir: copying schema")
	}
	out.Version = v

	for _, t := range out.Types {
		t.Values = keep(t.Values, func(c *Choice) bool { return c.Since <= v })
	}

	out.Messages = keep(out.Messages, func(m *Message) bool { return m.Since <= v })
	for _, m := range out.Messages {
		m.Fields, m.BlockLength = trimFields(m.Fields, m.BlockLength, v)
		m.Groups, m.Data = trimTrailing(m.Groups, m.Data, v)
	}

	if err := out.Validate(); err != nil {
		return nil, errors.Wrapf(err, "ir: schema at version %d", v)
	}
	return out, nil
}

func trimFields(fields []*Field, blockLength int, v uint16) ([]*Field, int) {
	n := len(fields)
	fields = keep(fields, func(f *Field) bool { return f.Since <= v })
	if len(fields) != n {
		blockLength = 0
	}
	return fields, blockLength
}

func trimTrailing(groups []*Group, data []*Data, v uint16) ([]*Group, []*Data) {
	groups = keep(groups, func(g *Group) bool { return g.Since <= v })
	for _, g := range groups {
		g.Fields, g.BlockLength = trimFields(g.Fields, g.BlockLength, v)
		g.Groups, g.Data = trimTrailing(g.Groups, g.Data, v)
	}
	data = keep(data, func(d *Data) bool { return d.Since <= v })
	return groups, data
}

// keep returns the elements of s for which f is true, in a new slice.
func keep[T any](s []*T, f func(*T) bool) []*T {
	var out []*T
	for _, e := range s {
		if f(e) {
			out = append(out, e)
		}
	}
	return out
}
