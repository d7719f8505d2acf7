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

// Package prototest compares decoded values structurally, reporting the
// path at which they first differ.
package prototest

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"testing"

	"google.golang.org/protobuf/types/known/structpb"

	"buf.build/go/sbe/internal/dbg"
)

// Equal validates that two decoded structs have the same observable value.
//
// Numbers are compared bit-for-bit, so NaN equals NaN and -0 differs from 0.
func Equal(t testing.TB, expect, got *structpb.Struct) {
	t.Helper()
	e := &equal{TB: t}

	panicked := true
	defer func() {
		if panicked {
			t.Errorf("panicked at %s", e.formatPath())
		}
	}()

	e.fields(expect.GetFields(), got.GetFields())
	panicked = false
}

type equal struct {
	testing.TB
	path []any
}

func (e *equal) value(a, b *structpb.Value) {
	e.Helper()

	got := b.GetKind()
	switch a := a.GetKind().(type) {
	case *structpb.Value_NullValue, nil:
		if _, ok := got.(*structpb.Value_NullValue); !ok && got != nil {
			e.wrongType(a, got)
		}

	case *structpb.Value_BoolValue:
		b, ok := got.(*structpb.Value_BoolValue)
		switch {
		case !ok:
			e.wrongType(a, got)
		case a.BoolValue != b.BoolValue:
			e.fail("expected %v, got %v", a.BoolValue, b.BoolValue)
		}

	case *structpb.Value_NumberValue:
		b, ok := got.(*structpb.Value_NumberValue)
		switch {
		case !ok:
			e.wrongType(a, got)
		case math.Float64bits(a.NumberValue) != math.Float64bits(b.NumberValue):
			e.fail("expected %v:%#x, got %v:%#x", a.NumberValue, math.Float64bits(a.NumberValue),
				b.NumberValue, math.Float64bits(b.NumberValue))
		}

	case *structpb.Value_StringValue:
		b, ok := got.(*structpb.Value_StringValue)
		switch {
		case !ok:
			e.wrongType(a, got)
		case a.StringValue != b.StringValue:
			e.fail("expected %q:`%x`, got %q:`%x`", a.StringValue, a.StringValue, b.StringValue, b.StringValue)
		}

	case *structpb.Value_ListValue:
		b, ok := got.(*structpb.Value_ListValue)
		if !ok {
			e.wrongType(a, got)
			return
		}
		e.list(a.ListValue.GetValues(), b.ListValue.GetValues())

	case *structpb.Value_StructValue:
		b, ok := got.(*structpb.Value_StructValue)
		if !ok {
			e.wrongType(a, got)
			return
		}
		e.fields(a.StructValue.GetFields(), b.StructValue.GetFields())
	}
}

func (e *equal) list(a, b []*structpb.Value) {
	e.Helper()
	// Compare the common prefix.
	for i := range min(len(a), len(b)) {
		e.push(i, func() {
			e.Helper()
			e.value(a[i], b[i])
		})
	}

	if len(a) != len(b) {
		e.fail("unequal lengths: want %d, got %d", len(a), len(b))
	}
}

func (e *equal) fields(a, b map[string]*structpb.Value) {
	e.Helper()

	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	for _, k := range keys {
		e.push(k, func() {
			e.Helper()
			va, oka := a[k]
			vb, okb := b[k]
			switch {
			case !oka:
				e.fail("unexpected field, got %v", vb.AsInterface())
			case !okb:
				e.fail("missing field, want %v", va.AsInterface())
			default:
				e.value(va, vb)
			}
		})
	}
}

func (e *equal) push(v any, f func()) {
	e.Helper()
	e.path = append(e.path, v)
	f()
	e.path = e.path[:len(e.path)-1]
}

func (e *equal) wrongType(a, b any) {
	e.Helper()
	e.fail("expected %T, got %T", a, b)
}

func (e *equal) fail(format string, args ...any) {
	e.Helper()
	e.Errorf("failure at %s: %v", e.formatPath(), dbg.Fprintf(format, args...))
}

func (e *equal) formatPath() string {
	if len(e.path) == 0 {
		return "."
	}

	buf := new(strings.Builder)
	for _, e := range e.path {
		switch e := e.(type) {
		case string:
			fmt.Fprintf(buf, ".%s", e)
		default:
			fmt.Fprintf(buf, "[%v]", e)
		}
	}

	return buf.String()
}
