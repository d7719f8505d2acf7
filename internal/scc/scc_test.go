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

package scc_test

import (
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"buf.build/go/sbe/internal/scc"
)

func TestSort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		graph  map[string][]string
		want   [][]string // The expected components, in order.
		cyclic []bool
	}{
		{
			name:   "singleton",
			graph:  map[string][]string{},
			want:   [][]string{{"root"}},
			cyclic: []bool{false},
		},
		{
			name:   "loop",
			graph:  map[string][]string{"root": {"root"}},
			want:   [][]string{{"root"}},
			cyclic: []bool{true},
		},
		{
			name: "tree",
			graph: map[string][]string{
				"root":   {"Engine", "Model"},
				"Engine": {"Booster"},
			},
			want:   [][]string{{"Booster"}, {"Engine"}, {"Model"}, {"root"}},
			cyclic: []bool{false, false, false, false},
		},
		{
			name: "shared",
			graph: map[string][]string{
				"root": {"A", "B"},
				"A":    {"C"},
				"B":    {"C"},
			},
			want:   [][]string{{"C"}, {"A"}, {"B"}, {"root"}},
			cyclic: []bool{false, false, false, false},
		},
		{
			name: "cycle",
			graph: map[string][]string{
				"root": {"A"},
				"A":    {"B"},
				"B":    {"C"},
				"C":    {"A"},
			},
			want:   [][]string{{"A", "B", "C"}, {"root"}},
			cyclic: []bool{true, false},
		},
		{
			name: "dumbbell",
			graph: map[string][]string{
				"root": {"A"},
				"A":    {"B", "C"},
				"B":    {"A"},
				"C":    {"D"},
				"D":    {"C"},
			},
			want:   [][]string{{"C", "D"}, {"A", "B"}, {"root"}},
			cyclic: []bool{true, true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deps := func(n string) iter.Seq[string] { return slices.Values(tt.graph[n]) }

			var got [][]string
			var cyclic []bool
			for _, c := range scc.Sort("root", deps) {
				members := slices.Clone(c.Members)
				slices.Sort(members)
				got = append(got, members)
				cyclic = append(cyclic, c.Cyclic)
			}

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.cyclic, cyclic)
		})
	}
}
