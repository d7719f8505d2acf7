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

// Package scc finds the strongly-connected components of a directed graph
// with Tarjan's algorithm. The schema loader uses it to order named types so
// that every type comes after the types it contains, and to find composites
// that contain themselves.
package scc

import (
	"iter"
	"slices"

	"buf.build/go/sbe/internal/debug"
)

// Graph exposes the outgoing edges of a node: the nodes it depends on.
type Graph[Node any] func(Node) iter.Seq[Node]

// Component is a strongly-connected component: a set of nodes each of which
// is reachable from every other.
type Component[Node comparable] struct {
	Members []Node
	// Whether some member has an edge to a member, including itself. This is
	// false only for single nodes without a self-loop.
	Cyclic bool
}

// Sort returns the components of the graph reachable from root, such that
// each component comes after every component it depends on.
func Sort[Node comparable](root Node, graph Graph[Node]) []Component[Node] {
	s := &tarjan[Node]{
		graph:    graph,
		metadata: make(map[Node]*metadata),
	}
	s.rec(root)
	return s.out
}

// tarjan is the state of one run of Tarjan's algorithm.
//
// See https://en.wikipedia.org/wiki/Tarjan%27s_strongly_connected_components_algorithm
type tarjan[Node comparable] struct {
	graph Graph[Node]
	out   []Component[Node]

	index    int
	stack    []Node
	metadata map[Node]*metadata
}

type metadata struct {
	index, low int
	onStack    bool
	selfLoop   bool
}

func (s *tarjan[Node]) rec(node Node) *metadata {
	meta := &metadata{
		index:   s.index,
		low:     s.index,
		onStack: true,
	}
	s.metadata[node] = meta
	s.index++
	offset := len(s.stack)
	s.stack = append(s.stack, node)

	for dep := range s.graph(node) {
		if dep == node {
			meta.selfLoop = true
		}

		m := s.metadata[dep]
		switch {
		case m == nil:
			m = s.rec(dep)
			meta.low = min(meta.low, m.low)
		case m.onStack:
			meta.low = min(meta.low, m.index)
		}
	}

	if meta.index == meta.low {
		c := Component[Node]{Members: slices.Clone(s.stack[offset:])}
		s.stack = s.stack[:offset]
		for _, n := range c.Members {
			s.metadata[n].onStack = false
		}
		c.Cyclic = len(c.Members) > 1 || meta.selfLoop
		debug.Log(nil, "scc", "%v, cyclic: %v", c.Members, c.Cyclic)

		s.out = append(s.out, c)
	}

	return meta
}
