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

// Package xsync contains typed wrappers over package sync.
package xsync

import "sync"

// Map is a strongly-typed wrapper over sync.Map.
type Map[K comparable, V any] struct {
	impl sync.Map
}

// Load forwards to [sync.Map.Load].
func (m *Map[K, V]) Load(k K) (V, bool) {
	v, ok := m.impl.Load(k)
	if !ok {
		var z V
		return z, false
	}
	return v.(V), true //nolint:errcheck
}

// LoadOrStore returns the value for k if there is one. Otherwise, it stores
// and returns the result of calling mk.
//
// When racing with another store, mk may be called and its result dropped.
func (m *Map[K, V]) LoadOrStore(k K, mk func() V) (actual V, loaded bool) {
	if v, ok := m.Load(k); ok {
		return v, true
	}
	w, loaded := m.impl.LoadOrStore(k, mk())
	return w.(V), loaded //nolint:errcheck
}
