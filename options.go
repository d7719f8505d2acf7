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

package sbe

import (
	"buf.build/go/sbe/internal/debug"
	"buf.build/go/sbe/internal/xunsafe/layout"
)

// These are structs rather than interfaces so that the set of options is
// closed, matching the rest of the options in this module.

// BufferOption is a configuration setting for [NewBuffer].
type BufferOption struct{ apply func(*bufferOptions) }

type bufferOptions struct {
	grow GrowFunc
}

// GrowFunc is called when [Buffer.CheckLimit] would fail. It receives the
// current capacity and the capacity that was required, and returns a larger
// region to continue in, or nil to give up.
//
// The buffer copies its existing contents into the returned region; the
// callback should not do so itself.
type GrowFunc func(capacity, required int) []byte

// WithGrow sets a callback for reallocating a buffer's region when a limit
// check would otherwise fail.
//
// Without it, a failing limit check is an error.
func WithGrow(grow GrowFunc) BufferOption {
	return BufferOption{func(o *bufferOptions) { o.grow = grow }}
}

// GrowDoubling is a [GrowFunc] that allocates a region of at least twice the
// current capacity, rounded up to a multiple of 64 bytes.
func GrowDoubling(capacity, required int) []byte {
	n := layout.RoundUp(max(required, 2*capacity, 64), 64)
	debug.Log(nil, "grow", "%d -> %d (required %d)", capacity, n, required)
	return make([]byte, n)
}
